package web

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"qralbum/config"
	"qralbum/db"
	"qralbum/models"
	"qralbum/qr"
	"qralbum/storage"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func newTestApp(t *testing.T) (*App, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	gormDB, err := db.Connect("", filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("cannot open test database: %v", err)
	}
	if err := models.Migrate(gormDB); err != nil {
		t.Fatalf("cannot migrate test database: %v", err)
	}
	cfg := &config.Config{
		BaseURL:   "http://photos.example.com",
		UploadDir: filepath.Join(dir, "uploads"),
		ThumbDir:  filepath.Join(dir, "thumbs"),
		QRDir:     filepath.Join(dir, "qr"),
	}
	uploads, err := storage.NewDisk(cfg.UploadDir)
	if err != nil {
		t.Fatal(err)
	}
	thumbs, err := storage.NewDisk(cfg.ThumbDir)
	if err != nil {
		t.Fatal(err)
	}
	qrs, err := storage.NewDisk(cfg.QRDir)
	if err != nil {
		t.Fatal(err)
	}
	app := &App{
		DB:      gormDB,
		Config:  cfg,
		Uploads: uploads,
		Thumbs:  thumbs,
		QR:      &qr.Generator{Disk: qrs, BaseURL: cfg.BaseURL},
		Log:     log.New(io.Discard),
	}
	router := gin.New()
	router.Use(sessions.Sessions("token", cookie.NewStore([]byte("test-session-key"))))
	router.LoadHTMLGlob(filepath.Join("..", "templates", "*.tmpl"))
	RegisterRoutes(router, app)
	return app, router
}

func get(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postForm(router *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postMultipart(t *testing.T, router *gin.Engine, path, albumName string, files [][2]string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if albumName != "" {
		if err := mw.WriteField("album_name", albumName); err != nil {
			t.Fatal(err)
		}
	}
	for _, file := range files {
		part, err := mw.CreateFormFile("photos", file[0])
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte(file[1])); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func wantRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302 (body: %s)", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("redirected to %q, want %q", got, location)
	}
}

// signup registers a user and logs in, returning the session cookies.
func signup(t *testing.T, router *gin.Engine, name, email, password string) []*http.Cookie {
	t.Helper()
	w := postForm(router, "/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	}, nil)
	wantRedirect(t, w, "/login")
	w = postForm(router, "/login", url.Values{
		"email":    {email},
		"password": {password},
	}, nil)
	wantRedirect(t, w, "/dashboard")
	return w.Result().Cookies()
}

// makeAlbum creates an album through the handler and loads it back by name.
func makeAlbum(t *testing.T, app *App, router *gin.Engine, cookies []*http.Cookie, name string, files [][2]string) models.Album {
	t.Helper()
	w := postMultipart(t, router, "/album/create", name, files, cookies)
	wantRedirect(t, w, "/dashboard")
	var album models.Album
	if err := app.DB.First(&album, "name = ?", name).Error; err != nil {
		t.Fatalf("created album not found: %v", err)
	}
	return album
}
