package web

import (
	"errors"
	"net/http"
	"strings"

	"qralbum/auth"
	"qralbum/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type RegisterRequest struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (a *App) Index(c *gin.Context) {
	a.render(c, http.StatusOK, "index.tmpl", nil)
}

func (a *App) RegisterForm(c *gin.Context) {
	a.render(c, http.StatusOK, "register.tmpl", nil)
}

func (a *App) Register(c *gin.Context) {
	session := auth.LoadSession(c)
	r := RegisterRequest{}
	_ = c.ShouldBindWith(&r, binding.Form)
	name := strings.TrimSpace(r.Name)
	email := models.NormalizeEmail(r.Email)
	if name == "" || email == "" || r.Password == "" {
		session.Flash(auth.FlashDanger, "Please fill all fields")
		session.Save()
		c.Redirect(http.StatusFound, "/register")
		return
	}
	_, err := models.UserCreate(a.DB, name, email, r.Password)
	if errors.Is(err, models.ErrEmailTaken) {
		session.Flash(auth.FlashWarning, "Email already registered")
		session.Save()
		c.Redirect(http.StatusFound, "/register")
		return
	}
	if err != nil {
		a.serverError(c, "cannot create user", err)
		return
	}
	session.Flash(auth.FlashSuccess, "Registration successful. Please login.")
	session.Save()
	c.Redirect(http.StatusFound, "/login")
}

func (a *App) LoginForm(c *gin.Context) {
	a.render(c, http.StatusOK, "login.tmpl", nil)
}

func (a *App) Login(c *gin.Context) {
	session := auth.LoadSession(c)
	r := LoginRequest{}
	_ = c.ShouldBindWith(&r, binding.Form)
	user, success := models.UserLogin(a.DB, r.Email, r.Password)
	if !success {
		session.Flash(auth.FlashDanger, "Invalid credentials")
		session.Save()
		c.Redirect(http.StatusFound, "/login")
		return
	}
	session.LoginUser(user.ID)
	session.Flash(auth.FlashSuccess, "Logged in successfully")
	session.Save()
	c.Redirect(http.StatusFound, "/dashboard")
}

func (a *App) Logout(c *gin.Context) {
	session := auth.LoadSession(c)
	session.LogoutUser()
	session.Flash(auth.FlashInfo, "Logged out")
	session.Save()
	c.Redirect(http.StatusFound, "/")
}

type AlbumItem struct {
	Album      models.Album
	PhotoCount int64
}

func (a *App) Dashboard(c *gin.Context, user *models.User) {
	albums, err := models.AlbumsForUser(a.DB, user.ID)
	if err != nil {
		a.serverError(c, "cannot list albums", err)
		return
	}
	items := make([]AlbumItem, 0, len(albums))
	for _, album := range albums {
		count, err := models.PhotoCountForAlbum(a.DB, album.ID)
		if err != nil {
			a.serverError(c, "cannot count photos", err)
			return
		}
		items = append(items, AlbumItem{Album: album, PhotoCount: count})
	}
	a.render(c, http.StatusOK, "dashboard.tmpl", gin.H{"albums": items})
}
