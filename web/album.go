package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"qralbum/auth"
	"qralbum/models"
	"qralbum/storage"
	"qralbum/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const thumbSize = 480

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

func allowedFile(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

func albumParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("albumId"), 10, 64)
	return id, err == nil
}

func (a *App) AlbumCreateForm(c *gin.Context, user *models.User) {
	a.render(c, http.StatusOK, "create_album.tmpl", nil)
}

func (a *App) AlbumCreate(c *gin.Context, user *models.User) {
	session := auth.LoadSession(c)
	name := strings.TrimSpace(c.PostForm("album_name"))
	if name == "" {
		name = models.DefaultAlbumName(time.Now())
	}
	album := models.Album{
		Name:   name,
		UserID: user.ID,
	}
	if err := a.DB.Create(&album).Error; err != nil {
		a.serverError(c, "cannot create album", err)
		return
	}
	albumDir := strconv.FormatUint(album.ID, 10)
	if err := a.Uploads.EnsureDirExists(albumDir); err != nil {
		a.serverError(c, "cannot create album directory", err)
		return
	}
	skipped := 0
	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, file := range form.File["photos"] {
			if file.Filename == "" {
				continue
			}
			if !allowedFile(file.Filename) {
				skipped++
				continue
			}
			filename := utils.SanitizeFilename(file.Filename)
			path := albumDir + "/" + filename
			if a.Uploads.Exists(path) {
				filename = uuid.NewString()[:8] + "_" + filename
				path = albumDir + "/" + filename
			}
			reader, err := file.Open()
			if err != nil {
				a.serverError(c, "cannot read uploaded file", err)
				return
			}
			_, err = a.Uploads.Save(path, reader)
			reader.Close()
			if err != nil {
				a.serverError(c, "cannot save uploaded file", err)
				return
			}
			photo := models.Photo{
				AlbumID:  album.ID,
				Filename: filename,
			}
			if err := a.DB.Create(&photo).Error; err != nil {
				a.serverError(c, "cannot save photo record", err)
				return
			}
			a.createThumb(album.ID, &photo)
		}
	}
	qrPath, err := a.QR.GenerateForAlbum(album.ID)
	if err != nil {
		a.serverError(c, "cannot generate QR image", err)
		return
	}
	if err := a.DB.Model(&album).Update("qr_path", qrPath).Error; err != nil {
		a.serverError(c, "cannot store QR path", err)
		return
	}
	if skipped > 0 {
		session.Flash(auth.FlashWarning, fmt.Sprintf("%d file(s) skipped (unsupported type)", skipped))
	}
	session.Flash(auth.FlashSuccess, "Album created successfully")
	session.Save()
	c.Redirect(http.StatusFound, "/dashboard")
}

// Thumbnails are nice to have: a failure only costs the album view a
// preview, so it is logged and otherwise ignored.
func (a *App) createThumb(albumID uint64, photo *models.Photo) {
	var buf, thumb bytes.Buffer
	original := fmt.Sprintf("%d/%s", albumID, photo.Filename)
	if _, err := a.Uploads.Load(original, &buf); err != nil {
		a.Log.Warn("cannot read photo back for its thumbnail", "file", photo.Filename, "err", err)
		return
	}
	if _, err := utils.CreateThumb(thumbSize, &buf, &thumb); err != nil {
		a.Log.Warn("cannot create thumbnail", "file", photo.Filename, "err", err)
		return
	}
	if _, err := a.Thumbs.Save(thumbPath(albumID, photo.ID), &thumb); err != nil {
		a.Log.Warn("cannot save thumbnail", "file", photo.Filename, "err", err)
	}
}

func thumbPath(albumID, photoID uint64) string {
	return fmt.Sprintf("%d/%d.jpg", albumID, photoID)
}

type PhotoView struct {
	Name     string
	URL      string
	ThumbURL string
}

func (a *App) AlbumView(c *gin.Context) {
	albumID, ok := albumParam(c)
	if !ok {
		a.notFound(c, "Album not found")
		return
	}
	album, err := models.AlbumByID(a.DB, albumID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		a.notFound(c, "Album not found")
		return
	}
	if err != nil {
		a.serverError(c, "cannot load album", err)
		return
	}
	photos, err := models.PhotosForAlbum(a.DB, album.ID)
	if err != nil {
		a.serverError(c, "cannot load photos", err)
		return
	}
	views := make([]PhotoView, 0, len(photos))
	for _, photo := range photos {
		view := PhotoView{
			Name: photo.Filename,
			URL:  fmt.Sprintf("/uploads/%d/%s", album.ID, photo.Filename),
		}
		tp := thumbPath(album.ID, photo.ID)
		if a.Thumbs.Exists(tp) {
			view.ThumbURL = "/thumbs/" + tp
		}
		views = append(views, view)
	}
	owner, _ := models.UserByID(a.DB, album.UserID)
	qrURL := ""
	if album.QRPath != "" {
		qrURL = "/qrcodes/" + album.QRPath
	}
	a.render(c, http.StatusOK, "view_album.tmpl", gin.H{
		"album":     album,
		"ownerName": owner.Name,
		"photos":    views,
		"qrURL":     qrURL,
	})
}

func (a *App) AlbumDelete(c *gin.Context, user *models.User) {
	session := auth.LoadSession(c)
	albumID, ok := albumParam(c)
	if !ok {
		a.notFound(c, "Album not found")
		return
	}
	album, err := models.AlbumByID(a.DB, albumID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		a.notFound(c, "Album not found")
		return
	}
	if err != nil {
		a.serverError(c, "cannot load album", err)
		return
	}
	if album.UserID != user.ID {
		session.Flash(auth.FlashDanger, "Not authorized")
		session.Save()
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	// Best-effort file cleanup: the rows go away regardless, a failure
	// here only leaves orphaned files behind
	cleanupFailed := false
	albumDir := strconv.FormatUint(album.ID, 10)
	if err := a.Uploads.DeleteDir(albumDir); err != nil {
		a.Log.Warn("cannot fully remove album uploads",
			"album", album.ID, "class", storage.ClassifyError(err), "err", err)
		cleanupFailed = true
	}
	if err := a.Thumbs.DeleteDir(albumDir); err != nil {
		a.Log.Warn("cannot fully remove album thumbnails",
			"album", album.ID, "class", storage.ClassifyError(err), "err", err)
		cleanupFailed = true
	}
	if album.QRPath != "" {
		if err := a.QR.Disk.Delete(album.QRPath); err != nil && storage.ClassifyError(err) != "not-found" {
			a.Log.Warn("cannot remove QR image",
				"album", album.ID, "class", storage.ClassifyError(err), "err", err)
			cleanupFailed = true
		}
	}
	if err := models.DeletePhotosForAlbum(a.DB, album.ID); err != nil {
		a.serverError(c, "cannot delete photo records", err)
		return
	}
	if err := a.DB.Delete(&album).Error; err != nil {
		a.serverError(c, "cannot delete album record", err)
		return
	}
	if cleanupFailed {
		session.Flash(auth.FlashWarning, "Some album files could not be removed")
	}
	session.Flash(auth.FlashInfo, "Album deleted")
	session.Save()
	c.Redirect(http.StatusFound, "/dashboard")
}
