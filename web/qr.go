package web

import (
	"errors"

	"qralbum/models"
	"qralbum/qr"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// QRDownload streams the stored QR image as an attachment. Public by
// design, like the album view it points at.
func (a *App) QRDownload(c *gin.Context) {
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
	if album.QRPath == "" || !a.QR.Disk.Exists(album.QRPath) {
		a.notFound(c, "QR image not found")
		return
	}
	c.FileAttachment(a.QR.Disk.GetFullPath(album.QRPath), qr.FileName(album.ID))
}
