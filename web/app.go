package web

import (
	"net/http"

	"qralbum/auth"
	"qralbum/config"
	"qralbum/qr"
	"qralbum/storage"
	"qralbum/utils"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// App carries everything the handlers need. Constructed once at
// startup and passed around explicitly - no package-level state.
type App struct {
	DB      *gorm.DB
	Config  *config.Config
	Uploads *storage.Disk
	Thumbs  *storage.Disk
	QR      *qr.Generator
	Log     *log.Logger
}

func RegisterRoutes(router *gin.Engine, a *App) {
	authRouter := &auth.Router{Base: router, DB: a.DB}

	router.GET("/", a.Index)
	router.GET("/register", a.RegisterForm)
	router.POST("/register", a.Register)
	router.GET("/login", a.LoginForm)
	router.POST("/login", a.Login)
	router.GET("/logout", a.Logout)
	authRouter.GET("/dashboard", a.Dashboard)
	authRouter.GET("/album/create", a.AlbumCreateForm)
	authRouter.POST("/album/create", a.AlbumCreate)
	router.GET("/album/view/:albumId", a.AlbumView)
	router.GET("/qr/download/:albumId", a.QRDownload)
	authRouter.POST("/album/delete/:albumId", a.AlbumDelete)

	// Stored images never change in place, so let clients cache them
	static := router.Group("/", (&utils.CacheRouter{CacheTime: utils.CacheStatic}).Handler())
	static.Static("/uploads", a.Config.UploadDir)
	static.Static("/thumbs", a.Config.ThumbDir)
	static.Static("/qrcodes", a.Config.QRDir)

	router.GET("/robots.txt", DisallowRobots)
}

// render drains pending flashes and resolves the session user before
// handing everything to the template.
func (a *App) render(c *gin.Context, status int, template string, data gin.H) {
	session := auth.LoadSession(c)
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = session.PendingFlashes()
	data["user"] = session.User(a.DB)
	session.Save()
	c.HTML(status, template, data)
}

func (a *App) notFound(c *gin.Context, message string) {
	c.HTML(http.StatusNotFound, "error.tmpl", gin.H{"message": message})
}

func (a *App) serverError(c *gin.Context, message string, err error) {
	a.Log.Error(message, "err", err)
	c.String(http.StatusInternalServerError, "something went wrong")
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}
