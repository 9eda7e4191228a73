package main

import (
	"os"
	"strings"
	"time"

	"qralbum/config"
	"qralbum/db"
	"qralbum/models"
	"qralbum/qr"
	"qralbum/storage"
	"qralbum/utils"
	"qralbum/web"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	cfg := config.Load()
	if cfg.DebugMode {
		logger.SetLevel(log.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := db.Connect(cfg.MysqlDSN, cfg.SqliteFile)
	if err != nil {
		logger.Fatal("cannot open database", "err", err)
	}
	if err = models.Migrate(gormDB); err != nil {
		logger.Fatal("cannot migrate database", "err", err)
	}
	uploads, err := storage.NewDisk(cfg.UploadDir)
	if err != nil {
		logger.Fatal("cannot create upload directory", "err", err)
	}
	thumbs, err := storage.NewDisk(cfg.ThumbDir)
	if err != nil {
		logger.Fatal("cannot create thumbnail directory", "err", err)
	}
	qrs, err := storage.NewDisk(cfg.QRDir)
	if err != nil {
		logger.Fatal("cannot create QR directory", "err", err)
	}
	app := &web.App{
		DB:      gormDB,
		Config:  cfg,
		Uploads: uploads,
		Thumbs:  thumbs,
		QR:      &qr.Generator{Disk: qrs, BaseURL: cfg.BaseURL},
		Log:     logger,
	}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if cfg.DebugMode {
		router.Use(utils.ErrorLogMiddleware(logger))
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	// HTML templates
	router.LoadHTMLGlob("templates/*.tmpl")

	cookieStore := cookie.NewStore([]byte(cfg.SessionKey))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !cfg.DebugMode {
		router.Use(gzip.Gzip(gzip.DefaultCompression,
			gzip.WithExcludedPaths([]string{"/uploads", "/thumbs", "/qrcodes"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, static routes override that

	web.RegisterRoutes(router, app)

	if cfg.TLSDomains != "" {
		err = autotls.Run(router, strings.Split(cfg.TLSDomains, ",")...)
	} else {
		err = router.Run(cfg.BindAddress)
	}
	logger.Fatal("server stopped", "err", err)
}
