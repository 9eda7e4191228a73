package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment. It is built once
// in main and passed down explicitly - nothing in here is a package
// global.
type Config struct {
	SessionKey  string // Secret used to sign the session cookie
	BindAddress string
	BaseURL     string // External URL prefix, ends up inside the QR codes
	MysqlDSN    string // MySQL will be used if this is set
	SqliteFile  string // SQLite will be used if MysqlDSN is not configured
	UploadDir   string
	ThumbDir    string
	QRDir       string
	TLSDomains  string // e.g. "example.com,example2.com"
	DebugMode   bool
}

func Load() *Config {
	// A missing .env file is fine - plain env vars still apply
	_ = godotenv.Load()

	cfg := &Config{
		SessionKey:  "dev-secret-key-change-this",
		BindAddress: "0.0.0.0:8080",
		BaseURL:     "http://localhost:8080",
		SqliteFile:  "database.db",
		UploadDir:   "static/uploads",
		ThumbDir:    "static/thumbs",
		QRDir:       "static/qr",
		DebugMode:   true,
	}
	readEnvString("SESSION_KEY", &cfg.SessionKey)
	readEnvString("BIND_ADDRESS", &cfg.BindAddress)
	readEnvString("BASE_URL", &cfg.BaseURL)
	readEnvString("MYSQL_DSN", &cfg.MysqlDSN)
	readEnvString("SQLITE_FILE", &cfg.SqliteFile)
	readEnvString("UPLOAD_DIR", &cfg.UploadDir)
	readEnvString("THUMB_DIR", &cfg.ThumbDir)
	readEnvString("QR_DIR", &cfg.QRDir)
	readEnvString("TLS_DOMAINS", &cfg.TLSDomains)
	readEnvBool("DEBUG_MODE", &cfg.DebugMode)
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}
