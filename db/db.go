package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the database - MySQL when a DSN is configured, a local
// SQLite file otherwise. The handle is returned to the caller instead
// of being kept as a package global.
func Connect(mysqlDSN, sqliteFile string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}
	if mysqlDSN != "" {
		return gorm.Open(mysql.Open(mysqlDSN), cfg)
	}
	return gorm.Open(sqlite.Open(sqliteFile), cfg)
}
