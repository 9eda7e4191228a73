package models

import (
	"time"

	"gorm.io/gorm"
)

type Album struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index:user_album_created,priority:1;"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt int64  `gorm:"index:user_album_created,priority:2"`
	Name      string `gorm:"type:varchar(300)"`
	QRPath    string `gorm:"column:qr_path;type:varchar(300)"` // empty until the QR image is generated
	Photos    []Photo
}

// DefaultAlbumName is used when the creation form leaves the name blank.
func DefaultAlbumName(now time.Time) string {
	return "Album-" + now.UTC().Format("20060102150405")
}

func AlbumByID(db *gorm.DB, id uint64) (a Album, err error) {
	err = db.First(&a, id).Error
	return
}

// AlbumsForUser returns the user's albums, newest first.
func AlbumsForUser(db *gorm.DB, userID uint64) (albums []Album, err error) {
	err = db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&albums).Error
	return
}
