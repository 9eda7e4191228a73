package models

import (
	"gorm.io/gorm"
)

type Photo struct {
	ID        uint64 `gorm:"primaryKey"`
	AlbumID   uint64 `gorm:"not null;index"`
	Album     Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt int64
	Filename  string `gorm:"type:varchar(300)"`
}

// PhotosForAlbum returns the album's photos in upload order.
func PhotosForAlbum(db *gorm.DB, albumID uint64) (photos []Photo, err error) {
	err = db.Where("album_id = ?", albumID).Order("created_at ASC, id ASC").Find(&photos).Error
	return
}

func PhotoCountForAlbum(db *gorm.DB, albumID uint64) (count int64, err error) {
	err = db.Model(&Photo{}).Where("album_id = ?", albumID).Count(&count).Error
	return
}

func DeletePhotosForAlbum(db *gorm.DB, albumID uint64) error {
	return db.Delete(&Photo{}, "album_id = ?", albumID).Error
}
