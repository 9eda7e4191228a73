package models

import (
	"errors"
	"strings"

	"qralbum/utils"

	"gorm.io/gorm"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	Name      string  `gorm:"type:varchar(150)"`
	Email     string  `gorm:"type:varchar(150);index:uniq_email,unique"`
	Password  string  `gorm:"type:varchar(128)"`
	PassSalt  string  `gorm:"type:varchar(200)"`
	Albums    []Album `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

const saltSize = 60

// ErrEmailTaken is returned on registration with an already used email
var ErrEmailTaken = errors.New("email already registered")

// NormalizeEmail is applied before every lookup and insert, so case
// variants of one address always hit the same row.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func UserCreate(db *gorm.DB, name, email, plainTextPassword string) (u User, err error) {
	u.Name = name
	u.Email = NormalizeEmail(email)
	var count int64
	if err = db.Model(&User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return
	}
	if count > 0 {
		return User{}, ErrEmailTaken
	}
	u.SetPassword(plainTextPassword)
	return u, db.Create(&u).Error
}

func (u *User) SetPassword(plainTextPassword string) {
	u.PassSalt = utils.RandSalt(saltSize)
	u.Password = utils.Sha512String(plainTextPassword + u.PassSalt)
}

func UserLogin(db *gorm.DB, email, plainTextPassword string) (u User, success bool) {
	result := db.First(&u, "email = ?", NormalizeEmail(email))
	if result.Error != nil {
		return User{}, false
	}
	if u.Password != utils.Sha512String(plainTextPassword+u.PassSalt) {
		return User{}, false
	}
	return u, true
}

func UserByID(db *gorm.DB, id uint64) (u User, err error) {
	err = db.First(&u, id).Error
	return
}
