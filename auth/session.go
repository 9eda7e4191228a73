package auth

import (
	"qralbum/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	userIdKey   = "id"
	flashPrefix = "_flash_"
)

// Flash categories, matching the alert classes used in the templates.
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"
	FlashInfo    = "info"
)

var flashCategories = []string{FlashSuccess, FlashWarning, FlashDanger, FlashInfo}

type Flash struct {
	Category string
	Message  string
}

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginUser(id uint64) {
	s.Set(userIdKey, id)
}

// LogoutUser drops everything from the session. Does not save, so a
// flash can still be added before the cookie is written out.
func (s *Session) LogoutUser() {
	s.Delete(userIdKey)
	s.Clear()
}

func (s *Session) User(db *gorm.DB) (user models.User) {
	id := s.Get(userIdKey)
	if id == nil {
		return
	}
	uid, ok := id.(uint64)
	if !ok {
		return
	}
	if db.First(&user, uid).Error != nil {
		return models.User{}
	}
	return
}

// Flash queues a one-time message surfaced on the next rendered page.
func (s *Session) Flash(category, message string) {
	s.AddFlash(message, flashPrefix+category)
}

// PendingFlashes drains the queued messages. The session has to be
// saved afterwards for the drain to stick.
func (s *Session) PendingFlashes() []Flash {
	var result []Flash
	for _, category := range flashCategories {
		for _, v := range s.Flashes(flashPrefix + category) {
			if message, ok := v.(string); ok {
				result = append(result, Flash{Category: category, Message: message})
			}
		}
	}
	return result
}
