package auth

import (
	"net/http"

	"qralbum/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HandlerFunc receives the authenticated user on top of the request context
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper class that adds auth checks + User pre-loading.
// Requests without a logged-in user get redirected to the login page.
type Router struct {
	Base *gin.Engine
	DB   *gorm.DB
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	session := LoadSession(c)
	user := session.User(cr.DB)
	if user.ID == 0 {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	handler(c, &user)
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
