package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"storefront/internal/errs"
)

const sessionAdminKey = "admin_email"

// SetAdmin marks the session as logged in.
func SetAdmin(c *gin.Context, email string) error {
	sess := sessions.Default(c)
	sess.Set(sessionAdminKey, email)
	return sess.Save()
}

func ClearAdmin(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	return sess.Save()
}

// AdminEmail returns the email stored in the session or "".
func AdminEmail(c *gin.Context) string {
	email, _ := sessions.Default(c).Get(sessionAdminKey).(string)
	return email
}

func IsAdmin(c *gin.Context) bool {
	return AdminEmail(c) != ""
}

// RequireAdmin: единая проверка для всех админских маршрутов.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errs.ErrUnauthorized.Error()})
			return
		}
		c.Next()
	}
}
