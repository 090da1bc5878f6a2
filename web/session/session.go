// Package session stores the admin authorization flag in the cookie session.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	isAdminKey   = "isAdmin"
	adminUserKey = "adminUser"

	// MaxAge is the fixed session time to live.
	MaxAge = 24 * 60 * 60
)

// SetAdmin marks the session as authenticated for the given administrator.
func SetAdmin(c *gin.Context, username string) error {
	s := sessions.Default(c)
	s.Set(isAdminKey, true)
	s.Set(adminUserKey, username)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   MaxAge,
		HttpOnly: true,
	})
	return s.Save()
}

// IsAdmin reports whether the current session is authenticated.
func IsAdmin(c *gin.Context) bool {
	s := sessions.Default(c)
	if v, ok := s.Get(isAdminKey).(bool); ok {
		return v
	}
	return false
}

// GetAdminUser returns the username stored at login, or "".
func GetAdminUser(c *gin.Context) string {
	s := sessions.Default(c)
	if v, ok := s.Get(adminUserKey).(string); ok {
		return v
	}
	return ""
}

// Clear invalidates the session.
func Clear(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
