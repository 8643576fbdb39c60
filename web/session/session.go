// Package session keeps the login state of a browser. The session holds a
// single value: the username of the logged-in user.
package session

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	Name      = "memo"
	loginUser = "username"
)

// Options returns the cookie options for a session living maxAge seconds.
// Zero means the cookie ends with the browser session.
func Options(maxAge int) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func SetLoginUsername(c *gin.Context, username string) error {
	s := sessions.Default(c)
	s.Set(loginUser, username)
	return s.Save()
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(Options(maxAge))
	return s.Save()
}

// GetLoginUsername returns the logged-in username, or "" when anonymous.
func GetLoginUsername(c *gin.Context) string {
	s := sessions.Default(c)
	if username, ok := s.Get(loginUser).(string); ok {
		return username
	}
	return ""
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUsername(c) != ""
}

// ClearSession drops the login and expires the cookie. It succeeds for
// anonymous sessions too.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(loginUser)
	s.Clear()
	s.Options(Options(-1))
	return s.Save()
}
