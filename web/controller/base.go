// Package controller provides the HTTP handlers of the memo panel: account
// routes, memo routes and the public pages.
package controller

import (
	"net/http"

	"github.com/mhsanaei/memo/web/locale"
	"github.com/mhsanaei/memo/web/session"

	"github.com/gin-gonic/gin"
)

const loginUsernameKey = "login_username"

// BaseController provides common functionality for all controllers.
type BaseController struct{}

// checkLogin rejects anonymous requests and hands the logged-in username to
// the handlers through the gin context.
func (a *BaseController) checkLogin(c *gin.Context) {
	username := session.GetLoginUsername(c)
	if username == "" {
		pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "toasts.loginAgain"))
		c.Abort()
		return
	}
	c.Set(loginUsernameKey, username)
	c.Next()
}

// getLoginUsername is only valid behind checkLogin.
func getLoginUsername(c *gin.Context) string {
	return c.GetString(loginUsernameKey)
}

// I18nWeb localizes name for the current request.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	return locale.I18n(locale.GetLocalizer(c), name, params...)
}
