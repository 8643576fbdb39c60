package controller

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/mhsanaei/memo/config"
	"github.com/mhsanaei/memo/logger"
	"github.com/mhsanaei/memo/web/entity"
	"github.com/mhsanaei/memo/web/locale"
	"github.com/mhsanaei/memo/web/middleware"
	"github.com/mhsanaei/memo/web/service"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return strings.TrimSpace(ips[0])
	}
	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}

func jsonMsg(c *gin.Context, msg string, err error) {
	jsonMsgObj(c, msg, nil, err)
}

func jsonObj(c *gin.Context, obj any, err error) {
	jsonMsgObj(c, "", obj, err)
}

// jsonMsgObj answers 200 with the envelope, or hands err to
// handleServiceError.
func jsonMsgObj(c *gin.Context, msg string, obj any, err error) {
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Msg{
		Success: true,
		Msg:     msg,
		Obj:     obj,
	})
}

func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// handleServiceError maps service errors to a status and a localized
// message. Unknown errors are logged and answered with a generic 500.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserExists):
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "toasts.userExists"))
	case errors.Is(err, service.ErrInvalidInput):
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "toasts.invalidFormData"))
	case errors.Is(err, service.ErrInvalidCredentials):
		pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "toasts.invalidCredentials"))
	case errors.Is(err, service.ErrUserNotFound):
		pureJsonMsg(c, http.StatusNotFound, false, I18nWeb(c, "toasts.userNotFound"))
	case errors.Is(err, service.ErrMemoNotFound):
		pureJsonMsg(c, http.StatusNotFound, false, I18nWeb(c, "toasts.memoNotFound"))
	default:
		logger.Errorf("%s %s failed (request %s): %v",
			c.Request.Method, c.Request.URL.Path, middleware.GetRequestID(c), err)
		pureJsonMsg(c, http.StatusInternalServerError, false, I18nWeb(c, "toasts.serverError"))
	}
}

// html renders an HTML template with the provided data and title key.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["loc"] = locale.GetLocalizer(c)
	data["request_uri"] = c.Request.RequestURI
	c.HTML(http.StatusOK, name, getContext(data))
}

// getContext adds version and other context data to the provided gin.H.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver": config.GetVersion(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}
