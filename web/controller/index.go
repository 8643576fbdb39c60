package controller

import (
	"errors"

	"github.com/mhsanaei/memo/logger"
	"github.com/mhsanaei/memo/web/entity"
	"github.com/mhsanaei/memo/web/service"
	"github.com/mhsanaei/memo/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController handles the public pages and the account routes.
type IndexController struct {
	BaseController

	userService   *service.UserService
	sessionMaxAge int
}

// NewIndexController registers the routes on g. loginGuard runs before the
// login handler; sessionMaxAge is in minutes.
func NewIndexController(g *gin.RouterGroup, userService *service.UserService, loginGuard gin.HandlerFunc, sessionMaxAge int) *IndexController {
	a := &IndexController{
		userService:   userService,
		sessionMaxAge: sessionMaxAge,
	}
	a.initRouter(g, loginGuard)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup, loginGuard gin.HandlerFunc) {
	g.GET("/", a.index)
	g.GET("/about", a.about)

	g.POST("/signup/", a.signup)
	if loginGuard != nil {
		g.POST("/login", loginGuard, a.login)
	} else {
		g.POST("/login", a.login)
	}
	g.POST("/logout", a.logout)
}

func (a *IndexController) index(c *gin.Context) {
	html(c, "home.html", "pages.home.title", gin.H{
		"logged_in": session.IsLogin(c),
	})
}

func (a *IndexController) about(c *gin.Context) {
	jsonMsg(c, I18nWeb(c, "about"), nil)
}

func (a *IndexController) signup(c *gin.Context) {
	var form entity.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		handleServiceError(c, service.ErrInvalidInput)
		return
	}

	_, err := a.userService.Signup(c.Request.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			logger.Warningf("signup with taken username %q, IP: %s", form.Username, getRemoteIp(c))
		}
		handleServiceError(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "toasts.signupSuccess"), nil)
}

func (a *IndexController) login(c *gin.Context) {
	var form entity.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		handleServiceError(c, service.ErrInvalidInput)
		return
	}

	user, err := a.userService.CheckUser(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logger.Warningf("wrong username or password for %q, IP: %s", form.Username, getRemoteIp(c))
		}
		handleServiceError(c, err)
		return
	}

	if err := session.SetMaxAge(c, a.sessionMaxAge*60); err != nil {
		handleServiceError(c, err)
		return
	}
	if err := session.SetLoginUsername(c, user.Username); err != nil {
		handleServiceError(c, err)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Username, getRemoteIp(c))
	jsonMsg(c, I18nWeb(c, "toasts.loginSuccess"), nil)
}

func (a *IndexController) logout(c *gin.Context) {
	if username := session.GetLoginUsername(c); username != "" {
		logger.Infof("%s logged out successfully", username)
	}
	if err := session.ClearSession(c); err != nil {
		handleServiceError(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "toasts.logoutSuccess"), nil)
}
