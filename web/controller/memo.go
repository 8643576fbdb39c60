package controller

import (
	"errors"
	"io"
	"strconv"

	"github.com/mhsanaei/memo/web/entity"
	"github.com/mhsanaei/memo/web/service"

	"github.com/gin-gonic/gin"
)

// MemoController serves the memo routes. Every route requires a login and
// acts only on the logged-in user's memos.
type MemoController struct {
	BaseController

	memoService *service.MemoService
}

func NewMemoController(g *gin.RouterGroup, memoService *service.MemoService) *MemoController {
	a := &MemoController{memoService: memoService}
	a.initRouter(g)
	return a
}

func (a *MemoController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/memos")
	g.Use(a.checkLogin)

	g.POST("/", a.create)
	g.GET("/", a.list)
	g.GET("/:memo_id", a.get)
	g.PUT("/:memo_id", a.update)
	g.DELETE("/:memo_id", a.delete)
}

func getMemoId(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("memo_id"))
	if err != nil {
		return 0, service.ErrInvalidInput
	}
	return id, nil
}

func (a *MemoController) create(c *gin.Context) {
	var form entity.MemoCreateForm
	if err := c.ShouldBind(&form); err != nil {
		handleServiceError(c, service.ErrInvalidInput)
		return
	}

	memo, err := a.memoService.Create(c.Request.Context(), getLoginUsername(c), *form.Title, *form.Content)
	jsonMsgObj(c, I18nWeb(c, "toasts.memoCreated"), memo, err)
}

// list renders the memo page, or answers JSON when the client asks for it.
func (a *MemoController) list(c *gin.Context) {
	username := getLoginUsername(c)
	memos, err := a.memoService.List(c.Request.Context(), username)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		jsonObj(c, memos, nil)
		return
	}
	html(c, "memos.html", "pages.memos.title", gin.H{
		"username": username,
		"memos":    memos,
	})
}

func (a *MemoController) get(c *gin.Context) {
	id, err := getMemoId(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	memo, err := a.memoService.Get(c.Request.Context(), getLoginUsername(c), id)
	jsonObj(c, memo, err)
}

func (a *MemoController) update(c *gin.Context) {
	id, err := getMemoId(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var form entity.MemoUpdateForm
	if err := c.ShouldBind(&form); err != nil && !errors.Is(err, io.EOF) {
		handleServiceError(c, service.ErrInvalidInput)
		return
	}

	memo, err := a.memoService.Update(c.Request.Context(), getLoginUsername(c), id, form.Patch())
	jsonMsgObj(c, I18nWeb(c, "toasts.memoUpdated"), memo, err)
}

func (a *MemoController) delete(c *gin.Context) {
	id, err := getMemoId(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	err = a.memoService.Delete(c.Request.Context(), getLoginUsername(c), id)
	jsonMsg(c, I18nWeb(c, "toasts.memoDeleted"), err)
}
