// Package entity defines the request forms and the response envelope of the
// memo panel.
package entity

import "github.com/mhsanaei/memo/database/model"

// Msg is the envelope of every JSON response.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

type SignupForm struct {
	Username string `json:"username" form:"username" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginForm fields are not required: a missing field is an ordinary failed
// login.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// MemoCreateForm needs both fields present; empty strings are accepted.
type MemoCreateForm struct {
	Title   *string `json:"title" form:"title" binding:"required"`
	Content *string `json:"content" form:"content" binding:"required"`
}

// MemoUpdateForm fields are optional. An omitted field keeps its value.
type MemoUpdateForm struct {
	Title   *string `json:"title" form:"title"`
	Content *string `json:"content" form:"content"`
}

func (f MemoUpdateForm) Patch() model.MemoPatch {
	return model.MemoPatch{
		Title:   f.Title,
		Content: f.Content,
	}
}
