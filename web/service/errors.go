package service

import "errors"

var (
	ErrUserExists         = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrMemoNotFound       = errors.New("memo not found")
	ErrInvalidInput       = errors.New("invalid input")
)
