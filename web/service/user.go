package service

import (
	"context"
	"errors"

	"github.com/mhsanaei/memo/database"
	"github.com/mhsanaei/memo/database/model"
	"github.com/mhsanaei/memo/logger"
	"github.com/mhsanaei/memo/util/crypto"
)

type UserService struct {
	store database.Store
}

func NewUserService(store database.Store) *UserService {
	return &UserService{store: store}
}

// Signup registers a new account. The username is checked first so a
// duplicate never reaches the hasher; the unique index catches the race.
func (s *UserService) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	_, err := s.store.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, ErrUserExists
	}
	if !database.IsNotFound(err) {
		return nil, err
	}

	hashed, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hashed,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	logger.Infof("user %q signed up", username)
	return user, nil
}

// CheckUser returns the user when password matches. A missing user and a
// wrong password both yield ErrInvalidCredentials.
func (s *UserService) CheckUser(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ResolveUser maps a session username to its account.
func (s *UserService) ResolveUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
