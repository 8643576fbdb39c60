package service

import (
	"context"

	"github.com/mhsanaei/memo/database"
	"github.com/mhsanaei/memo/database/model"
)

// MemoService runs memo operations on behalf of an explicitly named user.
type MemoService struct {
	store       database.Store
	userService *UserService
}

func NewMemoService(store database.Store, userService *UserService) *MemoService {
	return &MemoService{store: store, userService: userService}
}

func (s *MemoService) Create(ctx context.Context, username, title, content string) (*model.Memo, error) {
	user, err := s.userService.ResolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	memo := &model.Memo{
		UserId:  user.Id,
		Title:   title,
		Content: content,
	}
	if err := s.store.CreateMemo(ctx, memo); err != nil {
		return nil, err
	}
	return memo, nil
}

func (s *MemoService) List(ctx context.Context, username string) ([]model.Memo, error) {
	user, err := s.userService.ResolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.store.ListMemos(ctx, user.Id)
}

func (s *MemoService) Get(ctx context.Context, username string, memoId int) (*model.Memo, error) {
	user, err := s.userService.ResolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	memo, err := s.store.GetMemo(ctx, user.Id, memoId)
	return memo, mapMemoError(err)
}

func (s *MemoService) Update(ctx context.Context, username string, memoId int, patch model.MemoPatch) (*model.Memo, error) {
	user, err := s.userService.ResolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	memo, err := s.store.UpdateMemo(ctx, user.Id, memoId, patch)
	return memo, mapMemoError(err)
}

func (s *MemoService) Delete(ctx context.Context, username string, memoId int) error {
	user, err := s.userService.ResolveUser(ctx, username)
	if err != nil {
		return err
	}
	return mapMemoError(s.store.DeleteMemo(ctx, user.Id, memoId))
}

func mapMemoError(err error) error {
	if database.IsNotFound(err) {
		return ErrMemoNotFound
	}
	return err
}
