package service

import (
	"context"

	"github.com/mhsanaei/memo/database/model"

	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockStore) CreateMemo(ctx context.Context, memo *model.Memo) error {
	return m.Called(ctx, memo).Error(0)
}

func (m *mockStore) ListMemos(ctx context.Context, userId int) ([]model.Memo, error) {
	args := m.Called(ctx, userId)
	memos, _ := args.Get(0).([]model.Memo)
	return memos, args.Error(1)
}

func (m *mockStore) GetMemo(ctx context.Context, userId, memoId int) (*model.Memo, error) {
	args := m.Called(ctx, userId, memoId)
	memo, _ := args.Get(0).(*model.Memo)
	return memo, args.Error(1)
}

func (m *mockStore) UpdateMemo(ctx context.Context, userId, memoId int, patch model.MemoPatch) (*model.Memo, error) {
	args := m.Called(ctx, userId, memoId, patch)
	memo, _ := args.Get(0).(*model.Memo)
	return memo, args.Error(1)
}

func (m *mockStore) DeleteMemo(ctx context.Context, userId, memoId int) error {
	return m.Called(ctx, userId, memoId).Error(0)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}
