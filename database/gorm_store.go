package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/mhsanaei/memo/database/model"
	"github.com/mhsanaei/memo/logger"

	"gorm.io/gorm"
)

// GormStore is the Store backed by GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	if db == nil {
		panic("database connection cannot be nil for GormStore")
	}
	return &GormStore{db: db}
}

// DB exposes the underlying handle for maintenance commands.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func (s *GormStore) CreateUser(ctx context.Context, user *model.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateEntryError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("gorm: create user %q: %w", user.Username, err)
	}
	return nil
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	err := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find user by username %q: %w", username, err)
	}
	return user, nil
}

func (s *GormStore) CreateMemo(ctx context.Context, memo *model.Memo) error {
	if err := s.db.WithContext(ctx).Create(memo).Error; err != nil {
		return fmt.Errorf("gorm: create memo for user %d: %w", memo.UserId, err)
	}
	return nil
}

func (s *GormStore) ListMemos(ctx context.Context, userId int) ([]model.Memo, error) {
	memos := make([]model.Memo, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("id").
		Find(&memos).
		Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list memos of user %d: %w", userId, err)
	}
	return memos, nil
}

func (s *GormStore) GetMemo(ctx context.Context, userId, memoId int) (*model.Memo, error) {
	return findMemo(s.db.WithContext(ctx), userId, memoId)
}

func findMemo(tx *gorm.DB, userId, memoId int) (*model.Memo, error) {
	memo := &model.Memo{}
	err := tx.Where("id = ? AND user_id = ?", memoId, userId).First(memo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find memo %d of user %d: %w", memoId, userId, err)
	}
	return memo, nil
}

func (s *GormStore) UpdateMemo(ctx context.Context, userId, memoId int, patch model.MemoPatch) (*model.Memo, error) {
	var memo *model.Memo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findMemo(tx, userId, memoId)
		if err != nil {
			return err
		}
		memo = found
		if patch.Empty() {
			return nil
		}
		patch.Apply(memo)
		return tx.Model(memo).
			Select("title", "content").
			Updates(map[string]any{"title": memo.Title, "content": memo.Content}).
			Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("gorm: update memo %d of user %d: %w", memoId, userId, err)
	}
	return memo, nil
}

func (s *GormStore) DeleteMemo(ctx context.Context, userId, memoId int) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", memoId, userId).
		Delete(&model.Memo{})
	if result.Error != nil {
		return fmt.Errorf("gorm: delete memo %d of user %d: %w", memoId, userId, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Checkpoint folds the SQLite WAL back into the database file. It is a
// no-op on other databases.
func (s *GormStore) Checkpoint() error {
	if s.db.Dialector.Name() != "sqlite" {
		return nil
	}
	return s.db.Exec("PRAGMA wal_checkpoint;").Error
}

func (s *GormStore) Close() error {
	if err := s.Checkpoint(); err != nil {
		logger.Warning("error executing checkpoint:", err)
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
