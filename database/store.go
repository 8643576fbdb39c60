package database

import (
	"context"
	"errors"
	"strings"

	"github.com/mhsanaei/memo/database/model"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("database: record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("database: duplicate entry")
)

// Store is the persistence boundary of the panel. Memo lookups are always
// scoped to the owning user: a memo id belonging to someone else is
// reported as ErrNotFound.
type Store interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	CreateMemo(ctx context.Context, memo *model.Memo) error
	ListMemos(ctx context.Context, userId int) ([]model.Memo, error)
	GetMemo(ctx context.Context, userId, memoId int) (*model.Memo, error)
	// UpdateMemo applies patch to the memo and returns the stored result.
	UpdateMemo(ctx context.Context, userId, memoId int, patch model.MemoPatch) (*model.Memo, error)
	DeleteMemo(ctx context.Context, userId, memoId int) error

	Close() error
}

// Checkpointer is implemented by stores that keep a write-ahead log which
// should be folded back into the main database file now and then.
type Checkpointer interface {
	Checkpoint() error
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// isDuplicateEntryError recognizes unique violations by their driver text
// for the drivers that do not expose a typed error.
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
