package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mhsanaei/memo/config"
	"github.com/mhsanaei/memo/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	c, err := config.ParseDatabaseConfig(filepath.Join(t.TempDir(), "memo.db"), config.DriverGorm)
	require.NoError(t, err)

	store, err := Open(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	gs, ok := store.(*GormStore)
	require.True(t, ok, "expected *GormStore, got %T", store)
	return gs
}

func seedUser(t *testing.T, s Store, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@x.io", Password: "hash"}
	require.NoError(t, s.CreateUser(context.Background(), u))
	require.NotZero(t, u.Id)
	return u
}

func TestGormStore_Users(t *testing.T) {
	s := newTestGormStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice")

	got, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.Id, got.Id)
	assert.Equal(t, "hash", got.Password)

	_, err = s.GetUserByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsNotFound(err))

	err = s.CreateUser(ctx, &model.User{Username: "alice", Email: "other@x.io", Password: "h"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestGormStore_MemoLifecycle(t *testing.T) {
	s := newTestGormStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice")

	first := &model.Memo{UserId: alice.Id, Title: "a", Content: "x"}
	second := &model.Memo{UserId: alice.Id, Title: "b", Content: "y"}
	require.NoError(t, s.CreateMemo(ctx, first))
	require.NoError(t, s.CreateMemo(ctx, second))
	assert.Greater(t, second.Id, first.Id)

	memos, err := s.ListMemos(ctx, alice.Id)
	require.NoError(t, err)
	require.Len(t, memos, 2)
	assert.Equal(t, "a", memos[0].Title)
	assert.Equal(t, "b", memos[1].Title)

	title := "A"
	updated, err := s.UpdateMemo(ctx, alice.Id, first.Id, model.MemoPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "A", updated.Title)
	assert.Equal(t, "x", updated.Content)

	got, err := s.GetMemo(ctx, alice.Id, first.Id)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)

	unchanged, err := s.UpdateMemo(ctx, alice.Id, first.Id, model.MemoPatch{})
	require.NoError(t, err)
	assert.Equal(t, got, unchanged)

	require.NoError(t, s.DeleteMemo(ctx, alice.Id, first.Id))
	_, err = s.GetMemo(ctx, alice.Id, first.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteMemo(ctx, alice.Id, first.Id), ErrNotFound)

	memos, err = s.ListMemos(ctx, alice.Id)
	require.NoError(t, err)
	assert.Len(t, memos, 1)
}

func TestGormStore_OwnershipScoping(t *testing.T) {
	s := newTestGormStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	memo := &model.Memo{UserId: alice.Id, Title: "private", Content: "secret"}
	require.NoError(t, s.CreateMemo(ctx, memo))

	memos, err := s.ListMemos(ctx, bob.Id)
	require.NoError(t, err)
	assert.NotNil(t, memos)
	assert.Empty(t, memos)

	_, err = s.GetMemo(ctx, bob.Id, memo.Id)
	assert.ErrorIs(t, err, ErrNotFound)

	title := "hijacked"
	_, err = s.UpdateMemo(ctx, bob.Id, memo.Id, model.MemoPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteMemo(ctx, bob.Id, memo.Id), ErrNotFound)

	got, err := s.GetMemo(ctx, alice.Id, memo.Id)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Title)
}

func TestGormStore_Checkpoint(t *testing.T) {
	s := newTestGormStore(t)
	assert.NoError(t, s.Checkpoint())

	var _ Checkpointer = s
}

func TestGormStore_ForeignKeysOnEveryConnection(t *testing.T) {
	s := newTestGormStore(t)
	ctx := context.Background()

	sqlDB, err := s.DB().DB()
	require.NoError(t, err)

	conns := make([]*sql.Conn, 0, 3)
	defer func() {
		for _, conn := range conns {
			_ = conn.Close()
		}
	}()
	for i := 0; i < 3; i++ {
		conn, err := sqlDB.Conn(ctx)
		require.NoError(t, err)
		conns = append(conns, conn)

		var enabled int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled))
		assert.Equal(t, 1, enabled, "connection %d", i)
	}
}

func TestGormStore_MemoRequiresExistingUser(t *testing.T) {
	s := newTestGormStore(t)
	ctx := context.Background()

	err := s.CreateMemo(ctx, &model.Memo{UserId: 9999, Title: "orphan", Content: "x"})
	assert.Error(t, err)

	memos, err := s.ListMemos(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, memos)
}

func TestOpen_RejectsSQLDriverOnSQLite(t *testing.T) {
	c := &config.DatabaseConfig{
		Type:   config.DatabaseTypeSQLite,
		Driver: config.DriverSQL,
		DSN:    filepath.Join(t.TempDir(), "memo.db"),
	}
	_, err := Open(context.Background(), c)
	assert.Error(t, err)
}

func TestIsDuplicateEntryError(t *testing.T) {
	assert.False(t, isDuplicateEntryError(nil))
	assert.False(t, isDuplicateEntryError(assert.AnError))
	assert.True(t, isDuplicateEntryError(errors.New("UNIQUE constraint failed: users.username")))
	assert.True(t, isDuplicateEntryError(errors.New(`ERROR: duplicate key value violates unique constraint "users_username_key"`)))
}
