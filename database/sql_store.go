package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mhsanaei/memo/database/migrations"
	"github.com/mhsanaei/memo/database/model"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const pgUniqueViolation = "23505"

// SQLStore is the Store backed by hand-written PostgreSQL queries.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// OpenSQLStore connects through the pgx driver and runs the migrations.
func OpenSQLStore(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	s := NewSQLStore(db)
	if err := s.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return s, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded goose migrations.
func (s *SQLStore) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, s.db, ".")
}

func (s *SQLStore) CreateUser(ctx context.Context, user *model.User) error {
	query :=
		`INSERT INTO users (username, email, hashed_password)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	err := s.db.QueryRowContext(ctx, query, user.Username, user.Email, user.Password).Scan(&user.Id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query :=
		`SELECT id, username, email, hashed_password FROM users
		 WHERE username = $1`

	user := &model.User{}
	err := s.db.QueryRowContext(ctx, query, username).Scan(&user.Id, &user.Username, &user.Email, &user.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (s *SQLStore) CreateMemo(ctx context.Context, memo *model.Memo) error {
	query :=
		`INSERT INTO memos (user_id, title, content)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	if err := s.db.QueryRowContext(ctx, query, memo.UserId, memo.Title, memo.Content).Scan(&memo.Id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *SQLStore) ListMemos(ctx context.Context, userId int) ([]model.Memo, error) {
	query :=
		`SELECT id, user_id, title, content FROM memos
		 WHERE user_id = $1
		 ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, userId)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	memos := make([]model.Memo, 0)
	for rows.Next() {
		var m model.Memo
		if err := rows.Scan(&m.Id, &m.UserId, &m.Title, &m.Content); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		memos = append(memos, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return memos, nil
}

func (s *SQLStore) GetMemo(ctx context.Context, userId, memoId int) (*model.Memo, error) {
	query :=
		`SELECT id, user_id, title, content FROM memos
		 WHERE id = $1 AND user_id = $2`

	return s.scanMemo(s.db.QueryRowContext(ctx, query, memoId, userId))
}

// UpdateMemo patches the row in one statement; COALESCE keeps the stored
// value for fields the patch leaves nil.
func (s *SQLStore) UpdateMemo(ctx context.Context, userId, memoId int, patch model.MemoPatch) (*model.Memo, error) {
	if patch.Empty() {
		return s.GetMemo(ctx, userId, memoId)
	}

	query :=
		`UPDATE memos
		 SET title = COALESCE($3, title), content = COALESCE($4, content)
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, content`

	return s.scanMemo(s.db.QueryRowContext(ctx, query, memoId, userId, nullString(patch.Title), nullString(patch.Content)))
}

func (s *SQLStore) DeleteMemo(ctx context.Context, userId, memoId int) error {
	query := `DELETE FROM memos WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, memoId, userId)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) scanMemo(row *sql.Row) (*model.Memo, error) {
	m := &model.Memo{}
	if err := row.Scan(&m.Id, &m.UserId, &m.Title, &m.Content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
