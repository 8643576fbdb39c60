// Package database opens the memo store and implements it on top of GORM
// (SQLite or PostgreSQL) or plain SQL over the pgx driver (PostgreSQL).
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/mhsanaei/memo/config"
	"github.com/mhsanaei/memo/database/model"
	"github.com/mhsanaei/memo/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database, creates the tables if they are
// absent and returns the matching Store.
func Open(ctx context.Context, c *config.DatabaseConfig) (Store, error) {
	if err := c.ValidateConfig(); err != nil {
		return nil, err
	}
	switch c.Driver {
	case config.DriverSQL:
		return OpenSQLStore(ctx, c.DSN)
	default:
		db, err := InitDB(c)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db), nil
	}
}

func initModels(db *gorm.DB) error {
	models := []any{
		&model.User{},
		&model.Memo{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			logger.Errorf("Error auto migrating model %T: %v", m, err)
			return err
		}
	}
	return nil
}

func newGormLogger() gormlogger.Interface {
	level := gormlogger.Warn
	if config.IsDebug() {
		level = gormlogger.Info
	}
	return gormlogger.New(logger.GormWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      !config.IsDebug(),
	})
}

// InitDB opens a GORM connection for c and migrates the schema.
func InitDB(c *config.DatabaseConfig) (*gorm.DB, error) {
	gc := &gorm.Config{
		Logger:                 newGormLogger(),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}

	var dialector gorm.Dialector
	switch c.Type {
	case config.DatabaseTypePostgreSQL:
		dialector = postgres.Open(c.DSN)
	case config.DatabaseTypeSQLite:
		if err := c.EnsureDirectoryExists(); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(c.DSN + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	db, err := gorm.Open(dialector, gc)
	if err != nil {
		return nil, err
	}

	if c.IsSQLite() {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		for _, pragma := range []string{
			"PRAGMA cache_size = -64000;",
			"PRAGMA temp_store = MEMORY;",
		} {
			if _, err := sqlDB.Exec(pragma); err != nil {
				return nil, err
			}
		}
	}

	if err := initModels(db); err != nil {
		return nil, err
	}
	return db, nil
}
