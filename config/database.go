package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DatabaseType represents the type of database
type DatabaseType string

const (
	DatabaseTypeSQLite     DatabaseType = "sqlite"
	DatabaseTypePostgreSQL DatabaseType = "postgres"
)

// DriverType selects which store implementation talks to the database.
type DriverType string

const (
	DriverGorm DriverType = "gorm"
	DriverSQL  DriverType = "sql"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Type   DatabaseType `json:"type"`
	Driver DriverType   `json:"driver"`
	DSN    string       `json:"-"`
}

// ParseDatabaseConfig builds a DatabaseConfig from a connection string.
// postgres:// and postgresql:// URLs as well as key=value DSNs containing
// host= select PostgreSQL; anything else is a SQLite path, optionally
// prefixed with sqlite: or sqlite://.
func ParseDatabaseConfig(dsn string, driver DriverType) (*DatabaseConfig, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("database connection string cannot be empty")
	}
	if driver == "" {
		driver = DriverGorm
	}

	c := &DatabaseConfig{Driver: driver}
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		c.Type = DatabaseTypePostgreSQL
		c.DSN = dsn
	case strings.Contains(dsn, "host=") && strings.Contains(dsn, "dbname="):
		c.Type = DatabaseTypePostgreSQL
		c.DSN = dsn
	case strings.HasPrefix(dsn, "sqlite://"):
		c.Type = DatabaseTypeSQLite
		c.DSN = strings.TrimPrefix(dsn, "sqlite://")
	case strings.HasPrefix(dsn, "sqlite:"):
		c.Type = DatabaseTypeSQLite
		c.DSN = strings.TrimPrefix(dsn, "sqlite:")
	default:
		c.Type = DatabaseTypeSQLite
		c.DSN = dsn
	}

	if err := c.ValidateConfig(); err != nil {
		return nil, err
	}
	return c, nil
}

// GetDatabaseConfig returns the database configuration from the environment.
func GetDatabaseConfig() (*DatabaseConfig, error) {
	return ParseDatabaseConfig(GetDBDSN(), GetDBDriver())
}

// ValidateConfig validates the database configuration
func (c *DatabaseConfig) ValidateConfig() error {
	switch c.Type {
	case DatabaseTypeSQLite:
		if c.DSN == "" {
			return fmt.Errorf("SQLite path cannot be empty")
		}
		if c.Driver == DriverSQL {
			return fmt.Errorf("driver %q requires a PostgreSQL connection string", c.Driver)
		}
	case DatabaseTypePostgreSQL:
	default:
		return fmt.Errorf("unsupported database type: %s", c.Type)
	}

	switch c.Driver {
	case DriverGorm, DriverSQL:
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
	return nil
}

// IsPostgreSQL returns true if the database type is PostgreSQL
func (c *DatabaseConfig) IsPostgreSQL() bool {
	return c.Type == DatabaseTypePostgreSQL
}

// IsSQLite returns true if the database type is SQLite
func (c *DatabaseConfig) IsSQLite() bool {
	return c.Type == DatabaseTypeSQLite
}

// EnsureDirectoryExists ensures the directory for SQLite database exists
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	if c.Type == DatabaseTypeSQLite {
		dir := filepath.Dir(c.DSN)
		return os.MkdirAll(dir, 0o755)
	}
	return nil
}
