// Package config reads the memo panel configuration from the environment.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

type SessionStoreType string

const (
	SessionStoreCookie SessionStoreType = "cookie"
	SessionStoreRedis  SessionStoreType = "redis"
)

const (
	defaultPort      = 8080
	defaultLoginRate = 10
)

// LoadEnv loads variables from the given dotenv files. Missing files are
// skipped and variables already present in the environment win.
func LoadEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env.local", ".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", path, err)
		}
	}
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("MEMO_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("MEMO_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("MEMO_DB_FOLDER")
	if dbFolderPath == "" {
		if IsDebug() {
			return "db"
		}
		dbFolderPath = "/etc/memo"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

// GetDBDSN returns the database connection string. An unset MEMO_DB_DSN
// falls back to the SQLite file in the db folder.
func GetDBDSN() string {
	dsn := os.Getenv("MEMO_DB_DSN")
	if dsn == "" {
		return GetDBPath()
	}
	return dsn
}

func GetDBDriver() DriverType {
	driver := os.Getenv("MEMO_DB_DRIVER")
	if driver == "" {
		return DriverGorm
	}
	return DriverType(strings.ToLower(driver))
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("MEMO_LOG_FOLDER")
	if logFolderPath == "" {
		if IsDebug() {
			return "log"
		}
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetListen() string {
	return os.Getenv("MEMO_LISTEN")
}

func GetPort() (int, error) {
	return getInt("MEMO_PORT", defaultPort)
}

// GetSessionSecret returns the key the session cookie is signed with.
func GetSessionSecret() string {
	return os.Getenv("MEMO_SESSION_SECRET")
}

// GetSessionMaxAge returns the session lifetime in minutes, 0 meaning the
// cookie lives as long as the browser session.
func GetSessionMaxAge() (int, error) {
	return getInt("MEMO_SESSION_MAX_AGE", 0)
}

func GetSessionStore() SessionStoreType {
	store := os.Getenv("MEMO_SESSION_STORE")
	if store == "" {
		return SessionStoreCookie
	}
	return SessionStoreType(strings.ToLower(store))
}

func GetRedisAddr() string {
	return os.Getenv("MEMO_REDIS_ADDR")
}

// GetLoginRate returns how many failed logins one client IP may make per
// minute before being throttled. 0 disables throttling.
func GetLoginRate() (int, error) {
	return getInt("MEMO_LOGIN_RATE", defaultLoginRate)
}

// GetTrustedProxies returns the proxy addresses or CIDRs whose forwarding
// headers are believed when resolving a client IP. Unset means none.
func GetTrustedProxies() []string {
	var proxies []string
	for _, p := range strings.Split(os.Getenv("MEMO_TRUSTED_PROXIES"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}

func getInt(key string, def int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return def, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("can't parse integer from %s value %q: %w", key, value, err)
	}
	if i < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %d", key, i)
	}
	return i, nil
}
