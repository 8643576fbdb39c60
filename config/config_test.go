package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatabaseConfig(t *testing.T) {
	tests := []struct {
		name     string
		dsn      string
		driver   DriverType
		wantType DatabaseType
		wantDSN  string
		wantErr  bool
	}{
		{
			name:     "bare sqlite path",
			dsn:      "/etc/memo/memo.db",
			wantType: DatabaseTypeSQLite,
			wantDSN:  "/etc/memo/memo.db",
		},
		{
			name:     "sqlite scheme",
			dsn:      "sqlite:///tmp/memo.db",
			wantType: DatabaseTypeSQLite,
			wantDSN:  "/tmp/memo.db",
		},
		{
			name:     "sqlite prefix",
			dsn:      "sqlite:memo.db",
			wantType: DatabaseTypeSQLite,
			wantDSN:  "memo.db",
		},
		{
			name:     "postgres url",
			dsn:      "postgres://memo:pw@localhost:5432/memo?sslmode=disable",
			wantType: DatabaseTypePostgreSQL,
			wantDSN:  "postgres://memo:pw@localhost:5432/memo?sslmode=disable",
		},
		{
			name:     "postgres key value with sql driver",
			dsn:      "host=localhost user=memo dbname=memo sslmode=disable",
			driver:   DriverSQL,
			wantType: DatabaseTypePostgreSQL,
			wantDSN:  "host=localhost user=memo dbname=memo sslmode=disable",
		},
		{
			name:    "sql driver on sqlite",
			dsn:     "memo.db",
			driver:  DriverSQL,
			wantErr: true,
		},
		{
			name:    "unknown driver",
			dsn:     "memo.db",
			driver:  "mongo",
			wantErr: true,
		},
		{
			name:    "empty",
			dsn:     "  ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseDatabaseConfig(tt.dsn, tt.driver)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, c.Type)
			assert.Equal(t, tt.wantDSN, c.DSN)
		})
	}
}

func TestDefaultsFromEnvironment(t *testing.T) {
	t.Setenv("MEMO_DEBUG", "")
	t.Setenv("MEMO_DB_DSN", "")
	t.Setenv("MEMO_DB_FOLDER", "/data")
	t.Setenv("MEMO_PORT", "")
	t.Setenv("MEMO_SESSION_STORE", "")
	t.Setenv("MEMO_LOGIN_RATE", "")

	assert.Equal(t, "/data/memo.db", GetDBDSN())
	assert.Equal(t, DriverGorm, GetDBDriver())
	assert.Equal(t, SessionStoreCookie, GetSessionStore())
	assert.Equal(t, Info, GetLogLevel())

	port, err := GetPort()
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	rate, err := GetLoginRate()
	require.NoError(t, err)
	assert.Equal(t, 10, rate)
}

func TestDebugOverridesLogLevel(t *testing.T) {
	t.Setenv("MEMO_DEBUG", "true")
	t.Setenv("MEMO_LOG_LEVEL", "error")
	assert.Equal(t, Debug, GetLogLevel())
}

func TestGetIntRejectsGarbage(t *testing.T) {
	t.Setenv("MEMO_PORT", "eighty")
	_, err := GetPort()
	assert.Error(t, err)

	t.Setenv("MEMO_SESSION_MAX_AGE", "-5")
	_, err = GetSessionMaxAge()
	assert.Error(t, err)
}

func TestLoadEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MEMO_LISTEN=10.0.0.1\nMEMO_REDIS_ADDR=redis:6379\n"), 0o600))

	t.Setenv("MEMO_LISTEN", "127.0.0.1")
	t.Setenv("MEMO_REDIS_ADDR", "")
	os.Unsetenv("MEMO_REDIS_ADDR")

	LoadEnv(path, filepath.Join(dir, "missing.env"))

	assert.Equal(t, "127.0.0.1", GetListen())
	assert.Equal(t, "redis:6379", GetRedisAddr())
}

func TestNameAndVersionEmbedded(t *testing.T) {
	assert.Equal(t, "memo", GetName())
	assert.NotEmpty(t, GetVersion())
}

func TestGetTrustedProxies(t *testing.T) {
	t.Setenv("MEMO_TRUSTED_PROXIES", "")
	assert.Nil(t, GetTrustedProxies())

	t.Setenv("MEMO_TRUSTED_PROXIES", " 10.0.0.1, ,192.168.0.0/16 ")
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, GetTrustedProxies())
}
