package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "test-secret-key-for-unit-testing"
db:
  driver: sqlite
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Pagination.DefaultPageSize)
	assert.Equal(t, 100, cfg.Pagination.MaxPageSize)
	assert.Equal(t, []string{"Sales", "Marketing", "Engineering", "HR", "Finance"}, cfg.Seed.Departments)
	assert.Equal(t, 5, cfg.Seed.Employees)
	assert.Equal(t, 3, cfg.Seed.ReviewsPerEmployee)
	assert.Equal(t, 20, cfg.Seed.AttendancePerEmployee)
	assert.False(t, cfg.Aggregation.AutoCreateSummaries)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "test-secret-key-for-unit-testing"
server:
  port: 9000
`)
	t.Setenv("EMS_SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:     ServerConfig{Port: 8080},
			Database:   DatabaseConfig{Driver: DriverPostgres},
			Auth:       AuthConfig{JWTSecret: "0123456789abcdef"},
			Pagination: PaginationConfig{DefaultPageSize: 10, MaxPageSize: 100},
			Seed:       SeedConfig{Departments: []string{"HR"}},
		}
	}

	require.NoError(t, base().Validate())

	cases := map[string]func(c *Config){
		"short secret":     func(c *Config) { c.Auth.JWTSecret = "short" },
		"bad port":         func(c *Config) { c.Server.Port = 70000 },
		"unknown driver":   func(c *Config) { c.Database.Driver = "mysql" },
		"page size order":  func(c *Config) { c.Pagination.DefaultPageSize = 200 },
		"no departments":   func(c *Config) { c.Seed.Departments = nil },
		"negative counter": func(c *Config) { c.Seed.Employees = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	c := DatabaseConfig{SQLitePath: "data.db"}
	assert.Equal(t, "data.db?_foreign_keys=on&_busy_timeout=5000", c.SQLiteDSN())

	c.SQLitePath = "file::memory:?cache=shared"
	assert.Equal(t, "file::memory:?cache=shared&_foreign_keys=on&_busy_timeout=5000", c.SQLiteDSN())
}
