package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Region.CacheTTL)
	assert.Equal(t, time.Hour, cfg.Region.WarmInterval)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "http://localhost:8080/uploads", cfg.Storage.BaseURL)
	assert.Equal(t, []string{"*"}, cfg.App.CORSAllowedOrigins)
	assert.Equal(t, time.Hour, cfg.JWT.AccessExpiration)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequired(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REGION_CACHE_TTL", "30m")
	t.Setenv("DB_QUERY_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://hr.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 30*time.Minute, cfg.Region.CacheTTL)
	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, []string{"https://hr.example.com", "https://admin.example.com"}, cfg.App.CORSAllowedOrigins)
	assert.Equal(t, "http://localhost:9090/uploads", cfg.Storage.BaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequired(t)
	t.Setenv("REGION_CACHE_TTL", "one day")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_RequiresSecrets(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{QueryTimeout: time.Second},
		Region:   RegionConfig{CacheTTL: time.Hour, WarmInterval: time.Hour},
		Storage:  StorageConfig{Type: "local"},
	}
	assert.Error(t, cfg.Validate())

	cfg.Database.Password = "secret"
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "jwt"
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5432, Name: "att", SSLMode: "disable"}}
	assert.Equal(t, "postgres://u:p@db:5432/att?sslmode=disable", cfg.DatabaseURL())
}

func TestDatabaseURL_EscapesCredentials(t *testing.T) {
	d := DatabaseConfig{User: "app", Password: "p@ss:word", Host: "db", Port: 5432, Name: "att", SSLMode: "require"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/att?sslmode=require", d.URL())
}

func TestLoadDatabase_IgnoresAppSecrets(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("DB_NAME", "attendance_test")

	d, err := LoadDatabase()
	require.NoError(t, err)
	assert.Equal(t, "attendance_test", d.Name)
}
