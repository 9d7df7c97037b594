package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "LOG_LEVEL", "DATABASE_URL", "MYSQL_DATABASE_URL", "POSTGRES_DRIVER", "MAX_BODY_BYTES", "DB_CONNECT_TIMEOUT", "S3_BUCKET_NAME"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "postgres", cfg.PostgresDriver)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, "memory", cfg.Redacted())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://app:hunter2@db:5432/qianchuan")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("DB_CONN_MAX_LIFETIME", "1m")
	t.Setenv("DB_CREATE_IF_MISSING", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://ads.example.com")
	t.Setenv("MAX_BODY_BYTES", "4096")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 20, cfg.MaxOpenConns)
	assert.Equal(t, time.Minute, cfg.ConnMaxLifetime)
	assert.True(t, cfg.CreateIfMissing)
	assert.Equal(t, []string{"http://localhost:5173", "https://ads.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, int64(4096), cfg.MaxBodyBytes)
	assert.NotContains(t, cfg.Redacted(), "hunter2")

	opts := cfg.DBOptions()
	assert.Equal(t, cfg.DatabaseURL, opts.URL)
	assert.Equal(t, 20, opts.MaxOpenConns)
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	_, err := Load()
	assert.ErrorContains(t, err, "DB_MAX_OPEN_CONNS")

	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("MAX_BODY_BYTES", "-1")
	_, err = Load()
	assert.ErrorContains(t, err, "MAX_BODY_BYTES")
}

func TestLoadDotEnv(t *testing.T) {
	loaded, err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.False(t, loaded)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CAMPAIGN_TEST_DOTENV=from-file\n"), 0o600))
	t.Setenv("CAMPAIGN_TEST_DOTENV", "")
	os.Unsetenv("CAMPAIGN_TEST_DOTENV")

	loaded, err = LoadDotEnv(path)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "from-file", os.Getenv("CAMPAIGN_TEST_DOTENV"))
	os.Unsetenv("CAMPAIGN_TEST_DOTENV")
}

func TestS3ObjectURL(t *testing.T) {
	s := S3Settings{Bucket: "ads-media", Region: "ap-east-1"}
	assert.Equal(t, "https://ads-media.s3.ap-east-1.amazonaws.com/products/a.jpg", s.ObjectURL("products/a.jpg"))

	s.PublicBaseURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/products/a.jpg", s.ObjectURL("products/a.jpg"))
}

func TestNewS3ConfigDisabledWithoutBucket(t *testing.T) {
	cfg, err := NewS3Config(context.Background(), S3Settings{})
	require.NoError(t, err)
	assert.Nil(t, cfg)
}
