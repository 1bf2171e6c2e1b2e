package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var c AppConfig
	applyDefaults(&c)

	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, "blogApp", c.AppName)
	assert.Equal(t, "mysql", c.DBDriver)
	assert.Equal(t, "3306", c.DBPort)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
	assert.Equal(t, 20, c.PageSizeDefault)
	assert.Equal(t, 2000, c.PageSizeMax)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"app": {"AppName": "fromFile", "JWTSecret": "file-secret", "MetricsEnabled": false},
		"database": {"Driver": "mysql", "Name": "blogdb"}
	}`), 0o600))

	t.Setenv("APP_NAME", "fromEnv")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PAGE_SIZE_DEFAULT", "not-a-number")

	var c AppConfig
	require.NoError(t, loadJSONConfig(path, &c))
	applyEnvOverrides(&c)
	applyDefaults(&c)

	assert.Equal(t, "fromEnv", c.AppName)
	assert.Equal(t, "file-secret", c.JWTSecret)
	assert.Equal(t, "postgres", c.DBDriver)
	assert.Equal(t, "5432", c.DBPort)
	assert.Equal(t, "blogdb", c.DBName)
	assert.False(t, c.MetricsEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.AllowedOrigins)
	assert.Equal(t, 20, c.PageSizeDefault)
}

func TestLoadJSONConfigMissingFile(t *testing.T) {
	var c AppConfig
	assert.NoError(t, loadJSONConfig(filepath.Join(t.TempDir(), "absent.json"), &c))
}

func TestLoadJSONConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"app":`), 0o600))

	var c AppConfig
	assert.Error(t, loadJSONConfig(path, &c))
}
