package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig.Web.Port, cfg.Web.Port)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehub.yml")
	data := []byte("web:\n  host: 127.0.0.1\n  port: 8080\ndatabase:\n  type: memory\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	assert.Equal(t, 8080, cfg.Web.Port)
	assert.Equal(t, "memory", cfg.Database.Type)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("WAREHUB_WEB_PORT", "9090")
	t.Setenv("WAREHUB_DB_NAME", "warehub_test")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "warehub_test", cfg.Database.Name)
}

func TestDSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Passwd: "p", Name: "warehub"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=warehub sslmode=disable", c.DSN())
}
