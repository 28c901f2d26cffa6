package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvStoreDriver, "")
	t.Setenv(EnvCurrency, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "CNY", cfg.Currency)
	assert.Equal(t, DefaultModel, cfg.Model)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
store:
  driver: sqlite
  path: /tmp/gold.db
currency: USD
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv(EnvStoreDriver, "")
	t.Setenv(EnvCurrency, "EUR")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "/tmp/gold.db", cfg.Store.Path)
	assert.Equal(t, "EUR", cfg.Currency, "environment must win over the file")
	assert.Equal(t, DefaultModel, cfg.Model)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"bad yaml":   "store: [",
		"bad driver": "store:\n  driver: redis\n  path: x\n",
		"bad format": "log_format: xml\n",
	}
	t.Setenv(EnvStoreDriver, "")
	t.Setenv(EnvLogFormat, "")
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.Currency = "USD"
	require.NoError(t, cfg.Save(path))

	t.Setenv(EnvCurrency, "")
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "USD", got.Currency)
}
