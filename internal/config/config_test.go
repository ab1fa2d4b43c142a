package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, firstRun, err := LoadOrCreate(path)

	require.NoError(t, err)
	assert.True(t, firstRun)
	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "sqlite", cfg.History.Driver)
	require.FileExists(t, path)

	again, firstRun, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.False(t, firstRun)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreate_NormalizesFields(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{"log_level":" DEBUG ","history":{"enabled":false,"driver":"SQLite3"},"input_charset":"gbk"}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, firstRun, err := LoadOrCreate(path)

	require.NoError(t, err)
	assert.False(t, firstRun)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.Equal(t, "sqlite3", cfg.History.Driver)
	assert.Equal(t, "gbk", cfg.InputCharset)
}

func TestLoadOrCreate_Rejects(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"broken json":      `{"title":`,
		"unknown driver":   `{"history":{"driver":"oracle"}}`,
		"negative timeout": `{"run_timeout_seconds":-1}`,
		"server no dsn":    `{"history":{"enabled":true,"driver":"postgres"}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

			_, _, err := LoadOrCreate(path)
			require.Error(t, err)
		})
	}
}

func TestNormalize_ServerDriverWithDSN(t *testing.T) {
	t.Parallel()
	cfg := &Config{History: HistoryConfig{Enabled: true, Driver: "mysql", DSN: "u:p@tcp(localhost:3306)/memlab"}}

	require.NoError(t, cfg.Normalize())
	assert.Equal(t, "mysql", cfg.History.Driver)
}
