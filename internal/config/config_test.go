package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))

	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 300*time.Millisecond, cfg.AutoSaveDelay)
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "all set",
			env: map[string]string{
				"PORT": "9090", "DB_PATH": "/tmp/d.db", "LOG_LEVEL": "DEBUG", "AUTOSAVE_DELAY": "1s",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "9090", cfg.Port)
				assert.Equal(t, "/tmp/d.db", cfg.DBPath)
				assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
				assert.Equal(t, time.Second, cfg.AutoSaveDelay)
			},
		},
		{
			name:  "blank values fall back",
			env:   map[string]string{"PORT": "  ", "LOG_LEVEL": ""},
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, DefaultPort, cfg.Port) },
		},
		{name: "non-numeric port", env: map[string]string{"PORT": "http"}, wantErr: true},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}, wantErr: true},
		{name: "unknown log level", env: map[string]string{"LOG_LEVEL": "loud"}, wantErr: true},
		{name: "bad delay", env: map[string]string{"AUTOSAVE_DELAY": "soon"}, wantErr: true},
		{name: "negative delay", env: map[string]string{"AUTOSAVE_DELAY": "-1s"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnv(envOf(tt.env))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=7070\nDB_PATH=from-file.db\n"), 0o600))
	t.Chdir(dir)
	// godotenv never overrides a variable that exists, even if empty.
	t.Setenv("PORT", "")
	require.NoError(t, os.Unsetenv("PORT"))
	t.Setenv("DB_PATH", "from-env.db")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "from-env.db", cfg.DBPath)
}
