package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CONFIG_FILE", "RUN_ADDRESS", "API_URL", "SESSION_SECRET", "SESSION_TTL", "PAGE_TTL", "SECURE_COOKIE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "billed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := New(nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.RunAddress)
	assert.Equal(t, "http://localhost:5678", cfg.APIURL)
	assert.Equal(t, 30*time.Minute, cfg.PageTTL)
	assert.False(t, cfg.SecureCookie)
}

func TestPrecedence(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
run_address: ":9000"
api_url: "http://file-api:5678"
page_ttl: 10m
secure_cookie: true
`)

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := New([]string{"-c", path})
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.RunAddress)
		assert.Equal(t, "http://file-api:5678", cfg.APIURL)
		assert.Equal(t, 10*time.Minute, cfg.PageTTL)
		assert.True(t, cfg.SecureCookie)
	})

	t.Run("flag over file", func(t *testing.T) {
		cfg, err := New([]string{"-c", path, "-a", ":7000"})
		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.RunAddress)
		assert.Equal(t, "http://file-api:5678", cfg.APIURL)
	})

	t.Run("env over flag", func(t *testing.T) {
		t.Setenv("RUN_ADDRESS", ":6000")
		t.Setenv("PAGE_TTL", "1m")
		cfg, err := New([]string{"-c", path, "-a", ":7000"})
		require.NoError(t, err)
		assert.Equal(t, ":6000", cfg.RunAddress)
		assert.Equal(t, time.Minute, cfg.PageTTL)
	})
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"bad env duration", nil, map[string]string{"PAGE_TTL": "soon"}},
		{"bad env bool", nil, map[string]string{"SECURE_COOKIE": "maybe"}},
		{"empty secret", []string{"-s", ""}, nil},
		{"negative ttl", []string{"-t", "-1m"}, nil},
		{"missing file", []string{"-c", "/nonexistent/billed.yaml"}, nil},
		{"unknown flag", []string{"-x"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := New(tt.args)
			assert.Error(t, err)
		})
	}
}
