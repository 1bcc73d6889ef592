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

const strongSecret = "correct-horse-battery-staple-42"

func TestBuilder_FromEnv_defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", strongSecret)

	b := NewBuilder(slog.Default()).FromEnv().Validate()
	require.NoError(t, b.Error())

	cfg := b.GetConfig()
	assert.Equal(t, "localhost:8080", cfg.RunAddr)
	assert.Empty(t, cfg.DatabaseURI)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.LockTimeout)
	assert.Equal(t, 3, cfg.LockAttempts)
	assert.Equal(t, time.Hour, cfg.SweepInterval)
	assert.Equal(t, uint64(64), cfg.SweepMaxInFlight)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestBuilder_FromEnv(t *testing.T) {
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("DATABASE_URI", "postgres://u:p@db:5432/loyalty")
	t.Setenv("SECRET_KEY", strongSecret)
	t.Setenv("LOCK_TIMEOUT", "750ms")
	t.Setenv("LOCK_ATTEMPTS", "5")
	t.Setenv("SWEEP_INTERVAL", "0s")
	t.Setenv("SWEEP_WORKERS", "4")
	t.Setenv("TIMEZONE", "Europe/Berlin")

	b := NewBuilder(slog.Default()).FromEnv().Validate()
	require.NoError(t, b.Error())

	cfg := b.GetConfig()
	assert.Equal(t, ":9090", cfg.RunAddr)
	assert.Equal(t, "postgres://u:p@db:5432/loyalty", cfg.DatabaseURI)
	assert.Equal(t, 750*time.Millisecond, cfg.LockTimeout)
	assert.Equal(t, 5, cfg.LockAttempts)
	assert.Zero(t, cfg.SweepInterval)
	assert.Equal(t, 4, cfg.SweepWorkers)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
}

func TestBuilder_FromArgs_override_env(t *testing.T) {
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("SECRET_KEY", strongSecret)

	b := NewBuilder(slog.Default()).
		FromEnv().
		FromArgs([]string{"-a", ":7070", "-lock-attempts", "7", "-t", "acme"}).
		Validate()
	require.NoError(t, b.Error())

	cfg := b.GetConfig()
	assert.Equal(t, ":7070", cfg.RunAddr)
	assert.Equal(t, 7, cfg.LockAttempts)
	assert.Equal(t, "acme", cfg.IssueTokenFor)
}

func TestBuilder_FromDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path,
		[]byte("SECRET_KEY="+strongSecret+"\nLOG_LEVEL=debug\n"), 0o600))

	// Variables already in the environment win over the file.
	t.Setenv("LOG_LEVEL", "warn")
	t.Cleanup(func() { _ = os.Unsetenv("SECRET_KEY") })

	b := NewBuilder(slog.Default()).FromDotEnv(path).FromEnv().Validate()
	require.NoError(t, b.Error())
	assert.Equal(t, strongSecret, b.GetConfig().SecretKey)
	assert.Equal(t, "warn", b.GetConfig().LogLevel)

	missing := NewBuilder(slog.Default()).FromDotEnv(filepath.Join(dir, "absent.env"))
	assert.NoError(t, missing.Error())
}

func TestBuilder_Validate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"empty secret", map[string]string{"SECRET_KEY": ""}, nil},
		{"weak secret", map[string]string{"SECRET_KEY": "password"}, nil},
		{"unknown timezone", map[string]string{"SECRET_KEY": strongSecret, "TIMEZONE": "Mars/Olympus"}, nil},
		{"no lock attempts", map[string]string{"SECRET_KEY": strongSecret}, []string{"-lock-attempts", "0"}},
		{"zero lock timeout", map[string]string{"SECRET_KEY": strongSecret}, []string{"-lock-timeout", "0s"}},
		{"negative workers", map[string]string{"SECRET_KEY": strongSecret}, []string{"-sweep-workers", "-1"}},
		{"unknown flag", map[string]string{"SECRET_KEY": strongSecret}, []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			b := NewBuilder(slog.Default()).FromEnv().FromArgs(tt.args).Validate()
			assert.Error(t, b.Error())
		})
	}
}
