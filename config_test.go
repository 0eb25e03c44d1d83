package main

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "python", cfg.Target)
	assert.False(t, cfg.ConfirmKills)
	assert.False(t, cfg.KillTree)
	assert.Equal(t, 100*time.Millisecond, cfg.SampleInterval)
	assert.Equal(t, 1.0, cfg.CPUDivisor)
}

func TestLoadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pykill.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
target: ruby
confirm_kills: true
tree_timeout: 5s
sample_interval: 250ms
cpu_divisor: 10
`), 0o644))

	t.Setenv("PYKILL_TARGET", "node")
	t.Setenv("PYKILL_KILL_TREE", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// env beats file
	assert.Equal(t, "node", cfg.Target)
	assert.True(t, cfg.KillTree)
	// file beats defaults
	assert.True(t, cfg.ConfirmKills)
	assert.Equal(t, 5*time.Second, cfg.TreeTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.SampleInterval)
	assert.Equal(t, 10.0, cfg.CPUDivisor)
	// defaults survive
	assert.Equal(t, "TERM", cfg.Signal)
	assert.Equal(t, 2*time.Second, cfg.NoticeDuration)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("PYKILL_SIGNAL", "KILL")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "KILL", cfg.Signal)
	assert.Equal(t, "python", cfg.Target)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("target: [unclosed"), 0o644))
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("bad env", func(t *testing.T) {
		t.Setenv("PYKILL_SAMPLE_INTERVAL", "soon")
		_, err := LoadConfig("")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty target", func(c *Config) { c.Target = "  " }},
		{"zero interval", func(c *Config) { c.SampleInterval = 0 }},
		{"zero divisor", func(c *Config) { c.CPUDivisor = 0 }},
		{"negative tree timeout", func(c *Config) { c.TreeTimeout = -time.Second }},
		{"zero notice", func(c *Config) { c.NoticeDuration = 0 }},
		{"unknown signal", func(c *Config) { c.Signal = "SIGNOPE" }},
		{"tree kill without timeout", func(c *Config) {
			c.KillTree = true
			c.TreeTimeout = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateTreeTimeoutOnlyWithTreeKill(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TreeTimeout = 0
	assert.NoError(t, cfg.Validate())

	cfg.KillTree = true
	assert.ErrorContains(t, cfg.Validate(), "tree_timeout must be positive")

	cfg.TreeTimeout = time.Second
	assert.NoError(t, cfg.Validate())
}

func TestKillSignal(t *testing.T) {
	tests := []struct {
		input    string
		expected syscall.Signal
	}{
		{"TERM", syscall.SIGTERM},
		{"SIGTERM", syscall.SIGTERM},
		{"kill", syscall.SIGKILL},
		{" int ", syscall.SIGINT},
		{"HUP", syscall.SIGHUP},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sig, err := Config{Signal: tt.input}.KillSignal()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sig)
		})
	}
}

func TestWindowTitle(t *testing.T) {
	assert.Equal(t, "Python Process Killer", Config{Target: "python"}.WindowTitle())
	assert.Equal(t, "Python Process Killer", Config{Target: "PYTHON"}.WindowTitle())
	assert.Equal(t, "Ruby Process Killer", Config{Target: "ruby"}.WindowTitle())
	assert.Equal(t, "Process Killer", Config{Target: ""}.WindowTitle())
}
