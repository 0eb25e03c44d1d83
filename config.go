package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"golang.org/x/sys/unix"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings. Values are layered: defaults, then the
// optional YAML file, then PYKILL_* environment variables, then CLI flags.
type Config struct {
	// Target is matched case-insensitively against process names
	Target string `yaml:"target" env:"TARGET"`

	// ConfirmKills asks for y/n before Kill All and Kill All & Exit
	ConfirmKills bool `yaml:"confirm_kills" env:"CONFIRM_KILLS"`

	// KillTree signals every descendant of a process along with it
	KillTree    bool          `yaml:"kill_tree" env:"KILL_TREE"`
	TreeTimeout time.Duration `yaml:"tree_timeout" env:"TREE_TIMEOUT"`

	Signal string `yaml:"signal" env:"SIGNAL"`

	// SampleInterval is the blocking CPU warm-up before each enumeration
	SampleInterval time.Duration `yaml:"sample_interval" env:"SAMPLE_INTERVAL"`

	// CPUDivisor scales the displayed CPU column
	CPUDivisor float64 `yaml:"cpu_divisor" env:"CPU_DIVISOR"`

	NoticeDuration time.Duration `yaml:"notice_duration" env:"NOTICE_DURATION"`

	LogFile  string `yaml:"log_file" env:"LOG_FILE"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// envPrefix namespaces every environment variable read by LoadConfig
const envPrefix = "PYKILL_"

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Target:         "python",
		TreeTimeout:    3 * time.Second,
		Signal:         "TERM",
		SampleInterval: 100 * time.Millisecond,
		CPUDivisor:     1,
		NoticeDuration: 2 * time.Second,
		LogLevel:       "INFO",
	}
}

// LoadConfig builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	// Unset variables leave the field alone, so file values survive
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}

	return cfg, nil
}

// Validate reports every invalid field at once
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Target) == "" {
		errs = append(errs, errors.New("target must not be empty"))
	}
	if c.SampleInterval <= 0 {
		errs = append(errs, fmt.Errorf("sample_interval must be positive, got %s", c.SampleInterval))
	}
	if c.CPUDivisor <= 0 {
		errs = append(errs, fmt.Errorf("cpu_divisor must be positive, got %g", c.CPUDivisor))
	}
	if c.TreeTimeout < 0 {
		errs = append(errs, fmt.Errorf("tree_timeout must not be negative, got %s", c.TreeTimeout))
	}
	// The shell waits for tree kills to finish
	if c.KillTree && c.TreeTimeout == 0 {
		errs = append(errs, errors.New("tree_timeout must be positive when kill_tree is set"))
	}
	if c.NoticeDuration <= 0 {
		errs = append(errs, fmt.Errorf("notice_duration must be positive, got %s", c.NoticeDuration))
	}
	if _, err := c.KillSignal(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// KillSignal resolves Signal ("TERM", "SIGTERM", "kill", ...) to a signal number
func (c Config) KillSignal() (syscall.Signal, error) {
	name := strings.ToUpper(strings.TrimSpace(c.Signal))
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}
	sig := unix.SignalNum(name)
	if sig == 0 {
		return 0, fmt.Errorf("unknown signal %q", c.Signal)
	}
	return sig, nil
}

// WindowTitle is the heading shown at the top of the shell
func (c Config) WindowTitle() string {
	if strings.EqualFold(c.Target, "python") {
		return "Python Process Killer"
	}
	target := strings.ToLower(strings.TrimSpace(c.Target))
	if target == "" {
		return "Process Killer"
	}
	return strings.ToUpper(target[:1]) + target[1:] + " Process Killer"
}
