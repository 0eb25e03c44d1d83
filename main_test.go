package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func silentConfig() Config {
	cfg := DefaultConfig()
	cfg.NoticeDuration = time.Millisecond
	return cfg
}

func TestRunSilent(t *testing.T) {
	lister := &MockLister{Processes: shellProcesses()}
	killer := &MockKiller{Errs: map[int]error{}}
	a := &app{
		cfg:       silentConfig(),
		lister:    lister,
		killer:    killer,
		presenter: testPresenter(),
	}

	require.NoError(t, runSilent(context.Background(), a))
	assert.Equal(t, []int{200, 100}, killer.KilledPIDs)
	assert.Equal(t, 1, lister.Calls)
}

func TestRunSilentIgnoresKillFailures(t *testing.T) {
	killer := &MockKiller{Errs: map[int]error{100: ErrRefuseSelfKill, 200: os.ErrPermission}}
	a := &app{
		cfg:       silentConfig(),
		lister:    &MockLister{Processes: shellProcesses()},
		killer:    killer,
		presenter: testPresenter(),
	}

	assert.NoError(t, runSilent(context.Background(), a))
	assert.Empty(t, killer.KilledPIDs)
}

func TestRootCommandRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown signal", []string{"--signal", "NOPE", "silent"}},
		{"empty target", []string{"--target", " ", "silent"}},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}},
		{"positional argument", []string{"silent", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			assert.Error(t, cmd.ExecuteContext(context.Background()))
		})
	}
}

func TestOptionsLoadAppliesChangedFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pykill.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target: ruby\nsignal: INT\n"), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--tree", "--signal", "KILL"}))

	opts := &options{}
	opts.configPath, _ = cmd.Flags().GetString("config")
	opts.signal, _ = cmd.Flags().GetString("signal")
	opts.tree, _ = cmd.Flags().GetBool("tree")

	a, err := opts.load(cmd)
	require.NoError(t, err)
	defer a.closeLog()

	assert.Equal(t, "ruby", a.cfg.Target, "file value survives unchanged flags")
	assert.Equal(t, "KILL", a.cfg.Signal)
	assert.True(t, a.cfg.KillTree)
	assert.IsType(t, treeKiller{}, a.killer)
	assert.Equal(t, "ruby", a.presenter.Target)
}

func TestShowNoticeWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	err := showNotice(context.Background(), &buf, time.Millisecond, "Killed everything....", "This window autocloses")

	require.NoError(t, err)
	assert.Equal(t, "Killed everything....\nThis window autocloses\n", buf.String())
}

func TestNoticeModelCloses(t *testing.T) {
	m := noticeModel{lines: []string{"done"}, duration: time.Second}
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "done")

	_, cmd := m.Update(noticeExpiredMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(runes("x"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(tea.WindowSizeMsg{Width: 10, Height: 10})
	assert.Nil(t, cmd)
}

func TestSetupLog(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	path := filepath.Join(t.TempDir(), "pykill.log")
	cfg := DefaultConfig()
	cfg.LogFile = path
	cfg.LogLevel = "debug"

	closeLog, err := setupLog(cfg)
	require.NoError(t, err)
	slog.Debug("kill failed", "pid", 42)
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=DEBUG")
	assert.Contains(t, string(data), "pid=42")
}

func TestSetupLogErrors(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	cfg := DefaultConfig()
	cfg.LogLevel = "loud"
	_, err := setupLog(cfg)
	assert.ErrorContains(t, err, "unknown log level")

	cfg = DefaultConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "missing", "pykill.log")
	_, err = setupLog(cfg)
	assert.ErrorContains(t, err, "opening log file")
}

func TestSetupLogDiscards(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	closeLog, err := setupLog(DefaultConfig())
	require.NoError(t, err)
	assert.NoError(t, closeLog())
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"hello", 10, "hello     "},
		{"hello", 5, "hello"},
		{"hello world", 5, "hell…"},
		{"hello", 0, ""},
		{"", 3, "   "},
		{"héllo wörld", 5, "héll…"},
		{"python3 /srv/données/app.py", 12, "python3 /sr…"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, truncate(tt.input, tt.maxLen), "truncate(%q, %d)", tt.input, tt.maxLen)
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	for _, s := range []string{"python3 /home/łukasz/ünïcode.py", "python3 /data/日本語/スクリプト.py"} {
		for width := 1; width < 40; width++ {
			got := truncate(s, width)
			assert.True(t, utf8.ValidString(got), "truncate(%q, %d) = %q", s, width, got)
			assert.LessOrEqual(t, runewidth.StringWidth(got), width)
		}
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(-1, 0, 5))
	assert.Equal(t, 5, clamp(9, 0, 5))
	assert.Equal(t, 3, clamp(3, 0, 5))
	assert.Equal(t, 0, clamp(2, 0, -1), "empty range yields lo")
}
