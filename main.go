package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error running pykill: %v\n", err)
		os.Exit(1)
	}
}

// options are the flags shared by every command
type options struct {
	configPath string
	target     string
	signal     string
	confirm    bool
	tree       bool
}

// app is everything a command needs once configuration is resolved
type app struct {
	cfg       Config
	lister    ProcessLister
	killer    ProcessKiller
	presenter Presenter
	closeLog  func() error
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "pykill",
		Short: "TUI for finding and killing Python processes",
		Long: `pykill lists running processes whose name contains the target
interpreter ("python" by default) and lets you kill some or all of them.

Keybindings:
  ↑/k ↓/j      Move
  space        Select/deselect process
  a            Select all
  /            Filter rows
  tab          Cycle focus: list, filter, buttons
  n / c        Sort by name / by % CPU
  enter/d      Kill selected (or the row under the cursor)
  K            Kill all
  X            Kill all & exit
  q            Exit`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer a.closeLog()
			return runShell(cmd.Context(), a)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	flags.StringVar(&opts.target, "target", "", "Process name to match (default \"python\")")
	flags.StringVar(&opts.signal, "signal", "", "Signal to send (default TERM)")
	flags.BoolVar(&opts.confirm, "confirm", false, "Ask before Kill All and Kill All & Exit")
	flags.BoolVar(&opts.tree, "tree", false, "Also kill every descendant of a process")

	root.AddCommand(newSilentCmd(opts))
	return root
}

func newSilentCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "silent",
		Short: "Kill every matching process without opening the window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer a.closeLog()
			return runSilent(cmd.Context(), a)
		},
	}
}

// load resolves the configuration and builds the collaborators
func (o *options) load(cmd *cobra.Command) (*app, error) {
	cfg, err := LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.Target = o.target
	}
	if flags.Changed("signal") {
		cfg.Signal = o.signal
	}
	if flags.Changed("confirm") {
		cfg.ConfirmKills = o.confirm
	}
	if flags.Changed("tree") {
		cfg.KillTree = o.tree
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	closeLog, err := setupLog(cfg)
	if err != nil {
		return nil, err
	}

	killer, err := NewProcessKiller(cfg)
	if err != nil {
		closeLog()
		return nil, err
	}

	return &app{
		cfg:       cfg,
		lister:    NewProcessLister(cfg.SampleInterval),
		killer:    killer,
		presenter: NewPresenter(cfg),
		closeLog:  closeLog,
	}, nil
}

func runShell(ctx context.Context, a *app) error {
	p := tea.NewProgram(NewModel(ctx, a.cfg, a.lister, a.killer),
		tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

func runSilent(ctx context.Context, a *app) error {
	report, err := killAll(ctx, a.lister, a.presenter, a.killer)
	if err != nil {
		return err
	}

	sig, _ := a.cfg.KillSignal()
	slog.Info("silent kill finished", "killed", len(report.Killed), "failed", len(report.Failed))

	err = showNotice(ctx, os.Stdout, a.cfg.NoticeDuration,
		"Killed everything....",
		fmt.Sprintf("Sent %s to %d %s process(es)", unix.SignalName(sig), len(report.Killed), a.cfg.Target),
		"This window autocloses")
	if err != nil && ctx.Err() == nil {
		slog.Warn("showing notice", "error", err)
	}
	return nil
}
