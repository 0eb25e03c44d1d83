package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// Process is one sample of a running process
type Process struct {
	PID        int
	CPUPercent float64
	Name       string
	Cmdline    []string
}

// Arg returns the first command-line argument after the executable, usually
// the script an interpreter is running
func (p Process) Arg() string {
	if len(p.Cmdline) < 2 {
		return ""
	}
	return p.Cmdline[1]
}

// Command returns the command line joined with spaces
func (p Process) Command() string {
	return strings.Join(p.Cmdline, " ")
}

// ProcessLister enumerates the processes currently running
type ProcessLister interface {
	ListProcesses(ctx context.Context) ([]Process, error)
}

// psutilLister samples processes through gopsutil. CPU usage is the busy
// time each process accumulated between its two reads, which are at least
// interval apart.
type psutilLister struct {
	interval time.Duration
	self     int
	log      *slog.Logger
}

// NewProcessLister returns the system lister with the given CPU warm-up interval
func NewProcessLister(interval time.Duration) ProcessLister {
	return &psutilLister{
		interval: interval,
		self:     os.Getpid(),
		log:      slog.With("component", "lister"),
	}
}

// ListProcesses returns every process other than the caller that could be
// read. Processes that vanish or deny access mid-scan are skipped.
func (l *psutilLister) ListProcesses(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't get processes: %w", err)
	}

	before := make(map[int32]baseline, len(procs))
	for _, p := range procs {
		if t, err := p.TimesWithContext(ctx); err == nil {
			before[p.Pid] = baseline{busy: busyTime(t), at: time.Now()}
		}
	}

	// Blocks for the interval and primes system-wide accounting
	if _, err := cpu.PercentWithContext(ctx, l.interval, false); err != nil {
		l.log.Debug("cpu warm-up failed", "error", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make([]Process, 0, len(procs))
	for _, p := range procs {
		if int(p.Pid) == l.self {
			continue
		}
		sample, err := l.sample(ctx, p, before)
		if err != nil {
			l.log.Debug("skipping process", "pid", p.Pid, "error", err)
			continue
		}
		result = append(result, sample)
	}

	return result, nil
}

// baseline is the busy time of a process and when it was read
type baseline struct {
	busy float64
	at   time.Time
}

func (l *psutilLister) sample(ctx context.Context, p *process.Process, before map[int32]baseline) (Process, error) {
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return Process{}, fmt.Errorf("reading name: %w", err)
	}
	cmdline, err := p.CmdlineSliceWithContext(ctx)
	if err != nil {
		return Process{}, fmt.Errorf("reading cmdline: %w", err)
	}
	t, err := p.TimesWithContext(ctx)
	if err != nil {
		return Process{}, fmt.Errorf("reading cpu times: %w", err)
	}
	readAt := time.Now()

	// A process born during the warm-up has no baseline and reports 0
	percent := 0.0
	if start, ok := before[p.Pid]; ok {
		percent = cpuPercent(start.busy, busyTime(t), readAt.Sub(start.at))
	}

	return Process{
		PID:        int(p.Pid),
		CPUPercent: percent,
		Name:       name,
		Cmdline:    cmdline,
	}, nil
}

func busyTime(t *cpu.TimesStat) float64 {
	return t.User + t.System
}

// cpuPercent converts busy seconds accumulated over elapsed into a
// percentage of one CPU. It never returns a negative value.
func cpuPercent(before, after float64, elapsed time.Duration) float64 {
	if elapsed <= 0 || after <= before {
		return 0
	}
	return (after - before) / elapsed.Seconds() * 100
}
