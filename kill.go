package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sort"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// ErrRefuseSelfKill is returned when a kill targets the calling process
var ErrRefuseSelfKill = errors.New("refusing to kill own process")

// treePollInterval is how often KillProcessTree checks for exited members
const treePollInterval = 50 * time.Millisecond

// ProcessKiller terminates a process by PID
type ProcessKiller interface {
	Kill(ctx context.Context, pid int) error
}

// KillProcess sends sig to pid once. It does not wait for the process to
// exit and leaves its children alone.
func KillProcess(ctx context.Context, pid int, sig syscall.Signal) error {
	if pid == os.Getpid() {
		return ErrRefuseSelfKill
	}

	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return fmt.Errorf("unable to find PID %d: %w", pid, err)
	}
	if err := p.SendSignalWithContext(ctx, sig); err != nil {
		return fmt.Errorf("failed to send signal %v to PID %d: %w", sig, pid, err)
	}
	return nil
}

// TreeResult partitions the members of a killed process tree
type TreeResult struct {
	Gone   []int
	Alive  []int
	Failed map[int]error // members the signal could not be delivered to
}

// KillProcessTree sends sig to every descendant of pid, and to pid itself
// when includeParent is set, then waits up to timeout for them to exit.
// A zero timeout waits until every member is gone or ctx is done.
func KillProcessTree(ctx context.Context, pid int, sig syscall.Signal, includeParent bool, timeout time.Duration) (TreeResult, error) {
	if pid == os.Getpid() {
		return TreeResult{}, ErrRefuseSelfKill
	}

	parent, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return TreeResult{}, fmt.Errorf("unable to find PID %d: %w", pid, err)
	}

	members := descendants(ctx, parent, map[int32]bool{parent.Pid: true})
	if includeParent {
		members = append(members, parent)
	}

	result := TreeResult{Failed: make(map[int]error)}
	pending := make([]int, 0, len(members))
	for _, m := range members {
		if err := m.SendSignalWithContext(ctx, sig); err != nil {
			result.Failed[int(m.Pid)] = err
		}
		pending = append(pending, int(m.Pid))
	}

	waitCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ticker := time.NewTicker(treePollInterval)
	defer ticker.Stop()
	for {
		pending = slices.DeleteFunc(pending, func(member int) bool {
			if exited(ctx, member) {
				result.Gone = append(result.Gone, member)
				return true
			}
			return false
		})
		if len(pending) == 0 {
			break
		}

		select {
		case <-waitCtx.Done():
			result.Alive = pending
			sort.Ints(result.Gone)
			sort.Ints(result.Alive)
			// Only the caller's cancellation is an error
			return result, ctx.Err()
		case <-ticker.C:
		}
	}

	sort.Ints(result.Gone)
	return result, nil
}

// descendants walks the children of p recursively. seen guards against
// reused PIDs forming a cycle.
func descendants(ctx context.Context, p *process.Process, seen map[int32]bool) []*process.Process {
	children, err := p.ChildrenWithContext(ctx)
	if err != nil {
		// gopsutil reports "no children" as an error too
		return nil
	}

	var all []*process.Process
	for _, c := range children {
		if seen[c.Pid] {
			continue
		}
		seen[c.Pid] = true
		all = append(all, c)
		all = append(all, descendants(ctx, c, seen)...)
	}
	return all
}

// exited reports whether pid is gone or only a zombie
func exited(ctx context.Context, pid int) bool {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return true
	}
	status, err := p.StatusWithContext(ctx)
	if err != nil {
		exists, _ := process.PidExistsWithContext(ctx, int32(pid))
		return !exists
	}
	return slices.Contains(status, process.Zombie)
}

// signalKiller signals only the target process
type signalKiller struct {
	sig syscall.Signal
}

func (k signalKiller) Kill(ctx context.Context, pid int) error {
	return KillProcess(ctx, pid, k.sig)
}

// treeKiller signals the target and all its descendants and waits for them
type treeKiller struct {
	sig     syscall.Signal
	timeout time.Duration
}

func (k treeKiller) Kill(ctx context.Context, pid int) error {
	result, err := KillProcessTree(ctx, pid, k.sig, true, k.timeout)
	if err != nil {
		return err
	}

	var errs []error
	for member, ferr := range result.Failed {
		errs = append(errs, fmt.Errorf("PID %d: %w", member, ferr))
	}
	if len(result.Alive) > 0 {
		errs = append(errs, fmt.Errorf("PIDs %v still alive after %s", result.Alive, k.timeout))
	}
	return errors.Join(errs...)
}

// NewProcessKiller picks the single-process or tree killer from cfg
func NewProcessKiller(cfg Config) (ProcessKiller, error) {
	sig, err := cfg.KillSignal()
	if err != nil {
		return nil, err
	}
	if cfg.KillTree {
		return treeKiller{sig: sig, timeout: cfg.TreeTimeout}, nil
	}
	return signalKiller{sig: sig}, nil
}

// KillReport records the outcome of killing a set of rows
type KillReport struct {
	Killed []int
	Failed map[int]error
}

// Err joins every failure, or returns nil when all kills succeeded
func (r KillReport) Err() error {
	pids := make([]int, 0, len(r.Failed))
	for pid := range r.Failed {
		pids = append(pids, pid)
	}
	sort.Ints(pids)

	errs := make([]error, 0, len(pids))
	for _, pid := range pids {
		errs = append(errs, r.Failed[pid])
	}
	return errors.Join(errs...)
}

// killLines kills the PID of every rendered row. One failure never stops
// the rest; rows whose PID can't be parsed are reported under PID 0.
func killLines(ctx context.Context, killer ProcessKiller, lines []string) KillReport {
	report := KillReport{Failed: make(map[int]error)}
	for _, line := range lines {
		pid, err := ParsePID(line)
		if err != nil {
			report.Failed[0] = errors.Join(report.Failed[0], err)
			continue
		}
		if err := killer.Kill(ctx, pid); err != nil {
			report.Failed[pid] = err
			continue
		}
		report.Killed = append(report.Killed, pid)
	}
	return report
}

// killAll kills every process ListByName would show right now
func killAll(ctx context.Context, lister ProcessLister, presenter Presenter, killer ProcessKiller) (KillReport, error) {
	samples, err := lister.ListProcesses(ctx)
	if err != nil {
		return KillReport{}, err
	}

	report := killLines(ctx, killer, presenter.ListByName(samples))
	for pid, err := range report.Failed {
		slog.Debug("kill failed", "pid", pid, "error", err)
	}
	return report, nil
}
