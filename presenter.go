package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PIDWidth is the width of the PID column. Kill actions read the PID back
// from this many leading characters of a rendered row.
const PIDWidth = 5

// Row is a process as shown in the list
type Row struct {
	PID  int
	CPU  float64
	Name string
	Arg  string
}

// String renders the row as "  pid   cpu name arg\n"
func (r Row) String() string {
	return fmt.Sprintf("%*d %5.2f %s %s\n", PIDWidth, r.PID, r.CPU, r.Name, r.Arg)
}

// ParsePID recovers the PID from a row rendered by Row.String. PIDs wider
// than PIDWidth push the columns right and are rejected.
func ParsePID(line string) (int, error) {
	if len(line) < PIDWidth {
		return 0, fmt.Errorf("row %q is shorter than the pid field", line)
	}
	if len(line) > PIDWidth && line[PIDWidth] != ' ' {
		return 0, fmt.Errorf("row %q has a pid wider than %d digits", line, PIDWidth)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(line[:PIDWidth]))
	if err != nil {
		return 0, fmt.Errorf("row %q has no pid: %w", line, err)
	}
	return pid, nil
}

// Presenter turns process samples into list rows for one target interpreter
type Presenter struct {
	Target     string
	CPUDivisor float64
}

// NewPresenter builds a Presenter from the config
func NewPresenter(cfg Config) Presenter {
	return Presenter{Target: cfg.Target, CPUDivisor: cfg.CPUDivisor}
}

// ListByName returns matching rows sorted by script argument
func (p Presenter) ListByName(samples []Process) []string {
	rows := p.rows(samples)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Arg < rows[j].Arg
	})
	return render(rows)
}

// ListByCPU returns matching rows with the busiest first
func (p Presenter) ListByCPU(samples []Process) []string {
	rows := p.rows(samples)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CPU > rows[j].CPU
	})
	return render(rows)
}

// List dispatches to ListByName or ListByCPU
func (p Presenter) List(samples []Process, byName bool) []string {
	if byName {
		return p.ListByName(samples)
	}
	return p.ListByCPU(samples)
}

// Matches reports whether a process name contains the target
func (p Presenter) Matches(name string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(p.Target))
}

func (p Presenter) rows(samples []Process) []Row {
	divisor := p.CPUDivisor
	if divisor <= 0 {
		divisor = 1
	}

	rows := make([]Row, 0, len(samples))
	for _, s := range samples {
		if !p.Matches(s.Name) {
			continue
		}
		rows = append(rows, Row{
			PID:  s.PID,
			CPU:  s.CPUPercent / divisor,
			Name: s.Name,
			Arg:  s.Arg(),
		})
	}
	return rows
}

func render(rows []Row) []string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = r.String()
	}
	return lines
}

// FilterLines keeps the lines containing query, ignoring case
func FilterLines(lines []string, query string) []string {
	if query == "" {
		return append([]string(nil), lines...)
	}
	query = strings.ToLower(query)

	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), query) {
			filtered = append(filtered, line)
		}
	}
	return filtered
}
