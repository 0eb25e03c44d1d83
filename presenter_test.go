package main

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pythonAndBash = []Process{
	{PID: 100, CPUPercent: 12.0, Name: "python3", Cmdline: []string{"python3", "worker.py"}},
	{PID: 5, CPUPercent: 0.0, Name: "bash", Cmdline: []string{"bash"}},
}

func testPresenter() Presenter {
	return Presenter{Target: "python", CPUDivisor: 1}
}

func TestListByNameScenario(t *testing.T) {
	lines := testPresenter().ListByName(pythonAndBash)
	assert.Equal(t, []string{"  100 12.00 python3 worker.py\n"}, lines)
}

func TestListByNameSortsByArg(t *testing.T) {
	samples := []Process{
		{PID: 3, Name: "python3", Cmdline: []string{"python3", "zeta.py"}},
		{PID: 1, Name: "Python", Cmdline: []string{"Python", "alpha.py"}},
		{PID: 2, Name: "python3.12", Cmdline: []string{"python3.12"}},
		{PID: 4, Name: "node", Cmdline: []string{"node", "aaa.js"}},
		{PID: 5, Name: "ipython", Cmdline: []string{"ipython", "mid.py"}},
	}

	lines := testPresenter().ListByName(samples)
	require.Len(t, lines, 4)

	var pids []int
	var args []string
	for _, line := range lines {
		pid, err := ParsePID(line)
		require.NoError(t, err)
		pids = append(pids, pid)
		fields := strings.Fields(line)
		if len(fields) == 4 {
			args = append(args, fields[3])
		} else {
			args = append(args, "")
		}
	}

	assert.Equal(t, []int{2, 1, 5, 3}, pids)
	assert.True(t, sort.StringsAreSorted(args), "args not sorted: %v", args)
}

func TestListByCPUSortsDescending(t *testing.T) {
	samples := []Process{
		{PID: 1, CPUPercent: 5, Name: "python3", Cmdline: []string{"python3", "a.py"}},
		{PID: 2, CPUPercent: 80, Name: "python3", Cmdline: []string{"python3", "b.py"}},
		{PID: 3, CPUPercent: 99, Name: "bash"},
		{PID: 4, CPUPercent: 20, Name: "PYTHON", Cmdline: []string{"PYTHON", "c.py"}},
	}

	lines := testPresenter().ListByCPU(samples)
	assert.Equal(t, []string{
		"    2 80.00 python3 b.py\n",
		"    4 20.00 PYTHON c.py\n",
		"    1  5.00 python3 a.py\n",
	}, lines)
}

func TestListUsesCPUDivisor(t *testing.T) {
	p := Presenter{Target: "python", CPUDivisor: 10}
	lines := p.ListByName(pythonAndBash)
	assert.Equal(t, []string{"  100  1.20 python3 worker.py\n"}, lines)
}

func TestListDispatch(t *testing.T) {
	p := testPresenter()
	assert.Equal(t, p.ListByName(pythonAndBash), p.List(pythonAndBash, true))
	assert.Equal(t, p.ListByCPU(pythonAndBash), p.List(pythonAndBash, false))
}

func TestListCustomTarget(t *testing.T) {
	p := Presenter{Target: "bash", CPUDivisor: 1}
	assert.Equal(t, []string{"    5  0.00 bash \n"}, p.ListByName(pythonAndBash))
}

func TestPIDRoundTrip(t *testing.T) {
	for _, pid := range []int{0, 1, 7, 42, 100, 999, 1000, 31337, 65535, 99999} {
		t.Run(fmt.Sprint(pid), func(t *testing.T) {
			line := Row{PID: pid, CPU: 1.5, Name: "python3", Arg: "x.py"}.String()
			got, err := ParsePID(line)
			require.NoError(t, err)
			assert.Equal(t, pid, got)
		})
	}
}

func TestParsePIDErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too short", "12"},
		{"not a number", "abcde python3"},
		{"blank field", "      python3"},
		{"six digit pid", "123456  0.00 python3 job.py\n"},
		{"seven digit pid", "4194303  0.00 python3 job.py\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePID(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParsePIDBoundary(t *testing.T) {
	pid, err := ParsePID("99999  0.00 python3 job.py\n")
	require.NoError(t, err)
	assert.Equal(t, 99999, pid)

	pid, err = ParsePID("    7")
	require.NoError(t, err)
	assert.Equal(t, 7, pid)
}

func TestFilterLines(t *testing.T) {
	lines := []string{
		"  100 12.00 python3 worker.py\n",
		"  200  1.00 python3 Server.py\n",
		"  300  0.00 python3.12 api.py\n",
	}

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"empty query keeps all", "", lines},
		{"substring", "work", lines[:1]},
		{"case insensitive query", "SERVER", lines[1:2]},
		{"case insensitive line", "server", lines[1:2]},
		{"matches pid", "300", lines[2:]},
		{"matches name", "python3.12", lines[2:]},
		{"no match", "nginx", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FilterLines(lines, tt.query))
		})
	}
}
