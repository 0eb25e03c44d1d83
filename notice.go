package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// noticeModel is a small window that closes itself after a delay or on
// any key press
type noticeModel struct {
	lines    []string
	duration time.Duration
}

func (m noticeModel) Init() tea.Cmd {
	return tea.Tick(m.duration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{}
	})
}

func (m noticeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case noticeExpiredMsg, tea.KeyMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m noticeModel) View() string {
	return popupStyle.Render(strings.Join(m.lines, "\n")) + "\n"
}

// showNotice displays lines until duration passes. Without a terminal the
// lines are written to out instead.
func showNotice(ctx context.Context, out io.Writer, duration time.Duration, lines ...string) error {
	if f, ok := out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		for _, line := range lines {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		return nil
	}

	p := tea.NewProgram(noticeModel{lines: lines, duration: duration},
		tea.WithContext(ctx), tea.WithOutput(out))
	_, err := p.Run()
	return err
}
