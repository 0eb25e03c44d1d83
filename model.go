package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"golang.org/x/sys/unix"
)

// Layout constants
const (
	// DefaultListHeight is the number of rows shown before the terminal size is known
	DefaultListHeight = 20

	// ListChromeHeight is the number of lines used by everything except the list
	ListChromeHeight = 14

	// MinListHeight keeps the list usable in tiny terminals
	MinListHeight = 3

	// DefaultCommandWidth is used for the detail line when terminal width is unknown
	DefaultCommandWidth = 80
)

// focusZone is the part of the window receiving keys
type focusZone int

const (
	focusList focusZone = iota
	focusFilter
	focusButtons
)

// notice is a short message that dismisses itself
type notice struct {
	id    int
	text  string
	isErr bool
}

// Model represents the TUI state
type Model struct {
	ctx       context.Context
	cfg       Config
	lister    ProcessLister
	killer    ProcessKiller
	presenter Presenter
	log       *slog.Logger

	rendered   []string       // rows of the last enumeration
	visible    []string       // rendered rows passing the filter
	commands   map[int]string // PID -> command line of the last enumeration
	nameSorted bool
	selected   map[string]bool // row text -> selected
	cursor     int
	offset     int

	focus  focusZone
	button int
	filter textinput.Model
	help   help.Model

	confirming bool
	pending    action

	notices  []notice
	noticeID int
	width    int
	height   int
}

// NewModel creates a Model already populated with a name-sorted enumeration
func NewModel(ctx context.Context, cfg Config, lister ProcessLister, killer ProcessKiller) Model {
	filter := textinput.New()
	filter.Prompt = ""
	filter.Placeholder = "type to filter"
	filter.CharLimit = 64
	filter.Width = 20

	m := Model{
		ctx:        ctx,
		cfg:        cfg,
		lister:     lister,
		killer:     killer,
		presenter:  NewPresenter(cfg),
		log:        slog.With("component", "shell"),
		selected:   make(map[string]bool),
		commands:   make(map[int]string),
		nameSorted: true,
		filter:     filter,
		help:       help.New(),
	}
	m.reload(true)
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.expireNotices()
}

// reload enumerates processes and renders them in the requested order. The
// selection is reset, the filter text is kept.
func (m *Model) reload(byName bool) {
	samples, err := m.lister.ListProcesses(m.ctx)
	if err != nil {
		m.log.Error("listing processes", "error", err)
		m.notify(fmt.Sprintf("Error listing processes: %v", err), true)
		return
	}

	m.commands = make(map[int]string, len(samples))
	for _, s := range samples {
		m.commands[s.PID] = s.Command()
	}
	m.rendered = m.presenter.List(samples, byName)
	m.nameSorted = byName
	m.selected = make(map[string]bool)
	m.applyFilter()
}

// applyFilter narrows the rendered rows to the filter text without
// touching the process table
func (m *Model) applyFilter() {
	m.visible = FilterLines(m.rendered, m.filter.Value())
	m.cursor = clamp(m.cursor, 0, len(m.visible)-1)
	m.scrollToCursor()
}

func (m *Model) notify(text string, isErr bool) {
	m.noticeID++
	m.notices = append(m.notices, notice{id: m.noticeID, text: text, isErr: isErr})
}

// expireNotices schedules the dismissal of every notice still showing
func (m Model) expireNotices() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.notices))
	for _, n := range m.notices {
		id := n.id
		cmds = append(cmds, tea.Tick(m.cfg.NoticeDuration, func(time.Time) tea.Msg {
			return noticeExpiredMsg{id: id}
		}))
	}
	return tea.Batch(cmds...)
}

func (m Model) listHeight() int {
	if m.height == 0 {
		return DefaultListHeight
	}
	return max(MinListHeight, m.height-ListChromeHeight-len(m.notices))
}

func (m *Model) scrollToCursor() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = clamp(m.offset, 0, max(0, len(m.visible)-h))
}

// selectedLines returns the selected visible rows, or the row under the
// cursor when nothing is selected
func (m Model) selectedLines() []string {
	var lines []string
	for _, line := range m.visible {
		if m.selected[line] {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 && m.cursor < len(m.visible) {
		lines = []string{m.visible[m.cursor]}
	}
	return lines
}

func (m Model) selectedCount() int {
	count := 0
	for _, line := range m.visible {
		if m.selected[line] {
			count++
		}
	}
	return count
}

// ignoredEvent reports events that never change state: mouse activity and
// modifier chords
func ignoredEvent(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return true
	case tea.KeyMsg:
		s := msg.String()
		return strings.Contains(s, "ctrl+") || strings.Contains(s, "shift+")
	}
	return false
}

// request runs a, asking for confirmation first when bulk kills need it
func (m Model) request(a action) (Model, tea.Cmd) {
	if a.killsAll() && m.cfg.ConfirmKills {
		m.confirming = true
		m.pending = a
		return m, nil
	}
	return m.dispatch(a)
}

// dispatch performs a button action to completion
func (m Model) dispatch(a action) (Model, tea.Cmd) {
	switch {
	case a == actionExit:
		return m, tea.Quit
	case a == actionSortByName:
		m.reload(true)
	case a == actionSortByCPU:
		m.reload(false)
	case a.isKill():
		m.kill(a)
		if a.exits() {
			return m, tea.Quit
		}
	}
	return m, m.expireNotices()
}

// kill signals the rows an action targets and re-renders with the current sort
func (m *Model) kill(a action) {
	var lines []string
	if a.killsAll() {
		samples, err := m.lister.ListProcesses(m.ctx)
		if err != nil {
			m.notify(fmt.Sprintf("Error listing processes: %v", err), true)
			return
		}
		lines = m.presenter.ListByName(samples)
	} else {
		lines = m.selectedLines()
	}

	report := killLines(m.ctx, m.killer, lines)

	failed := make([]int, 0, len(report.Failed))
	for pid := range report.Failed {
		failed = append(failed, pid)
	}
	sort.Ints(failed)
	for _, pid := range failed {
		err := report.Failed[pid]
		m.log.Debug("kill failed", "action", a.String(), "pid", pid, "error", err)
		if a.reportsErrors() {
			m.notify(fmt.Sprintf("Error killing process %d: %v", pid, err), true)
		}
	}
	if len(report.Killed) > 0 {
		m.log.Info("killed processes", "action", a.String(), "pids", report.Killed)
		m.notify(fmt.Sprintf("Sent %s to %d process(es)", m.signalName(), len(report.Killed)), false)
	}

	m.reload(m.nameSorted)
}

func (m Model) signalName() string {
	sig, err := m.cfg.KillSignal()
	if err != nil {
		return m.cfg.Signal
	}
	return unix.SignalName(sig)
}

func (m *Model) setFocus(f focusZone) tea.Cmd {
	m.focus = f
	if f == focusFilter {
		return m.filter.Focus()
	}
	m.filter.Blur()
	return nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, len(m.visible)-1)
	m.scrollToCursor()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Window close
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.ForceQuit) {
		return m, tea.Quit
	}
	if ignoredEvent(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scrollToCursor()

	case noticeExpiredMsg:
		for i, n := range m.notices {
			if n.id == msg.id {
				m.notices = append(m.notices[:i:i], m.notices[i+1:]...)
				break
			}
		}

	case tea.KeyMsg:
		if m.confirming {
			switch {
			case key.Matches(msg, keys.Confirm):
				m.confirming = false
				return m.dispatch(m.pending)
			case key.Matches(msg, keys.Cancel):
				m.confirming = false
				m.notify("Cancelled", false)
				return m, m.expireNotices()
			}
			return m, nil
		}

		switch m.focus {
		case focusFilter:
			return m.updateFilter(msg)
		case focusButtons:
			return m.updateButtons(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab:
		return m, m.setFocus(focusButtons)
	case tea.KeyEsc:
		// Clear the filter and go back to the list
		m.filter.SetValue("")
		m.applyFilter()
		return m, m.setFocus(focusList)
	case tea.KeyEnter:
		// Keep the filter and go back to the list
		return m, m.setFocus(focusList)
	case tea.KeyUp:
		m.moveCursor(-1)
		return m, nil
	case tea.KeyDown:
		m.moveCursor(1)
		return m, nil
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.cursor = 0
		m.applyFilter()
	}
	return m, cmd
}

func (m Model) updateButtons(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.NextFocus):
		return m, m.setFocus(focusList)
	case key.Matches(msg, keys.Left):
		m.button = (m.button + len(buttons) - 1) % len(buttons)
	case key.Matches(msg, keys.Right):
		m.button = (m.button + 1) % len(buttons)
	case key.Matches(msg, keys.Press):
		return m.request(buttons[m.button])
	case key.Matches(msg, keys.Quit):
		return m.dispatch(actionExit)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m.dispatch(actionExit)
	case key.Matches(msg, keys.NextFocus), key.Matches(msg, keys.Filter):
		return m, m.setFocus(focusFilter)
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, keys.Select):
		if m.cursor < len(m.visible) {
			line := m.visible[m.cursor]
			m.selected[line] = !m.selected[line]
		}
	case key.Matches(msg, keys.SelectAll):
		allSelected := m.selectedCount() == len(m.visible)
		for _, line := range m.visible {
			m.selected[line] = !allSelected
		}
	case key.Matches(msg, keys.SortName):
		return m.request(actionSortByName)
	case key.Matches(msg, keys.SortCPU):
		return m.request(actionSortByCPU)
	case key.Matches(msg, keys.Kill):
		return m.request(actionKillSelected)
	case key.Matches(msg, keys.KillAll):
		return m.request(actionKillAll)
	case key.Matches(msg, keys.KillAllExit):
		return m.request(actionKillAllAndExit)
	}
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	var sb strings.Builder

	title := m.cfg.WindowTitle() + " - Choose one or more processes"
	if count := m.selectedCount(); count > 0 {
		title += " " + selectedCountStyle.Render(fmt.Sprintf("[%d selected]", count))
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteByte('\n')

	order := "name"
	if !m.nameSorted {
		order = "% cpu"
	}
	header := fmt.Sprintf("    %*s %5s %s", PIDWidth, "PID", "CPU", "NAME ARG")
	sb.WriteString(headerStyle.Render(header + "   (sorted by " + order + ")"))
	sb.WriteByte('\n')

	h := m.listHeight()
	if len(m.visible) == 0 {
		if m.filter.Value() != "" {
			sb.WriteString(emptyStyle.Render(fmt.Sprintf("No processes match '%s'", m.filter.Value())))
		} else {
			sb.WriteString(emptyStyle.Render(fmt.Sprintf("No %s processes found", m.cfg.Target)))
		}
		sb.WriteByte('\n')
	} else {
		end := min(len(m.visible), m.offset+h)
		for i := m.offset; i < end; i++ {
			line := m.visible[i]
			checkbox := checkboxUnchecked
			if m.selected[line] {
				checkbox = checkboxChecked
			}

			row := checkbox + " " + strings.TrimRight(line, "\n")
			switch {
			case i == m.cursor && m.focus == focusList:
				sb.WriteString(cursorStyle.Render(row))
			case m.selected[line]:
				sb.WriteString(checkedStyle.Render(row))
			case i == m.cursor:
				sb.WriteString(cursorStyle.Faint(true).Render(row))
			default:
				sb.WriteString(normalStyle.Render(row))
			}
			sb.WriteByte('\n')
		}
	}

	// Full command of the focused row
	if m.cursor < len(m.visible) {
		if pid, err := ParsePID(m.visible[m.cursor]); err == nil {
			if cmd, ok := m.commands[pid]; ok {
				width := DefaultCommandWidth
				if m.width > 4 {
					width = m.width - 4
				}
				detail := formatCommand(cmd) + "  " + cmd
				if runewidth.StringWidth(detail) > width {
					detail = strings.TrimRight(truncate(detail, width), " ")
				}
				sb.WriteByte('\n')
				sb.WriteString(cmdDetailStyle.Render("> " + detail))
			}
		}
	}
	sb.WriteByte('\n')

	sb.WriteByte('\n')
	sb.WriteString(filterLabelStyle.Render("Filter by typing name: "))
	sb.WriteString(m.filter.View())
	sb.WriteString("\n\n")

	rendered := make([]string, len(buttons))
	for i, b := range buttons {
		if m.focus == focusButtons && i == m.button {
			rendered[i] = focusedButton(b).Render(b.String())
		} else {
			rendered[i] = buttonStyles[b].Render(b.String())
		}
	}
	sb.WriteString(strings.Join(rendered, ""))
	sb.WriteByte('\n')

	if m.confirming {
		sb.WriteString(confirmStyle.Render(fmt.Sprintf("%s: send %s to every %s process? (y/n)",
			m.pending, m.signalName(), m.cfg.Target)))
		sb.WriteByte('\n')
	}

	for _, n := range m.notices {
		if n.isErr {
			sb.WriteString(errorNoticeStyle.Render(n.text))
		} else {
			sb.WriteString(noticeStyle.Render(n.text))
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(helpStyle.Render(m.help.View(keys)))

	return sb.String()
}
