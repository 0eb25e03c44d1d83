package main

import "strings"

// action is a button of the shell. Kill routing is decided by the button
// label, so new buttons only need a well-chosen name.
type action int

const (
	actionSortByName action = iota
	actionSortByCPU
	actionKillSelected
	actionKillAll
	actionKillAllAndExit
	actionExit
)

// buttons lists the actions in the order they are drawn
var buttons = []action{
	actionSortByName,
	actionSortByCPU,
	actionKillSelected,
	actionKillAll,
	actionKillAllAndExit,
	actionExit,
}

func (a action) String() string {
	switch a {
	case actionSortByName:
		return "Sort by Name"
	case actionSortByCPU:
		return "Sort by % CPU"
	case actionKillSelected:
		return "Kill Selected"
	case actionKillAll:
		return "Kill All"
	case actionKillAllAndExit:
		return "Kill All & Exit"
	case actionExit:
		return "Exit"
	}
	return "Unknown"
}

// isKill reports whether the action sends signals
func (a action) isKill() bool {
	return strings.HasPrefix(a.String(), "Kill")
}

// killsAll reports whether the action targets every matching process
// rather than the selection
func (a action) killsAll() bool {
	return strings.HasPrefix(a.String(), "Kill All")
}

// reportsErrors reports whether kill failures are shown to the user
func (a action) reportsErrors() bool {
	return strings.HasSuffix(a.String(), "Selected")
}

// exits reports whether the shell closes after the action
func (a action) exits() bool {
	return strings.HasSuffix(a.String(), "Exit")
}
