// Package main implements pykill, a TUI application for finding and killing
// Python processes.
//
// pykill provides an interactive terminal interface to:
//   - View every process whose name contains the target interpreter, with its
//     PID, CPU usage and the script it runs
//   - Sort the list by script name or by CPU usage
//   - Kill the selected processes, or all of them, optionally exiting afterwards
//   - Filter the displayed rows interactively
//
// Running "pykill silent" kills every matching process without opening the
// window, which suits scripts and keyboard shortcuts.
//
// The application uses the Bubbletea framework with the Elm architecture pattern
// for state management.
//
// # Architecture
//
// The codebase is organized into the following components:
//
//   - main.go: cobra commands for the window and silent mode
//   - config.go: layered configuration (defaults, YAML file, PYKILL_* environment)
//   - logging.go: slog setup writing to the optional log file
//   - processes.go: process enumeration with CPU sampling (ProcessLister interface)
//   - presenter.go: row formatting, sorting and filtering
//   - kill.go: single and tree kills (ProcessKiller interface)
//   - model.go: core TUI model with Init, Update, and View methods
//   - actions.go: the window's buttons and their routing rules
//   - formatter.go: readable labels for Python command lines
//   - notice.go: the self-closing popup shown by silent mode
//   - styles.go, keys.go, messages.go, helpers.go: rendering support
//
// # Row format
//
// Each row is rendered as "%5d %5.2f %s %s": PID, CPU percent, process name
// and first script argument. Kill actions read the PID back from the first
// five characters of a row, so the two must stay in step.
//
// # Extensibility
//
// Custom command formatters can be registered using RegisterFormatter:
//
//	RegisterFormatter(&MyCustomFormatter{})
//
// The ProcessLister and ProcessKiller interfaces allow for custom implementations
// and easier testing through dependency injection.
package main
