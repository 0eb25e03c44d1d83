package main

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Pre-compiled regular expressions for better performance
var (
	moduleRegex     = regexp.MustCompile(`(?:^|\s)-m\s+([\w.]+)`)
	venvRegex       = regexp.MustCompile(`/([^/\s]+)/\.?venv/`)
	virtualenvRegex = regexp.MustCompile(`/\.virtualenvs/([^/\s]+)/`)
	pyenvRegex      = regexp.MustCompile(`/\.pyenv/versions/([^/\s]+)/`)
)

// CommandFormatter is an interface for formatting command strings.
// Implement this interface to add custom formatting for specific applications.
type CommandFormatter interface {
	// Name returns the formatter name (for debugging/logging)
	Name() string

	// CanFormat returns true if this formatter can handle the given command
	CanFormat(cmd string) bool

	// Format returns the formatted command string
	Format(cmd string) string
}

// formatCommand applies all registered formatters to produce a readable command string.
// It tries each formatter in order and returns the first successful format.
func formatCommand(cmd string) string {
	if cmd == "" {
		return ""
	}

	for _, formatter := range registeredFormatters {
		if formatter.CanFormat(cmd) {
			result := formatter.Format(cmd)
			if result != "" {
				return result
			}
		}
	}

	return fallbackFormat(cmd)
}

// registeredFormatters holds all active formatters in priority order.
// Formatters earlier in the list take precedence.
var registeredFormatters = []CommandFormatter{
	&ModuleFormatter{},
	&ServerFormatter{},
	&VirtualenvFormatter{},
	&ProjectFormatter{},
}

// RegisterFormatter adds a custom formatter to the beginning of the list (highest priority).
func RegisterFormatter(f CommandFormatter) {
	registeredFormatters = append([]CommandFormatter{f}, registeredFormatters...)
}

// =============================================================================
// Built-in Formatters
// =============================================================================

// ModuleFormatter handles "python -m package" invocations.
type ModuleFormatter struct{}

func (f *ModuleFormatter) Name() string { return "module" }

func (f *ModuleFormatter) CanFormat(cmd string) bool {
	return moduleRegex.MatchString(cmd)
}

func (f *ModuleFormatter) Format(cmd string) string {
	// Example: python3 -m http.server 8000 -> http.server (project)
	matches := moduleRegex.FindStringSubmatch(cmd)
	if len(matches) < 2 {
		return ""
	}
	return withProject(matches[1], extractEnvName(cmd))
}

// ServerFormatter handles Python application servers and tools that are
// started through their own console script.
type ServerFormatter struct{}

func (f *ServerFormatter) Name() string { return "server" }

// serverScripts is the set of console scripts worth naming directly.
var serverScripts = map[string]bool{
	"uvicorn":          true,
	"gunicorn":         true,
	"hypercorn":        true,
	"daphne":           true,
	"celery":           true,
	"flask":            true,
	"jupyter":          true,
	"jupyter-lab":      true,
	"jupyter-notebook": true,
	"ipython":          true,
	"pytest":           true,
	"manage.py":        true,
}

func (f *ServerFormatter) CanFormat(cmd string) bool {
	return serverScript(cmd) != ""
}

func (f *ServerFormatter) Format(cmd string) string {
	// Example: python /srv/app/.venv/bin/uvicorn main:app -> uvicorn main:app (app)
	script := serverScript(cmd)
	parts := strings.Fields(cmd)

	label := script
	for i, part := range parts {
		if filepath.Base(part) != script {
			continue
		}
		if i+1 < len(parts) && !strings.HasPrefix(parts[i+1], "-") {
			label += " " + parts[i+1]
		}
		break
	}

	project := extractEnvName(cmd)
	if project == "" {
		project = extractProjectName(cmd)
	}
	return withProject(label, project)
}

// serverScript returns the known script among the first two command words
func serverScript(cmd string) string {
	parts := strings.Fields(cmd)
	for i := 0; i < len(parts) && i < 2; i++ {
		base := filepath.Base(parts[i])
		if serverScripts[base] {
			return base
		}
	}
	return ""
}

// VirtualenvFormatter handles interpreters running out of a virtualenv.
type VirtualenvFormatter struct{}

func (f *VirtualenvFormatter) Name() string { return "virtualenv" }

func (f *VirtualenvFormatter) CanFormat(cmd string) bool {
	return extractEnvName(cmd) != ""
}

func (f *VirtualenvFormatter) Format(cmd string) string {
	// Example: /home/u/Code/api/.venv/bin/python worker.py -> worker (api)
	script := extractScript(cmd)
	if script == "" {
		script = extractExecutable(cmd)
	}
	return withProject(script, extractEnvName(cmd))
}

// ProjectFormatter handles scripts living in common project directories.
type ProjectFormatter struct{}

func (f *ProjectFormatter) Name() string { return "project" }

// projectDirs contains common project directory indicators.
// These patterns are used to extract project names from command paths.
var projectDirs = []string{
	"/Code/",
	"/Projects/",
	"/Developer/",
	"/src/",
	"/repos/",
	"/git/",
	"/workspace/",
	"/notebooks/",
}

func (f *ProjectFormatter) CanFormat(cmd string) bool {
	for _, dir := range projectDirs {
		if strings.Contains(cmd, dir) {
			return true
		}
	}
	return false
}

func (f *ProjectFormatter) Format(cmd string) string {
	script := extractScript(cmd)
	projectName := extractProjectName(cmd)

	if projectName != "" && script != "" {
		return withProject(script, projectName)
	}

	return ""
}

// =============================================================================
// Helper Functions
// =============================================================================

func withProject(label, project string) string {
	if project == "" || project == label {
		return label
	}
	return label + " (" + project + ")"
}

// extractExecutable returns the base name of the executable from a command string.
func extractExecutable(cmd string) string {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return ""
	}
	return filepath.Base(parts[0])
}

// extractScript returns the script name without directory or .py suffix,
// or "" when the interpreter was started without one.
func extractScript(cmd string) string {
	parts := strings.Fields(cmd)
	if len(parts) < 2 {
		return ""
	}
	arg := parts[1]
	if strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "(") {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(arg), ".py")
}

// extractEnvName returns the project owning a virtualenv, the virtualenvwrapper
// env name, or the pyenv version in use.
func extractEnvName(cmd string) string {
	for _, re := range []*regexp.Regexp{venvRegex, virtualenvRegex, pyenvRegex} {
		if matches := re.FindStringSubmatch(cmd); len(matches) >= 2 {
			return matches[1]
		}
	}
	return ""
}

// extractProjectName tries to find a project name from common directory patterns.
func extractProjectName(path string) string {
	for _, dir := range projectDirs {
		if idx := strings.Index(path, dir); idx != -1 {
			// Extract the project name (first directory after the pattern)
			remaining := path[idx+len(dir):]
			parts := strings.Split(remaining, "/")
			if len(parts) > 0 && parts[0] != "" {
				return parts[0]
			}
		}
	}
	return ""
}

// fallbackFormat provides a simple fallback when no formatter matches.
func fallbackFormat(cmd string) string {
	executable := extractExecutable(cmd)
	if executable == "" {
		if len(cmd) > 30 {
			return cmd[:27] + "..."
		}
		return cmd
	}

	if script := extractScript(cmd); script != "" && script != executable {
		return executable + " (" + script + ")"
	}

	return executable
}
