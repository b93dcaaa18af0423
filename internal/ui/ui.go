// Package ui renders terminal output: styles that degrade on non-TTY
// writers, the analysis progress display and the syntax tree browser.
package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode determines how output should be formatted
type OutputMode int

const (
	// OutputModeInteractive enables full colors, spinners, and progress bars
	OutputModeInteractive OutputMode = iota
	// OutputModePlain disables colors and progress (for piped output)
	OutputModePlain
	// OutputModeMachine writes a machine-readable format (json, markdown,
	// html) with no decoration
	OutputModeMachine
)

// UI provides a unified interface for terminal output with TTY detection
type UI struct {
	Mode      OutputMode
	Writer    io.Writer
	ErrWriter io.Writer
	Styles    *Styles
}

// New creates a new UI instance with automatic TTY detection
func New(w, errW io.Writer, format string) *UI {
	mode := detectMode(w, format)
	return &UI{
		Mode:      mode,
		Writer:    w,
		ErrWriter: errW,
		Styles:    NewStyles(mode == OutputModeInteractive),
	}
}

// detectMode determines the output mode based on TTY and format flags
func detectMode(w io.Writer, format string) OutputMode {
	switch format {
	case "json", "markdown", "html":
		return OutputModeMachine
	}

	if isTerminal(w) {
		return OutputModeInteractive
	}
	return OutputModePlain
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsInteractive returns true if the output is interactive (TTY)
func (ui *UI) IsInteractive() bool {
	return ui.Mode == OutputModeInteractive
}

// CanShowProgress reports whether a progress display may be drawn on the
// error writer. Machine formats on stdout still get progress when stderr is
// a terminal.
func (ui *UI) CanShowProgress() bool {
	return ui.Mode != OutputModePlain && isTerminal(ui.ErrWriter)
}
