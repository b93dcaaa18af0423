package ui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// ProgressController manages the bubbletea program for progress display.
// A nil controller is valid and does nothing, so callers need not check
// the output mode.
type ProgressController struct {
	ui      *UI
	program *tea.Program
	done    chan struct{}
}

// StartProgress starts the progress display on the error writer.
// Returns nil if progress cannot be shown.
func (ui *UI) StartProgress() *ProgressController {
	if !ui.CanShowProgress() {
		return nil
	}

	m := NewModel()
	p := tea.NewProgram(m, tea.WithOutput(ui.ErrWriter), tea.WithInput(nil))

	ctrl := &ProgressController{
		ui:      ui,
		program: p,
		done:    make(chan struct{}),
	}

	go func() {
		if _, err := p.Run(); err != nil {
			log.Debug().Err(err).Msg("Progress display stopped")
		}
		close(ctrl.done)
	}()

	return ctrl
}

// SetStage updates the current stage
func (pc *ProgressController) SetStage(stage Stage) {
	if pc != nil {
		pc.program.Send(StageMsg(stage))
	}
}

// SetFileCount sets the total number of files to analyze
func (pc *ProgressController) SetFileCount(count int) {
	if pc != nil {
		pc.program.Send(FileCountMsg(count))
	}
}

// FileDone records a completed file. It is safe to call from the analysis
// workers.
func (pc *ProgressController) FileDone(path string) {
	if pc != nil {
		pc.program.Send(FileDoneMsg(path))
	}
}

// Done signals that all work is complete and waits for the display to
// clear. Calling it more than once is harmless.
func (pc *ProgressController) Done(err error) {
	if pc == nil {
		return
	}
	select {
	case <-pc.done:
		return
	default:
	}
	pc.program.Send(DoneMsg{Err: err})
	<-pc.done
}

// SimpleSpinner provides a simple spinner for short operations
// without the full progress tracking
type SimpleSpinner struct {
	ui      *UI
	program *tea.Program
	done    chan struct{}
}

// simpleSpinnerModel is a minimal model for just showing a spinner
type simpleSpinnerModel struct {
	message  string
	quitting bool
}

func (m simpleSpinnerModel) Init() tea.Cmd {
	return nil
}

func (m simpleSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	case DoneMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m simpleSpinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("  %s", m.message)
}

// StartSimpleSpinner starts a simple spinner with a message
func (ui *UI) StartSimpleSpinner(w io.Writer, message string) *SimpleSpinner {
	if !ui.CanShowProgress() {
		return nil
	}

	m := simpleSpinnerModel{message: message}
	p := tea.NewProgram(m, tea.WithOutput(w), tea.WithInput(nil))

	ss := &SimpleSpinner{
		ui:      ui,
		program: p,
		done:    make(chan struct{}),
	}

	go func() {
		if _, err := p.Run(); err != nil {
			log.Debug().Err(err).Msg("Spinner stopped")
		}
		close(ss.done)
	}()

	return ss
}

// Stop stops the simple spinner
func (ss *SimpleSpinner) Stop() {
	if ss != nil && ss.program != nil {
		ss.program.Send(DoneMsg{})
		<-ss.done
	}
}
