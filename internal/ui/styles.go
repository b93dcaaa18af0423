package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm/csquid/internal/rules"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Severity styles
	Critical lipgloss.Style
	Major    lipgloss.Style
	Minor    lipgloss.Style
	Info     lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Path      lipgloss.Style
	Check     lipgloss.Style
	Separator lipgloss.Style
	Dim       lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconCritical string
	IconMajor    string
	IconMinor    string
	IconInfo     string
	IconSuccess  string
	IconWarning  string
}

// NewStyles creates a new Styles instance
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		s.Critical = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true) // Red bold
		s.Major = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))               // Red
		s.Minor = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))              // Yellow
		s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))               // Blue
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))            // Green
		s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))            // Yellow

		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")) // White bold
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Path = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Check = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Dim = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

		// Unicode icons
		s.IconCritical = "\u2717"
		s.IconMajor = "\u2717"
		s.IconMinor = "\u26a0"
		s.IconInfo = "\u2139"
		s.IconSuccess = "\u2713"
		s.IconWarning = "\u26a0"
	} else {
		// No-op styles for non-TTY (plain text output)
		s.Critical = lipgloss.NewStyle()
		s.Major = lipgloss.NewStyle()
		s.Minor = lipgloss.NewStyle()
		s.Info = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()

		s.Header = lipgloss.NewStyle()
		s.Subheader = lipgloss.NewStyle()
		s.Path = lipgloss.NewStyle()
		s.Check = lipgloss.NewStyle()
		s.Separator = lipgloss.NewStyle()
		s.Dim = lipgloss.NewStyle()

		s.IconCritical = "CRITICAL:"
		s.IconMajor = "MAJOR:"
		s.IconMinor = "MINOR:"
		s.IconInfo = "INFO:"
		s.IconSuccess = "OK:"
		s.IconWarning = "WARN:"
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Severity returns the style and icon for a severity
func (s *Styles) Severity(sev rules.Severity) (lipgloss.Style, string) {
	switch sev {
	case rules.Critical:
		return s.Critical, s.IconCritical
	case rules.Major:
		return s.Major, s.IconMajor
	case rules.Minor:
		return s.Minor, s.IconMinor
	default:
		return s.Info, s.IconInfo
	}
}
