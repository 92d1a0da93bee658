// Package termcolor decides whether diagnostics are colored and provides
// the styles and console width used to render them.
package termcolor

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// DefaultWidth is the console width used when the writer is not a terminal.
const DefaultWidth = 80

// Mode selects when color is used.
type Mode string

const (
	Auto   Mode = "auto"
	Always Mode = "always"
	Never  Mode = "never"
)

// ParseMode parses "auto", "always" or "never". The empty string is Auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case "", Auto:
		return Auto, nil
	case Always:
		return Always, nil
	case Never:
		return Never, nil
	}
	return "", fmt.Errorf("invalid color mode %q: want auto, always or never", s)
}

//nolint:gochecknoglobals // the color flag is process-wide
var (
	detectOnce sync.Once
	detected   bool

	overridden    atomic.Bool
	overrideValue atomic.Bool
)

// Enabled reports whether color is enabled for the process. Unless
// SetEnabled was called, it is decided once, on first use, from NO_COLOR and
// whether stdout is a terminal.
func Enabled() bool {
	if overridden.Load() {
		return overrideValue.Load()
	}
	detectOnce.Do(func() {
		detected = os.Getenv("NO_COLOR") == "" && IsTerminal(os.Stdout)
	})
	return detected
}

// SetEnabled overrides the detected value.
func SetEnabled(enabled bool) {
	overrideValue.Store(enabled)
	overridden.Store(true)
}

// ResetEnabled removes the override set by SetEnabled.
func ResetEnabled() {
	overridden.Store(false)
}

// Resolve returns whether mode asks for color. Auto defers to Enabled.
func Resolve(mode Mode) bool {
	switch mode {
	case Always:
		return true
	case Never:
		return false
	}
	return Enabled()
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Width returns the console width of w, or DefaultWidth when w is not a
// terminal.
func Width(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return DefaultWidth
}

// Styles holds the styles of diagnostic and CLI output.
type Styles struct {
	Error    lipgloss.Style
	Caret    lipgloss.Style
	Location lipgloss.Style
	Token    lipgloss.Style
	Success  lipgloss.Style
}

// NewStyles returns styles rendering to w. Without color every style is
// plain. With color the ANSI profile is forced, so output that is not a
// terminal is still colored.
func NewStyles(w io.Writer, enabled bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if !enabled {
		r.SetColorProfile(termenv.Ascii)
		plain := r.NewStyle()
		return &Styles{
			Error:    plain,
			Caret:    plain,
			Location: plain,
			Token:    plain,
			Success:  plain,
		}
	}
	r.SetColorProfile(termenv.ANSI)
	return &Styles{
		Error:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Caret:    r.NewStyle().Foreground(lipgloss.Color("2")),
		Location: r.NewStyle().Bold(true),
		Token:    r.NewStyle().Foreground(lipgloss.Color("6")),
		Success:  r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	}
}
