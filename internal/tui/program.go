package tui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/obentoo/vapt/internal/common/logger"
)

// Run opens the full-screen interface and blocks until the user quits.
// Terminal logging is silenced while the screen is active; the file log,
// when enabled, keeps recording.
func Run(ctx context.Context, opts Options, noColor bool) error {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	m := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Shutdown()
	} else {
		m.Shutdown()
	}
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
