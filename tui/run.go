package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wbrown/img2ascii/session"
)

// Run starts the terminal UI and blocks until the user quits or ctx is
// done.
func Run(ctx context.Context, sess *session.Session, opts Options) error {
	p := tea.NewProgram(
		NewModel(sess, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
