package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/keagud/gptty/internal/logger"
	"github.com/keagud/gptty/internal/session"
	"github.com/keagud/gptty/internal/streamengine"
)

// Run enters the alternate screen and drives the UI loop for threadID
// until the user quits, then flushes the session to the store.
func Run(ctx context.Context, sess *session.Session, engine *streamengine.Engine, log *logger.Logger, threadID uuid.UUID) error {
	m := New(ctx, sess, engine, log, threadID)
	defer m.cancel()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return err
	}

	sess.Flush()
	return nil
}
