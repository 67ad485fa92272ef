// Package tui implements gptty's full-screen terminal UI: a cooperative
// event loop alternating between polling terminal input, draining the
// streaming reply channel while a response is in flight, and redrawing
// the screen once per tick, with modal sub-states for compose, code-block
// copy mode, and external-editor handoff.
//
// The loop is built on bubbletea, but steered at a fixed cadence: a
// 1/FPS ticker drives non-blocking channel draining and a single redraw
// per tick, rather than bubbletea's default of redrawing on every
// individual message.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/keagud/gptty/internal/chatmodel"
	"github.com/keagud/gptty/internal/logger"
	"github.com/keagud/gptty/internal/session"
	"github.com/keagud/gptty/internal/streamengine"
)

// FPS is the reference terminal-input poll rate: the event loop alternates
// between a poll/drain/render cycle every 1/FPS seconds.
const FPS = 30

// ScrollStep is the number of lines Up/Down arrow keys scroll the history.
const ScrollStep = 1

// WheelScrollStep is the number of lines a mouse wheel tick scrolls.
const WheelScrollStep = 2

// historyShare is the fraction of the terminal height given to the
// history pane (80%); the compose input takes the rest.
const historyShare = 0.8

const outerMargin = 1
const historyPadding = 5

// Model is the bubbletea model backing gptty's UI loop. It owns the
// terminal-visible state: the active thread, the compose buffer, scroll
// position, modal flags, and the background channels a
// reply/title/summary fetch delivers through.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	sess   *session.Session
	engine *streamengine.Engine
	log    *logger.Logger

	threadID uuid.UUID

	input    textarea.Model
	viewport viewport.Model

	// receiving is true for the whole lifetime of a reply: from send()
	// until the reply channel yields its terminal nil (or closes without
	// one).
	receiving bool
	replyCh   <-chan *string

	titleCh   <-chan string
	summaryCh <-chan chatmodel.Summary

	copyMode   bool
	copyDigits string
	copyIndex  int // 1-based, 0 when unresolved

	alert string

	showEditor bool

	width, height int
	chatHeight    int
	contentWidth  int

	shouldQuit bool
}

// New constructs the Model for the given thread within sess.
func New(ctx context.Context, sess *session.Session, engine *streamengine.Engine, log *logger.Logger, threadID uuid.UUID) *Model {
	ctx, cancel := context.WithCancel(ctx)

	ta := textarea.New()
	ta.Placeholder = "Send a message..."
	ta.ShowLineNumbers = false
	ta.Focus()

	vp := viewport.New(0, 0)

	return &Model{
		ctx:      ctx,
		cancel:   cancel,
		sess:     sess,
		engine:   engine,
		log:      log,
		threadID: threadID,
		input:    ta,
		viewport: vp,
	}
}

// thread returns the Model's active thread. It panics if called before
// the thread is loaded into sess, which cmd/gptty guarantees never
// happens: the caller always creates or resumes the thread before
// constructing a Model.
func (m *Model) thread() *chatmodel.Thread {
	t, ok := m.sess.ThreadByID(m.threadID)
	if !ok {
		panic("gptty: tui.Model constructed with an unknown thread id")
	}
	return t
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/FPS, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the Model's tick loop.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tickCmd())
}
