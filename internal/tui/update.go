package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model. It dispatches window-resize, the fixed
// tick, terminal key events, and mouse wheel events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.onResize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		cmd := m.onTick()
		if m.shouldQuit {
			return m, tea.Quit
		}
		if m.showEditor {
			if editorCmd := m.openEditorCmd(); editorCmd != nil {
				return m, editorCmd
			}
		}
		return m, tea.Batch(cmd, tickCmd())

	case tea.KeyMsg:
		m.onKey(msg)
		if m.shouldQuit {
			return m, tea.Quit
		}
		return m, nil

	case tea.MouseMsg:
		m.onMouse(msg)
		return m, nil

	case editorResultMsg:
		m.applyEditorResult(msg)
		return m, tickCmd()
	}

	return m, nil
}

func (m *Model) onResize(width, height int) {
	m.width, m.height = width, height

	// Each bordered pane spends two columns and two rows on its border;
	// the history pane additionally pads its content horizontally.
	boxWidth := width - 2*outerMargin - 2
	if boxWidth < 0 {
		boxWidth = 0
	}

	m.chatHeight = int(float64(height-2*outerMargin) * historyShare)
	if m.chatHeight < 0 {
		m.chatHeight = 0
	}
	inputHeight := height - 2*outerMargin - m.chatHeight - 2
	if inputHeight < 1 {
		inputHeight = 1
	}

	m.contentWidth = boxWidth - 2*historyPadding
	if m.contentWidth < 1 {
		m.contentWidth = 1
	}

	m.viewport.Width = m.contentWidth
	m.viewport.Height = m.chatHeight - 2
	if m.viewport.Height < 0 {
		m.viewport.Height = 0
	}
	m.input.SetWidth(boxWidth)
	m.input.SetHeight(inputHeight)

	m.refreshHistory()
}

// onTick is one iteration of the UI state machine: while a reply is
// streaming, drain every currently-available token (and commit on
// end-of-stream) without blocking; then non-blockingly check the
// title/summary channels; then force-scroll to bottom if still
// receiving. Keyboard input is handled separately, in onKey, which
// discards it outright while receiving.
func (m *Model) onTick() tea.Cmd {
	if m.receiving {
		m.drainReply()
	}
	m.pollTitleAndSummary()

	if m.receiving {
		m.viewport.GotoBottom()
	}

	m.refreshHistory()
	return nil
}

// drainReply consumes every token currently buffered on the reply
// channel without blocking. A nil token is the end-of-stream sentinel:
// it commits the incoming message and clears receiving state. A closed
// channel with no preceding nil is a transport failure.
func (m *Model) drainReply() {
	for {
		select {
		case tok, ok := <-m.replyCh:
			if !ok {
				m.receiving = false
				m.replyCh = nil
				m.thread().ClearIncomingMessage()
				m.alert = "reply stream ended unexpectedly"
				return
			}
			if tok == nil {
				m.receiving = false
				m.replyCh = nil
				m.commitReply()
				return
			}
			m.thread().Update(*tok)
		default:
			return
		}
	}
}

// commitReply finalizes the streamed-in assistant message, persists the
// thread, and schedules a title fetch if the thread now qualifies for
// one and didn't already get one queued by send.
func (m *Model) commitReply() {
	th := m.thread()
	needsTitle := th.CommitMessage()

	if err := m.sess.SaveAll(); err != nil && m.log != nil {
		m.log.LogError(m.ctx, err, "save after reply commit failed")
	}

	if needsTitle && m.titleCh == nil {
		m.titleCh = m.sess.RequestTitle(m.ctx, th)
	}
}

// pollTitleAndSummary non-blockingly checks the title and summary
// fetch channels, applying a result to the active thread if one has
// arrived.
func (m *Model) pollTitleAndSummary() {
	if m.titleCh != nil {
		select {
		case title, ok := <-m.titleCh:
			if ok {
				m.thread().SetTitle(title)
			}
			m.titleCh = nil
		default:
		}
	}

	if m.summaryCh != nil {
		select {
		case summary, ok := <-m.summaryCh:
			if ok {
				th := m.thread()
				th.Summaries = append(th.Summaries, summary)
			}
			m.summaryCh = nil
		default:
		}
	}
}

func (m *Model) onMouse(msg tea.MouseMsg) {
	switch msg.Type {
	case tea.MouseWheelUp:
		m.viewport.LineUp(WheelScrollStep)
	case tea.MouseWheelDown:
		m.viewport.LineDown(WheelScrollStep)
	}
}
