package tui

import "github.com/keagud/gptty/internal/chatmodel"

// highTokenUseThreshold is the context-use fraction past which send
// schedules a summary fetch instead of a title fetch.
const highTokenUseThreshold = 0.7

// send appends the compose buffer as a new user message, clears it,
// conditionally schedules a title or summary fetch, and opens the reply
// stream. It is a no-op if the compose buffer is empty.
func (m *Model) send() {
	text := m.input.Value()
	if text == "" {
		return
	}

	th := m.thread()
	th.AddMessage(chatmodel.NewUserMessage(text))
	m.input.Reset()

	if th.TokenUse() > highTokenUseThreshold {
		m.startSummaryFetch(th)
	} else if th.Title == nil && len(th.NonSysMessages()) >= 2 {
		m.titleCh = m.sess.RequestTitle(m.ctx, th)
	}

	m.startReply(th)
}

// startSummaryFetch elides every message from just past the last
// existing summary's coverage up to (but not including) the most recent
// message, keeping the latest turn in full context for the reply that is
// about to be requested.
func (m *Model) startSummaryFetch(th *chatmodel.Thread) {
	start := 1 // index 0 holds the persona's system prompt, never elided
	for _, s := range th.Summaries {
		if s.EndIndex > start {
			start = s.EndIndex
		}
	}

	end := len(th.Messages) - 1
	if end <= start {
		return
	}

	m.summaryCh = m.sess.RequestSummary(m.ctx, th, start, end)
}

// startReply opens the streaming reply channel for th and switches the
// Model into the receiving state.
func (m *Model) startReply(th *chatmodel.Thread) {
	ch, err := m.engine.StreamThreadReply(m.ctx, th)
	if err != nil {
		m.alert = err.Error()
		return
	}

	m.receiving = true
	m.replyCh = ch
}
