package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/keagud/gptty/internal/chatmodel"
	"github.com/keagud/gptty/internal/session"
	"github.com/keagud/gptty/internal/store"
	"github.com/keagud/gptty/internal/streamengine"
)

func newTestModel(t *testing.T, content string) *Model {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "gpt.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	// The engine points at an unroutable endpoint so any background
	// fetch a test happens to trigger fails fast instead of reaching
	// the real endpoint.
	engine := streamengine.New("test-key")
	engine.Endpoint = "http://127.0.0.1:0"

	sess, err := session.New(st, engine, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	id := uuid.New()
	th := chatmodel.NewThread(
		[]*chatmodel.Message{chatmodel.NewMessage(chatmodel.RoleSystem, "prompt", time.Now())},
		chatmodel.ModelGPT4, id, chatmodel.DefaultPrompt(),
	)
	th.AddMessage(chatmodel.NewUserMessage("hi"))
	if content != "" {
		th.AddMessage(chatmodel.NewAssistantMessage(content))
	}
	sess.Threads[id] = th

	ta := textarea.New()
	ta.Focus()

	return &Model{
		ctx:      context.Background(),
		sess:     sess,
		threadID: id,
		input:    ta,
		viewport: viewport.New(40, 10),
	}
}

func TestDrainReplyCommitsOnSentinel(t *testing.T) {
	m := newTestModel(t, "")

	ch := make(chan *string, 4)
	for _, tok := range []string{"Hi", " ", "there"} {
		tok := tok
		ch <- &tok
	}
	ch <- nil
	m.replyCh = ch
	m.receiving = true

	m.drainReply()

	if m.receiving {
		t.Error("receiving should clear once the sentinel arrives")
	}
	if m.replyCh != nil {
		t.Error("reply channel should clear once the sentinel arrives")
	}

	th := m.thread()
	if th.Incoming != nil {
		t.Error("incoming should be committed after the sentinel")
	}
	last, ok := th.LastMessage()
	if !ok || !last.IsAssistant() || last.Content != "Hi there" {
		t.Errorf("last message = %+v, want committed assistant 'Hi there'", last)
	}
}

func TestDrainReplyTreatsCloseWithoutSentinelAsFailure(t *testing.T) {
	m := newTestModel(t, "")

	ch := make(chan *string, 2)
	tok := "partial"
	ch <- &tok
	close(ch)
	m.replyCh = ch
	m.receiving = true

	m.drainReply()

	if m.receiving {
		t.Error("receiving should clear when the channel closes")
	}
	if m.thread().Incoming != nil {
		t.Error("incoming should be discarded on a close without sentinel")
	}
	if m.alert == "" {
		t.Error("expected an alert reporting the failed stream")
	}
}

func TestResolveCopyIndexValidSelection(t *testing.T) {
	m := newTestModel(t, "```go\nfmt.Println(1)\n```\nmid\n```go\nfmt.Println(2)\n```")

	m.enterCopyMode()
	m.copyDigits = "2"
	m.resolveCopyIndex()

	if m.copyIndex != 2 {
		t.Fatalf("copyIndex = %d, want 2", m.copyIndex)
	}
	if !m.copyMode {
		t.Error("copy mode should still be active after a valid-range selection")
	}
}

func TestResolveCopyIndexOutOfRangeExitsCopyMode(t *testing.T) {
	m := newTestModel(t, "```go\nfmt.Println(1)\n```")

	m.enterCopyMode()
	m.copyDigits = "9"
	m.resolveCopyIndex()

	if m.copyMode {
		t.Error("copy mode should exit once the digit buffer resolves out of range")
	}
	if m.alert != "No selection for '9'!" {
		t.Errorf("alert = %q, want the out-of-range message", m.alert)
	}
}

func TestOnKeyCtrlCSetsShouldQuit(t *testing.T) {
	m := newTestModel(t, "")
	m.onKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.shouldQuit {
		t.Error("Ctrl-C should set shouldQuit")
	}
}

func TestOnKeyDiscardedWhileReceiving(t *testing.T) {
	m := newTestModel(t, "")
	m.receiving = true

	m.onKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	if m.input.Value() != "" {
		t.Errorf("input = %q, want empty: keystrokes must be discarded while receiving", m.input.Value())
	}
}

func TestEnterCopyModeResetsState(t *testing.T) {
	m := newTestModel(t, "")
	m.copyDigits = "stale"
	m.copyIndex = 3

	m.enterCopyMode()

	if m.copyDigits != "" || m.copyIndex != 0 || !m.copyMode {
		t.Errorf("enterCopyMode left stale state: digits=%q index=%d mode=%v", m.copyDigits, m.copyIndex, m.copyMode)
	}
}

func TestEscExitsCopyMode(t *testing.T) {
	m := newTestModel(t, "")
	m.enterCopyMode()
	m.onCopyModeKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.copyMode {
		t.Error("Esc should exit copy mode")
	}
}

func TestScrollPercentFullWhenContentFits(t *testing.T) {
	m := newTestModel(t, "")
	m.viewport.SetContent("one line")
	if got := m.scrollPercent(); got != 100 {
		t.Errorf("scrollPercent() = %d, want 100 when content fits entirely", got)
	}
}
