package chatmodel

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestThread() *Thread {
	sysMsg := NewMessage(RoleSystem, "You are a helpful assistant", time.Now())
	return NewThread([]*Message{sysMsg}, ModelGPT4, uuid.New(), DefaultPrompt())
}

func TestThreadUpdateAndCommit(t *testing.T) {
	th := newTestThread()
	th.AddMessage(NewUserMessage("hello"))

	th.Update("Hi")
	th.Update(" there")

	if th.Incoming == nil || th.Incoming.Content != "Hi there" {
		t.Fatalf("incoming message = %+v, want content 'Hi there'", th.Incoming)
	}

	needsTitle := th.CommitMessage()
	if th.Incoming != nil {
		t.Error("incoming should be cleared after commit")
	}
	if !needsTitle {
		t.Error("expected needsTitle=true: thread has 2 non-system messages and no title")
	}

	last, ok := th.LastMessage()
	if !ok || last.Content != "Hi there" || !last.IsAssistant() {
		t.Errorf("last message = %+v, want committed assistant message", last)
	}
}

func TestThreadTimestampMonotonicity(t *testing.T) {
	th := newTestThread()
	base := time.Now()
	th.AddMessage(NewMessage(RoleUser, "one", base))
	th.AddMessage(NewMessage(RoleAssistant, "two", base.Add(time.Second)))
	th.AddMessage(NewMessage(RoleUser, "three", base.Add(2*time.Second)))

	for i := 1; i < len(th.Messages); i++ {
		if th.Messages[i].Timestamp.Before(th.Messages[i-1].Timestamp) {
			t.Fatalf("message %d timestamp precedes message %d", i, i-1)
		}
	}
}

func TestWireMessagesSummarySubstitution(t *testing.T) {
	th := newTestThread()
	th.AddMessage(NewUserMessage("a"))
	th.AddMessage(NewAssistantMessage("b"))
	th.AddMessage(NewUserMessage("c"))
	th.AddMessage(NewAssistantMessage("d"))

	// Elide messages[1:3) (indices into the full Messages slice, system
	// message included at index 0) behind one summary.
	th.Summaries = []Summary{{StartIndex: 1, EndIndex: 3, Content: "discussed a and b"}}

	wire := th.wireMessages()

	sawSummary := false
	for i, w := range wire {
		if w.Role == "system" && i > 0 {
			sawSummary = true
		}
	}
	if !sawSummary {
		t.Fatalf("expected a synthetic system summary message in wire output: %+v", wire)
	}

	// Total entries: original system prompt + summary + the two
	// messages outside the elided range.
	if len(wire) != 4 {
		t.Errorf("wire message count = %d, want 4", len(wire))
	}
}

func TestDisplayTitleFallsBackToFirstMessage(t *testing.T) {
	th := newTestThread()
	th.AddMessage(NewUserMessage("what is the capital of France"))

	if got := th.DisplayTitle(); got != "what is the capital of France" {
		t.Errorf("DisplayTitle() = %q", got)
	}

	th.SetTitle("Capitals")
	if got := th.DisplayTitle(); got != "Capitals" {
		t.Errorf("DisplayTitle() after SetTitle = %q, want Capitals", got)
	}
}
