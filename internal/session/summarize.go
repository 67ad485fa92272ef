package session

import (
	"context"

	"github.com/keagud/gptty/internal/chatmodel"
)

const summarySystemPrompt = "Summarize the elided messages concisely, preserving any decisions " +
	"or facts a future reply may need."

// RequestSummary fires a one-shot, fire-and-forget summary fetch for the
// message range [startIndex, endIndex) of thread, returning a channel
// that yields exactly one chatmodel.Summary on success or is closed
// without a value on failure.
func (s *Session) RequestSummary(ctx context.Context, thread *chatmodel.Thread, startIndex, endIndex int) <-chan chatmodel.Summary {
	ch := make(chan chatmodel.Summary, 1)

	// The request carries only the messages being elided.
	elided := *thread
	elided.Messages = thread.Messages[startIndex:endIndex]

	go func() {
		defer close(ch)

		content, err := s.fetchCompletion(ctx, &elided, summarySystemPrompt)
		if err != nil {
			if s.log != nil {
				s.log.LogError(ctx, err, "summary fetch failed")
			}
			return
		}

		summary := chatmodel.Summary{StartIndex: startIndex, EndIndex: endIndex, Content: content}

		select {
		case ch <- summary:
		case <-ctx.Done():
		}
	}()

	return ch
}
