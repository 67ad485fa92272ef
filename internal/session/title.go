package session

import (
	"context"

	"github.com/keagud/gptty/internal/chatmodel"
)

const titleSystemPrompt = "Your task is to provide brief descriptive titles to message threads. " +
	"Each title should be no more than 100 characters in length. " +
	"Your response should consist of the title and nothing else."

// RequestTitle fires a one-shot, fire-and-forget title fetch for thread
// and returns a channel that yields exactly one value (the generated
// title) on success, or is closed without a value on failure. The
// caller applies the result to the thread; thread itself is never
// mutated here.
func (s *Session) RequestTitle(ctx context.Context, thread *chatmodel.Thread) <-chan string {
	ch := make(chan string, 1)

	go func() {
		defer close(ch)

		title, err := s.fetchCompletion(ctx, thread, titleSystemPrompt)
		if err != nil {
			if s.log != nil {
				s.log.LogError(ctx, err, "title fetch failed")
			}
			return
		}

		select {
		case ch <- title:
		case <-ctx.Done():
		}
	}()

	return ch
}
