// Package streamengine bridges a blocking HTTP response stream from the
// remote completions endpoint to a cooperative UI loop via a bounded
// channel, reassembling JSON records across arbitrary chunk boundaries.
package streamengine

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/keagud/gptty/internal/apperrors"
	"github.com/keagud/gptty/internal/chatmodel"
	"github.com/keagud/gptty/internal/sse"
)

// channelCapacity bounds the reply channel so a slow UI applies natural
// backpressure to the background reader rather than buffering unbounded
// tokens.
const channelCapacity = 100

const completionsEndpoint = "https://api.openai.com/v1/chat/completions"

// Engine owns the HTTP client used to dispatch chat-completions requests.
type Engine struct {
	Client   *http.Client
	Endpoint string
	APIKey   string
}

// New constructs an Engine targeting the standard chat-completions
// endpoint, authorized with apiKey.
func New(apiKey string) *Engine {
	return &Engine{
		Client:   &http.Client{},
		Endpoint: completionsEndpoint,
		APIKey:   apiKey,
	}
}

// StreamThreadReply opens a background HTTP request for thread's reply
// and returns a channel delivering tokens in order, terminated by
// exactly one nil sentinel. thread's last message must be from the
// user, or this fails immediately with a State error. The channel is
// closed without a preceding nil if the background request fails
// (network error, non-2xx status, or a stream that closes mid-record);
// callers must treat a channel close with no final nil as a transport
// failure.
func (e *Engine) StreamThreadReply(ctx context.Context, thread *chatmodel.Thread) (<-chan *string, error) {
	last, ok := thread.LastMessage()
	if !ok || !last.IsUser() {
		return nil, apperrors.State("the most recent message in the thread must be from a user")
	}

	body, err := thread.AsJSONBody()
	if err != nil {
		return nil, apperrors.Parse("failed to encode thread as a wire body", err)
	}

	ch := make(chan *string, channelCapacity)
	go e.run(ctx, body, ch)

	return ch, nil
}

func (e *Engine) run(ctx context.Context, body []byte, ch chan<- *string) {
	defer close(ch)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.Endpoint, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+e.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.Client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return
	}

	var accumulator strings.Builder
	buf := make([]byte, 4096)

	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			accumulator.Write(buf[:n])

			records, remainder, parseErr := sse.Parse(accumulator.String())
			accumulator.Reset()
			if parseErr != nil {
				return
			}
			accumulator.WriteString(remainder)

			for _, record := range records {
				tok := record.Token()
				if tok == nil {
					continue
				}
				select {
				case ch <- tok:
				case <-ctx.Done():
					return
				}
			}
		}

		if readErr == io.EOF {
			if accumulator.Len() == 0 {
				select {
				case ch <- nil:
				case <-ctx.Done():
				}
			}
			return
		}
		if readErr != nil {
			return
		}
	}
}
