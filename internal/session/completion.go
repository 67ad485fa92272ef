package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/keagud/gptty/internal/apperrors"
	"github.com/keagud/gptty/internal/chatmodel"
)

// fetchCompletion issues a single non-streaming chat-completion request
// against the thread's own model, with systemPrompt steering the
// response and the thread's non-system messages flattened into one user
// turn. Used by the one-shot title and summary fetches.
func (s *Session) fetchCompletion(ctx context.Context, thread *chatmodel.Thread, systemPrompt string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model": string(thread.Model),
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": transcriptFor(thread)},
		},
	})
	if err != nil {
		return "", apperrors.Parse("encode completion request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.engine.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Transport("build completion request", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.engine.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.engine.Client.Do(req)
	if err != nil {
		return "", apperrors.Transport("completion request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.Transport(fmt.Sprintf("completion request returned status %d", resp.StatusCode), nil)
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", apperrors.Parse("decode completion response", err)
	}
	if len(decoded.Choices) == 0 {
		return "", apperrors.Parse("completion response had no choices", nil)
	}

	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}

// transcriptFor renders thread's non-system messages as a flat
// "Label:\ncontent\n\n" transcript, the shape the title/summary prompts
// expect as their user turn.
func transcriptFor(thread *chatmodel.Thread) string {
	var sb strings.Builder
	for _, m := range thread.NonSysMessages() {
		label := "User"
		if m.IsAssistant() {
			label = "Assistant"
		}
		sb.WriteString(label)
		sb.WriteString(":\n")
		sb.WriteString(m.Content)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
