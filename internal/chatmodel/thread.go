package chatmodel

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Thread is an ordered conversation with the model: committed messages,
// an optional in-progress incoming message, the persona it was started
// under, and the titles/summaries derived from it.
type Thread struct {
	ID        uuid.UUID
	Model     Model
	Persona   Prompt
	Messages  []*Message
	Incoming  *Message
	Title     *string
	Summaries []Summary
}

// NewThread constructs a Thread seeded with messages (ordinarily a
// single System message carrying the persona's prompt text).
func NewThread(messages []*Message, model Model, id uuid.UUID, persona Prompt) *Thread {
	return &Thread{Messages: messages, Model: model, ID: id, Persona: persona}
}

// StrID returns the thread's identifier as a simple (no-dash) hex string.
func (t *Thread) StrID() string {
	return strings.ReplaceAll(t.ID.String(), "-", "")
}

// DisplayTitle returns the thread's title, or a preview of its first
// message, ellipsized to fit.
func (t *Thread) DisplayTitle() string {
	if t.Title != nil {
		return stringPreview(*t.Title, 100)
	}
	if first, ok := t.FirstMessage(); ok {
		return stringPreview(first.Content, 100)
	}
	return "..."
}

// SetTitle sets the thread's title.
func (t *Thread) SetTitle(title string) {
	t.Title = &title
}

// ListPreview formats the list-view line for this thread: its init
// timestamp (local time) followed by its title or a preview of its
// first message. The second return value is false for a thread with no
// non-system messages yet.
func (t *Thread) ListPreview() (string, bool) {
	initTime, ok := t.InitTime()
	if !ok {
		return "", false
	}

	var preview string
	if t.Title != nil {
		preview = *t.Title
	} else {
		first, ok := t.FirstMessage()
		if !ok {
			return "", false
		}
		preview = stringPreview(first.Content, 200)
	}

	return fmt.Sprintf("%s %s", initTime.Local().Format("2006-01-02 15:04"), preview), true
}

// MessageDisplayHeader renders the one-line styled header shown above a
// message of the given role: User in green, Assistant in the persona's
// color carrying its label, System in bold magenta.
func (t *Thread) MessageDisplayHeader(role Role) string {
	switch role {
	case RoleUser:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Underline(true).Render("User")
	case RoleAssistant:
		color := ansiColorCode(t.Persona.displayColor())
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Underline(true).Render(t.Persona.Label)
	case RoleSystem:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true).Underline(true).Render("System")
	default:
		return ""
	}
}

// NonSysMessages returns the committed messages whose role is not System.
func (t *Thread) NonSysMessages() []*Message {
	out := make([]*Message, 0, len(t.Messages))
	for _, m := range t.Messages {
		if !m.IsSystem() {
			out = append(out, m)
		}
	}
	return out
}

// CodeBlocks returns every code block across the thread's non-system
// committed messages and its incoming message, in order -- the same
// blocks, in the same order, that TUIFormattedMessages numbers.
func (t *Thread) CodeBlocks() []CodeBlock {
	var blocks []CodeBlock
	for _, m := range t.Messages {
		if m.IsSystem() {
			continue
		}
		blocks = append(blocks, m.CodeBlocks()...)
	}
	if t.Incoming != nil {
		blocks = append(blocks, t.Incoming.CodeBlocks()...)
	}
	return blocks
}

// SetIncomingMessage starts a new incoming Assistant message with text.
func (t *Thread) SetIncomingMessage(text string) {
	t.Incoming = NewAssistantMessage(text)
}

// Update appends a streamed token to the in-progress incoming message,
// creating it if this is the first token of the reply.
func (t *Thread) Update(text string) {
	if t.Incoming != nil {
		t.Incoming.Update(text)
		return
	}
	t.Incoming = NewAssistantMessage(text)
}

// CommitMessage moves the incoming message into the committed list and
// clears the incoming slot. It reports whether the caller should now
// schedule a title fetch (title still unset and at least two non-system
// messages exist) -- Thread never schedules the fetch itself.
func (t *Thread) CommitMessage() (needsTitle bool) {
	if t.Incoming == nil {
		return false
	}

	t.Messages = append(t.Messages, t.Incoming)
	t.Incoming = nil

	return t.Title == nil && len(t.NonSysMessages()) >= 2
}

// ClearIncomingMessage discards the in-progress incoming message.
func (t *Thread) ClearIncomingMessage() {
	t.Incoming = nil
}

// TUIFormattedMessages returns one display block per non-system message
// in order, including the incoming message at the end if present. A
// single code-block counter is threaded across every message so the
// same integer identifies the same block in display and in copy mode.
func (t *Thread) TUIFormattedMessages(width int) ([]string, error) {
	messages := make([]*Message, 0, len(t.Messages)+1)
	messages = append(messages, t.Messages...)
	if t.Incoming != nil {
		messages = append(messages, t.Incoming)
	}

	blockIndex := 1
	blocks := make([]string, 0, len(messages))

	for _, m := range messages {
		if m.IsSystem() {
			continue
		}

		content, err := m.FormattedContent(&blockIndex, width)
		if err != nil {
			return nil, err
		}

		header := t.MessageDisplayHeader(m.Role)
		blocks = append(blocks, header+"\n"+content+"\n")
	}

	return blocks, nil
}

// InitTime returns the timestamp of the first non-system message, used
// to order threads for display.
func (t *Thread) InitTime() (time.Time, bool) {
	first, ok := t.FirstMessage()
	if !ok {
		return time.Time{}, false
	}
	return first.Timestamp, true
}

// AddMessage appends a committed message to the thread.
func (t *Thread) AddMessage(m *Message) {
	t.Messages = append(t.Messages, m)
}

// FirstMessage returns the first non-system message, if any.
func (t *Thread) FirstMessage() (*Message, bool) {
	for _, m := range t.Messages {
		if !m.IsSystem() {
			return m, true
		}
	}
	return nil, false
}

// LastMessage returns the most recently committed message, which may be
// a System message.
func (t *Thread) LastMessage() (*Message, bool) {
	if len(t.Messages) == 0 {
		return nil, false
	}
	return t.Messages[len(t.Messages)-1], true
}

// TokenUse estimates the fraction of the thread's model context window
// consumed by the thread so far: recorded token counts when available,
// otherwise content.len()/4 (an English-text approximation, never a
// substitute for a real tokenizer).
func (t *Thread) TokenUse() float64 {
	total := 0
	for _, m := range t.Messages {
		if m.Tokens != nil {
			total += *m.Tokens
			continue
		}
		total += len(m.Content) / 4
	}
	return float64(total) / float64(t.Model.MaxContextTokens())
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireBody struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// wireMessages builds the summary-substituted message list for the wire
// payload: for each resolved summary, in StartIndex order, messages in
// [StartIndex, EndIndex) are replaced by one synthetic System message. A
// summary that starts inside a range already replaced is skipped.
func (t *Thread) wireMessages() []wireMessage {
	resolved := resolveSummaries(t.Summaries)

	out := make([]wireMessage, 0, len(t.Messages))
	sIdx := 0

	for i := 0; i < len(t.Messages); {
		for sIdx < len(resolved) && resolved[sIdx].StartIndex < i {
			sIdx++
		}
		if sIdx < len(resolved) && resolved[sIdx].StartIndex == i {
			s := resolved[sIdx]
			end := s.EndIndex
			if end > len(t.Messages) {
				end = len(t.Messages)
			}
			out = append(out, wireMessage{
				Role:    RoleSystem.WireName(),
				Content: "**Summary of elided messages:** " + s.Content,
			})
			i = end
			sIdx++
			continue
		}

		m := t.Messages[i]
		out = append(out, wireMessage{Role: m.Role.WireName(), Content: m.Content})
		i++
	}

	return out
}

// AsJSONBody marshals the thread's minified, summary-substituted form as
// the chat-completions request body, with streaming enabled.
func (t *Thread) AsJSONBody() ([]byte, error) {
	return json.Marshal(wireBody{
		Model:    string(t.Model),
		Messages: t.wireMessages(),
		Stream:   true,
	})
}

// stringPreview returns an initial slice of text ending in an ellipsis
// when text is longer than desiredLength (including the ellipsis).
func stringPreview(text string, desiredLength int) string {
	runes := []rune(text)
	if len(runes) <= desiredLength {
		return text
	}

	cut := desiredLength - 3
	if cut < 0 {
		cut = 0
	}
	if cut > len(runes) {
		cut = len(runes)
	}

	return string(runes[:cut]) + "..."
}
