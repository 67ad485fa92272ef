package chatmodel

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// blockMarker replaces an entire fenced code block (fences included) in
// a message's non-code content. It is a sentinel statistically
// impossible to occur in natural user content.
const blockMarker = "```__<BLOCK>__```"

// codeBlockPattern matches a fenced code block: an opening ``` with an
// optional language tag on the fence line, a newline, then any content
// (dot matches newline) up to a closing ```.
var codeBlockPattern = regexp.MustCompile(`(?s)` + "```" + `(\w+)?\n(.*?)` + "```")

// Message is one chat turn.
type Message struct {
	Role      Role
	Content   string
	Timestamp time.Time
	Tokens    *int

	codeBlocks     []CodeBlock
	nonCodeContent string
}

// NewMessage constructs a Message, truncating timestamp to millisecond
// precision, and derives its code-block list and non-code content from
// content.
func NewMessage(role Role, content string, timestamp time.Time) *Message {
	m := &Message{Role: role, Content: content, Timestamp: timestamp.Truncate(time.Millisecond)}
	m.updateBlocks()
	return m
}

// NewUserMessage builds a User message timestamped now.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content, time.Now().UTC())
}

// NewAssistantMessage builds an Assistant message timestamped now.
func NewAssistantMessage(content string) *Message {
	return NewMessage(RoleAssistant, content, time.Now().UTC())
}

// NewMessageFromEpoch reconstructs a Message from the Store's epoch-float
// timestamp encoding (integer seconds plus a fractional-millisecond part).
func NewMessageFromEpoch(role Role, content string, timestampEpoch float64) *Message {
	secs := math.Floor(timestampEpoch)
	millis := (timestampEpoch - secs) * 1000
	ts := time.Unix(int64(secs), int64(millis)*int64(time.Millisecond)).UTC()
	return NewMessage(role, content, ts)
}

// TimestampEpoch encodes Timestamp the way the Store's `double` column
// expects: integer seconds plus a fractional-millisecond part.
func (m *Message) TimestampEpoch() float64 {
	secs := float64(m.Timestamp.Unix())
	millis := float64(m.Timestamp.Nanosecond()) / 1e6
	return secs + millis/1000
}

// CodeBlocks returns the code blocks derived from Content, in order of
// appearance.
func (m *Message) CodeBlocks() []CodeBlock {
	return m.codeBlocks
}

// NonCodeContent returns Content with every code block (fences included)
// replaced in place by a single blockMarker. FormattedContent renders a
// block only where the marker stands alone on its line.
func (m *Message) NonCodeContent() string {
	return m.nonCodeContent
}

func (m *Message) IsUser() bool      { return m.Role == RoleUser }
func (m *Message) IsAssistant() bool { return m.Role == RoleAssistant }
func (m *Message) IsSystem() bool    { return m.Role == RoleSystem }

// Update appends text to Content (used while an incoming message is
// still streaming) and re-derives code blocks.
func (m *Message) Update(text string) {
	m.Content += text
	m.updateBlocks()
}

// updateBlocks re-derives codeBlocks and nonCodeContent from Content. It
// is a pure function of Content: calling it twice in a row without an
// intervening Content change yields identical results.
func (m *Message) updateBlocks() {
	matches := codeBlockPattern.FindAllStringSubmatchIndex(m.Content, -1)

	blocks := make([]CodeBlock, 0, len(matches))

	if len(matches) == 0 {
		m.codeBlocks = blocks
		m.nonCodeContent = m.Content
		return
	}

	var sb strings.Builder
	last := 0

	for _, match := range matches {
		sb.WriteString(m.Content[last:match[0]])

		var language *string
		if match[2] != -1 {
			lang := m.Content[match[2]:match[3]]
			language = &lang
		}

		content := ""
		if match[4] != -1 {
			// The block holds the interior of the fences only; the
			// newline before the closing fence belongs to the fence.
			content = strings.TrimSuffix(m.Content[match[4]:match[5]], "\n")
		}

		blocks = append(blocks, CodeBlock{Language: language, Content: content})
		sb.WriteString(blockMarker)

		last = match[1]
	}
	sb.WriteString(m.Content[last:])

	m.codeBlocks = blocks
	m.nonCodeContent = sb.String()
}

// FormattedContent walks NonCodeContent line by line, substituting the
// highlighted rendering of the next unconsumed code block for each line
// that equals blockMarker. blockIndex is the caller-supplied 1-based copy
// index for the first substituted block; it is incremented once per
// block consumed, so the same counter can be threaded across a whole
// thread's messages.
func (m *Message) FormattedContent(blockIndex *int, width int) (string, error) {
	var out []string
	consumed := 0

	for _, line := range strings.Split(m.nonCodeContent, "\n") {
		if strings.TrimSpace(line) == blockMarker && consumed < len(m.codeBlocks) {
			block := m.codeBlocks[consumed]
			rendered, err := block.HighlightedText(*blockIndex, width)
			if err != nil {
				return "", err
			}
			out = append(out, rendered)
			consumed++
			*blockIndex++
			continue
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n"), nil
}
