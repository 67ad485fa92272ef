package chatmodel

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// highlightTheme is the one fixed dark theme code blocks render with;
// CodeBlock's rendering is a pure function of (language, content, theme).
const highlightTheme = "dracula"

var annotationStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("5"))

// CodeBlock is a fenced code segment extracted from a Message's content.
type CodeBlock struct {
	Language *string
	Content  string
}

// AsRaw reconstructs the original fenced-code text this block was parsed
// from.
func (c CodeBlock) AsRaw() string {
	lang := ""
	if c.Language != nil {
		lang = *c.Language
	}
	return fmt.Sprintf("```%s\n%s\n```", lang, c.Content)
}

func (c CodeBlock) lexer() chroma.Lexer {
	var lexer chroma.Lexer
	if c.Language != nil && *c.Language != "" {
		lexer = lexers.Get(*c.Language)
	}
	if lexer == nil {
		if firstLine, _, ok := strings.Cut(c.Content, "\n"); ok {
			lexer = lexers.Analyse(firstLine)
		} else {
			lexer = lexers.Analyse(c.Content)
		}
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// HighlightedText renders this block's content highlighted against the
// fixed theme, wrapped to exactly width terminal columns, with a trailing
// italic "(index)" annotation identifying its 1-based copy index.
func (c CodeBlock) HighlightedText(index int, width int) (string, error) {
	style := styles.Get(highlightTheme)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := c.lexer().Tokenise(nil, c.Content)
	if err != nil {
		return "", fmt.Errorf("tokenise code block: %w", err)
	}

	var buf strings.Builder
	if err := formatters.TTY256.Format(&buf, style, iterator); err != nil {
		return "", fmt.Errorf("format code block: %w", err)
	}

	rendered := strings.TrimRight(buf.String(), "\n")
	if width > 0 {
		rendered = wordwrap.String(rendered, width)
	}

	lines := strings.Split(rendered, "\n")
	if width > 0 {
		padStyle := lipgloss.NewStyle().Width(width)
		for i, ln := range lines {
			lines[i] = padStyle.Render(ln)
		}
	}

	lines = append(lines, annotationStyle.Render(fmt.Sprintf("(%d)", index)))

	return strings.Join(lines, "\n"), nil
}
