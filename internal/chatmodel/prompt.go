package chatmodel

import "strings"

// ValidColors is the closed set of 16 ANSI color names a persona's Color
// may name.
var ValidColors = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"gray", "bright-red", "bright-green", "bright-yellow", "bright-blue",
	"bright-magenta", "bright-cyan", "bright-white",
}

// IsValidColor reports whether name (case-insensitive) belongs to
// ValidColors.
func IsValidColor(name string) bool {
	for _, c := range ValidColors {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// Prompt is a named system-prompt persona: a label, the system-prompt
// text it seeds a new thread with, the model the thread should target,
// and an optional display color for the Assistant's header.
type Prompt struct {
	Label  string
	Prompt string
	Model  Model
	Color  string
}

// DefaultPrompt is the persona used when no persona is named and the
// configuration defines no matching label.
func DefaultPrompt() Prompt {
	return Prompt{
		Label:  "Assistant",
		Prompt: "You are a helpful assistant",
		Model:  defaultModel,
		Color:  "blue",
	}
}

// MatchesLabel reports whether label case-insensitively equals p's Label.
func (p Prompt) MatchesLabel(label string) bool {
	return strings.EqualFold(p.Label, label)
}

// HasLabelPrefix reports whether p's Label case-insensitively starts
// with prefix, used to resolve `new --prompt` arguments against
// configured personas.
func (p Prompt) HasLabelPrefix(prefix string) bool {
	return strings.HasPrefix(strings.ToLower(p.Label), strings.ToLower(prefix))
}

// displayColor returns p's configured color, or a fallback when unset.
func (p Prompt) displayColor() string {
	if p.Color == "" {
		return "blue"
	}
	return p.Color
}
