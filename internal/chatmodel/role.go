// Package chatmodel holds the in-memory conversation model: roles,
// messages, code blocks, threads, prompt personas and summaries, plus the
// rich-text pipeline (code-block extraction and syntax highlighting) that
// turns a message's raw content into terminal-ready display lines.
package chatmodel

import "github.com/keagud/gptty/internal/apperrors"

// Role tags which party produced a Message. It has a total order used
// only by the store's integer encoding (System=1, User=2, Assistant=3).
type Role int

const (
	RoleSystem Role = iota + 1
	RoleUser
	RoleAssistant
)

// ToNum returns the Store's integer encoding for r.
func (r Role) ToNum() int {
	return int(r)
}

// RoleFromNum decodes the Store's integer encoding, failing with
// apperrors.Parse for any value outside {1, 2, 3}.
func RoleFromNum(n int) (Role, error) {
	switch Role(n) {
	case RoleSystem, RoleUser, RoleAssistant:
		return Role(n), nil
	default:
		return 0, apperrors.Parse("role value must be 1, 2, or 3", nil)
	}
}

func (r Role) String() string {
	switch r {
	case RoleSystem:
		return "system"
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// WireName is the string the chat-completions wire protocol expects in
// a message's "role" field.
func (r Role) WireName() string {
	return r.String()
}
