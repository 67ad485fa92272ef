package chatmodel

// Model identifies which completions model a thread or persona targets.
// Each variant carries a maximum context-token bound used by
// Thread.TokenUse.
type Model string

const (
	ModelGPT4       Model = "gpt-4"
	ModelGPT35Turbo Model = "gpt-3.5-turbo"
	defaultModel          = ModelGPT4
)

// maxContextTokens is the context window each known model enforces.
var maxContextTokens = map[Model]int{
	ModelGPT4:       8192,
	ModelGPT35Turbo: 4096,
}

// MaxContextTokens returns m's context window, defaulting to the
// gpt-3.5-turbo bound for any model identifier this build does not
// recognize (a conservative choice: better to summarize early than to
// overflow the real remote window).
func (m Model) MaxContextTokens() int {
	if n, ok := maxContextTokens[m]; ok {
		return n
	}
	return maxContextTokens[ModelGPT35Turbo]
}
