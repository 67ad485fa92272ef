package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/keagud/gptty/internal/chatmodel"
)

// resolveIndex resolves a user-supplied 1-based index against
// Session.OrderedThreads(), the same stable order the list subcommand
// prints.
func resolveIndex(e *env, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: must be a number", raw)
	}

	threads := e.sess.OrderedThreads()
	if n < 1 || n > len(threads) {
		return 0, fmt.Errorf("index %d is out of range: there are %d thread(s)", n, len(threads))
	}

	return n, nil
}

// confirm prompts the user with a y/N question on stdout and reads a
// single line from stdin. Only an affirmative y/yes proceeds.
func confirm(prompt string) bool {
	fmt.Print(prompt)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// resolvePersona resolves the --prompt flag against the configured
// personas, falling back to the default persona when no flag was given.
func resolvePersona(e *env, label string) (chatmodel.Prompt, error) {
	if label == "" {
		return chatmodel.DefaultPrompt(), nil
	}
	return e.cfg.FindPersona(label)
}
