package sse

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/keagud/gptty/internal/apperrors"
)

// doneSentinel is the literal line the upstream sends to mark a clean
// end of stream, in place of a final JSON record.
const doneSentinel = "[DONE]"

// Parse splits input on line boundaries, strips each non-empty line's
// leading "data:" tag, and decodes it as a CompletionChunk. It stops at
// the first line that looks like a truncated record, or at an unterminated
// last line cut off inside the "data:" tag or the `[DONE]` sentinel, and
// returns that line (and everything after it) as remainder; or it stops
// at the `[DONE]` sentinel, in
// which case remainder is empty. Feeding successive chunks through Parse
// and threading the remainder forward (next input = previous remainder +
// next chunk) reconstructs the same records a single-shot parse would.
func Parse(input string) (records []CompletionChunk, remainder string, err error) {
	lines := splitLines(input)

	for i, line := range lines {
		if i == len(lines)-1 && !strings.HasSuffix(input, "\n") && line != doneSentinel &&
			(strings.HasPrefix("data:", line) || strings.HasPrefix(doneSentinel, line)) {
			return records, line, nil
		}

		var chunk CompletionChunk
		decErr := json.NewDecoder(strings.NewReader(line)).Decode(&chunk)
		if decErr == nil {
			records = append(records, chunk)
			continue
		}

		if errors.Is(decErr, io.ErrUnexpectedEOF) {
			remainder = strings.Join(lines[i:], "\n")
			return records, remainder, nil
		}

		var syntaxErr *json.SyntaxError
		if errors.As(decErr, &syntaxErr) && line == doneSentinel {
			return records, "", nil
		}

		return nil, "", apperrors.Parse("malformed completion chunk", decErr)
	}

	return records, "", nil
}

// splitLines trims each line, strips a leading "data:" tag, and drops
// empty lines.
func splitLines(input string) []string {
	rawLines := strings.Split(input, "\n")
	lines := make([]string, 0, len(rawLines))

	for _, ln := range rawLines {
		ln = strings.TrimSpace(ln)
		ln = strings.TrimPrefix(ln, "data:")
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		lines = append(lines, ln)
	}

	return lines
}
