package chatmodel

import (
	"strings"
	"testing"
	"time"
)

func TestCodeBlockExtraction(t *testing.T) {
	content := "# T\n\n```python\nprint(1)\n```\nmid\n```js\nx=1\n``` "

	m := NewMessage(RoleAssistant, content, time.Now())

	blocks := m.CodeBlocks()
	if len(blocks) != 2 {
		t.Fatalf("expected 2 code blocks, got %d", len(blocks))
	}

	if blocks[0].Language == nil || *blocks[0].Language != "python" {
		t.Errorf("block 0 language = %v, want python", blocks[0].Language)
	}
	if blocks[1].Language == nil || *blocks[1].Language != "js" {
		t.Errorf("block 1 language = %v, want js", blocks[1].Language)
	}

	sentinels := strings.Count(m.NonCodeContent(), blockMarker)
	if sentinels != len(blocks) {
		t.Errorf("sentinel count = %d, want %d", sentinels, len(blocks))
	}

	if !strings.Contains(m.NonCodeContent(), "mid") {
		t.Errorf("non-code content lost the text between blocks: %q", m.NonCodeContent())
	}
}

func TestCodeBlockRoundTrip(t *testing.T) {
	content := "see ```go\nfmt.Println(1)\n``` ok"
	m := NewMessage(RoleAssistant, content, time.Now())

	firstBlocks, firstNonCode := m.CodeBlocks(), m.NonCodeContent()
	m.updateBlocks()
	secondBlocks, secondNonCode := m.CodeBlocks(), m.NonCodeContent()

	if len(firstBlocks) != len(secondBlocks) {
		t.Fatalf("block count changed across re-derivation: %d vs %d", len(firstBlocks), len(secondBlocks))
	}
	if firstNonCode != secondNonCode {
		t.Errorf("non-code content changed across re-derivation: %q vs %q", firstNonCode, secondNonCode)
	}
}

func TestMessageNoCodeBlocks(t *testing.T) {
	m := NewMessage(RoleUser, "just plain text", time.Now())
	if len(m.CodeBlocks()) != 0 {
		t.Errorf("expected no code blocks, got %d", len(m.CodeBlocks()))
	}
	if m.NonCodeContent() != m.Content {
		t.Errorf("non-code content should equal raw content when there are no fences")
	}
}

func TestTimestampEpochRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 250_000_000, time.UTC)
	m := NewMessage(RoleUser, "hi", ts)

	epoch := m.TimestampEpoch()
	reconstructed := NewMessageFromEpoch(RoleUser, "hi", epoch)

	if reconstructed.Timestamp.Unix() != ts.Unix() {
		t.Errorf("seconds mismatch: got %d, want %d", reconstructed.Timestamp.Unix(), ts.Unix())
	}
	gotMillis := reconstructed.Timestamp.Nanosecond() / 1_000_000
	wantMillis := ts.Nanosecond() / 1_000_000
	if gotMillis != wantMillis {
		t.Errorf("millisecond mismatch: got %d, want %d", gotMillis, wantMillis)
	}
}

func TestRoleFromNum(t *testing.T) {
	for n, want := range map[int]Role{1: RoleSystem, 2: RoleUser, 3: RoleAssistant} {
		got, err := RoleFromNum(n)
		if err != nil {
			t.Fatalf("RoleFromNum(%d) returned error: %v", n, err)
		}
		if got != want {
			t.Errorf("RoleFromNum(%d) = %v, want %v", n, got, want)
		}
	}

	if _, err := RoleFromNum(4); err == nil {
		t.Error("expected an error for an out-of-range role value")
	}
}
