package sse

import "testing"

func TestParseMultiChunk(t *testing.T) {
	const data = `data: {"id":"chatcmpl-123","object":"chat.completion.chunk","created":1694268190,"model":"gpt-3.5-turbo-0613", "system_fingerprint": "fp_44709d6fcb", "choices":[{"index":0,"delta":{"role":"assistant","content":""},"finish_reason":null}]}
data: {"id":"chatcmpl-123","object":"chat.completion.chunk","created":1694268190,"model":"gpt-3.5-turbo-0613", "system_fingerprint": "fp_44709d6fcb", "choices":[{"index":0,"delta":{"content":"!"},"finish_reason":null}]}
data: {"id":"chatcmpl-123","object":"chat.completion.chunk","created":1694268190,"model":"gpt-3.5-turbo-0613", "system_fingerprint": "fp_44709d6fcb", "choices":[{"index":0,"delta":{"content":" today"},"finish_reason":null}]}
{"id":"chatcmpl-123","object":"chat.completion.chunk", "c`

	records, remainder, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	wantTokens := []string{"", "!", " today"}
	for i, want := range wantTokens {
		tok := records[i].Token()
		if tok == nil || *tok != want {
			t.Errorf("record %d: token = %v, want %q", i, tok, want)
		}
	}

	const wantRemainder = `{"id":"chatcmpl-123","object":"chat.completion.chunk", "c`
	if remainder != wantRemainder {
		t.Errorf("remainder = %q, want %q", remainder, wantRemainder)
	}
}

func TestParseDoneSentinel(t *testing.T) {
	const data = `data: {"id":"chatcmpl-1","object":"chat.completion.chunk","created":1,"choices":[{"index":0,"delta":{"content":"hi"},"finish_reason":null}]}
data: [DONE]`

	records, remainder, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if remainder != "" {
		t.Errorf("remainder = %q, want empty", remainder)
	}
}

func TestParseMalformedRecord(t *testing.T) {
	const data = `data: {"id": true, "choices": "nope"}`

	_, _, err := Parse(data)
	if err == nil {
		t.Fatal("expected an error for a malformed record")
	}
}

func TestParseIncrementalRemainderThreading(t *testing.T) {
	full := `data: {"id":"a","created":1,"choices":[{"index":0,"delta":{"content":"hi"},"finish_reason":null}]}
data: {"id":"a","created":1,"choices":[{"index":0,"delta":{"content":" there"},"finish_reason":null}]}
`
	wantRecords, wantRemainder, err := Parse(full)
	if err != nil {
		t.Fatalf("single-shot parse failed: %v", err)
	}

	mid := len(full) / 2
	firstHalf, secondHalf := full[:mid], full[mid:]

	firstRecords, firstRemainder, err := Parse(firstHalf)
	if err != nil {
		t.Fatalf("first chunk parse failed: %v", err)
	}

	secondRecords, secondRemainder, err := Parse(firstRemainder + secondHalf)
	if err != nil {
		t.Fatalf("second chunk parse failed: %v", err)
	}

	gotRecords := append(firstRecords, secondRecords...)
	if len(gotRecords) != len(wantRecords) {
		t.Fatalf("got %d records threading the remainder, want %d", len(gotRecords), len(wantRecords))
	}
	for i := range wantRecords {
		wantTok, gotTok := wantRecords[i].Token(), gotRecords[i].Token()
		if (wantTok == nil) != (gotTok == nil) || (wantTok != nil && *wantTok != *gotTok) {
			t.Errorf("record %d token mismatch: got %v, want %v", i, gotTok, wantTok)
		}
	}
	if secondRemainder != wantRemainder {
		t.Errorf("final remainder = %q, want %q", secondRemainder, wantRemainder)
	}
}
