package session

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSummarizeShortMessage(t *testing.T) {
	sm := &Summarizer{Now: fixedClock(time.Unix(100, 0))}
	s := NewState()
	msg := strings.Repeat("a", 50)
	s.AppendUser(msg)

	d := sm.Summarize(s)
	want := "Latest dispute description: " + msg
	if d.Summary == nil || *d.Summary != want {
		t.Fatalf("unexpected summary: %v", d.Summary)
	}
	if strings.HasSuffix(*d.Summary, "...") {
		t.Fatalf("short message must not carry truncation marker")
	}
	if d.LastUserMessage == nil || *d.LastUserMessage != msg {
		t.Fatalf("lastUserMessage mismatch: %v", d.LastUserMessage)
	}
	if d.LastUpdated == nil || !d.LastUpdated.Equal(time.Unix(100, 0)) {
		t.Fatalf("unexpected lastUpdated: %v", d.LastUpdated)
	}
}

func TestSummarizeTruncates(t *testing.T) {
	sm := NewSummarizer()
	s := NewState()
	msg := strings.Repeat("x", 400)
	s.AppendUser(msg)

	d := sm.Summarize(s)
	if d.Summary == nil || len(*d.Summary) != 280 {
		t.Fatalf("want exactly 280 chars, got %v", d.Summary)
	}
	if !strings.HasSuffix(*d.Summary, "...") {
		t.Fatalf("truncated summary must end in marker: %q", (*d.Summary)[270:])
	}
	if d.LastUserMessage == nil || *d.LastUserMessage != msg {
		t.Fatalf("lastUserMessage must stay untruncated")
	}
}

func TestSummarizeTruncatesOnRuneBoundary(t *testing.T) {
	sm := NewSummarizer()
	s := NewState()
	// Multi-byte runes: byte-offset slicing would cut one in half.
	s.AppendUser(strings.Repeat("é", 300))

	d := sm.Summarize(s)
	if d.Summary == nil || !utf8.ValidString(*d.Summary) {
		t.Fatalf("summary is not valid UTF-8: %q", *d.Summary)
	}
	if got := utf8.RuneCountInString(*d.Summary); got != 280 {
		t.Fatalf("want 280 characters, got %d", got)
	}
	if !strings.HasSuffix(*d.Summary, "é...") {
		t.Fatalf("marker must follow a whole rune: %q", (*d.Summary)[len(*d.Summary)-8:])
	}
}

func TestSummarizeShortMultiByteNotTruncated(t *testing.T) {
	sm := NewSummarizer()
	s := NewState()
	// 228 characters but 428 bytes: under the limit, must stay whole.
	msg := strings.Repeat("é", 200)
	s.AppendUser(msg)

	d := sm.Summarize(s)
	if d.Summary == nil || *d.Summary != "Latest dispute description: "+msg {
		t.Fatalf("character-count limit applied by bytes: %v", d.Summary)
	}
}

func TestSummarizeIdempotentContent(t *testing.T) {
	sm := NewSummarizer()
	s := NewState()
	s.AppendUser("double charge at Store X")
	s.AppendAssistant("noted")

	d1 := sm.Summarize(s)
	d2 := sm.Summarize(s)
	if *d1.Summary != *d2.Summary || *d1.LastUserMessage != *d2.LastUserMessage {
		t.Fatalf("content fields changed on re-summarize: %+v vs %+v", d1, d2)
	}
}

func TestSummarizeMonotonicTimestamp(t *testing.T) {
	tick := time.Unix(0, 0)
	sm := &Summarizer{Now: func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}}
	s := NewState()
	s.AppendUser("first")
	d1 := sm.Summarize(s)
	s.Dispute = d1

	s.AppendAssistant("ok")
	s.AppendUser("second")
	d2 := sm.Summarize(s)
	if !d2.LastUpdated.After(*d1.LastUpdated) {
		t.Fatalf("lastUpdated regressed: %v then %v", d1.LastUpdated, d2.LastUpdated)
	}
}

func TestSummarizeNoUserMessageKeepsDigest(t *testing.T) {
	sm := NewSummarizer()
	s := NewState()
	prev := time.Unix(42, 0)
	prevSummary := "Latest dispute description: prior"
	prevMsg := "prior"
	s.Dispute = DisputeDigest{Summary: &prevSummary, LastUpdated: &prev, LastUserMessage: &prevMsg}
	s.AppendAssistant("hello, how can I help?")

	d := sm.Summarize(s)
	if d.Summary == nil || *d.Summary != prevSummary || *d.LastUserMessage != "prior" {
		t.Fatalf("digest regressed without user input: %+v", d)
	}
	if !d.LastUpdated.Equal(prev) {
		t.Fatalf("timestamp changed without user input: %v", d.LastUpdated)
	}
}
