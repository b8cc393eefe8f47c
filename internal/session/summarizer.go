package session

import (
	"time"
	"unicode/utf8"

	"dispute-assistant/internal/llm"
)

const (
	summaryPrefix = "Latest dispute description: "
	summaryMaxLen = 280
)

// Summarizer derives the dispute digest from a transcript. It is a
// placeholder extraction heuristic keyed off the most recent user message,
// not semantic understanding; replacements must stay idempotent on content
// and monotonically timestamped.
type Summarizer struct {
	Now func() time.Time
}

func NewSummarizer() *Summarizer {
	return &Summarizer{Now: time.Now}
}

// Summarize produces the digest for the transcript's latest user message.
// A transcript with no user message leaves the prior digest untouched so an
// established summary never regresses to empty.
func (sm *Summarizer) Summarize(s *State) DisputeDigest {
	var lastUser *llm.Message
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == llm.RoleUser {
			lastUser = &s.Messages[i]
			break
		}
	}
	if lastUser == nil {
		return s.Dispute
	}

	summary := summaryPrefix + lastUser.Content
	// The limit counts characters, so truncate on rune boundaries: slicing
	// by byte offset could cut a multi-byte rune and corrupt the summary.
	if utf8.RuneCountInString(summary) > summaryMaxLen {
		runes := []rune(summary)
		summary = string(runes[:summaryMaxLen-3]) + "..."
	}

	now := sm.Now().UTC()
	lastUserMessage := lastUser.Content
	return DisputeDigest{
		Summary:         &summary,
		LastUpdated:     &now,
		LastUserMessage: &lastUserMessage,
	}
}
