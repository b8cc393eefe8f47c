package session

import (
	"time"

	"dispute-assistant/internal/llm"
)

// DisputeDigest is the derived summary of the user's most recent stated
// issue. It is never authored directly: Summarizer is the only producer.
// All fields are pointers so a digest that was never derived serializes
// with explicit nulls rather than empty strings.
type DisputeDigest struct {
	Summary         *string    `json:"summary"`
	LastUpdated     *time.Time `json:"lastUpdated"`
	LastUserMessage *string    `json:"lastUserMessage"`
}

// State is the full persisted record of one session: the ordered transcript
// plus the dispute digest derived from it.
type State struct {
	Messages []llm.Message `json:"messages"`
	Dispute  DisputeDigest `json:"dispute"`
}

// NewState returns the initial state for a never-seen session identifier.
func NewState() *State {
	return &State{Messages: []llm.Message{}}
}

func (s *State) AppendUser(content string) {
	s.Messages = append(s.Messages, llm.Message{Role: llm.RoleUser, Content: content})
}

func (s *State) AppendAssistant(content string) {
	s.Messages = append(s.Messages, llm.Message{Role: llm.RoleAssistant, Content: content})
}

// RecentView returns a copy of the last n messages, or all of them when the
// transcript is shorter. Mutating the returned slice does not affect state.
func (s *State) RecentView(n int) []llm.Message {
	msgs := s.Messages
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	out := make([]llm.Message, len(msgs))
	copy(out, msgs)
	return out
}

// ModelTranscript builds the message list sent to the backend: the system
// directive followed by the full persisted history. The directive is
// injected at call time only and is never part of the persisted transcript.
func (s *State) ModelTranscript(directive string) []llm.Message {
	out := make([]llm.Message, 0, len(s.Messages)+1)
	out = append(out, llm.Message{Role: llm.RoleSystem, Content: directive})
	out = append(out, s.Messages...)
	return out
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	cp := &State{
		Messages: make([]llm.Message, len(s.Messages)),
		Dispute:  s.Dispute,
	}
	copy(cp.Messages, s.Messages)
	if s.Dispute.Summary != nil {
		v := *s.Dispute.Summary
		cp.Dispute.Summary = &v
	}
	if s.Dispute.LastUpdated != nil {
		ts := *s.Dispute.LastUpdated
		cp.Dispute.LastUpdated = &ts
	}
	if s.Dispute.LastUserMessage != nil {
		v := *s.Dispute.LastUserMessage
		cp.Dispute.LastUserMessage = &v
	}
	return cp
}
