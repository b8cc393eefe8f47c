package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"dispute-assistant/internal/llm"
	"dispute-assistant/internal/session"
	"dispute-assistant/internal/storage"
)

// recentWindow bounds the transcript slice returned to clients. The model
// still sees the full history on every call.
const recentWindow = 20

// TurnResult is the reply contract returned to /api/chat callers.
type TurnResult struct {
	Reply    string                `json:"reply"`
	Dispute  session.DisputeDigest `json:"dispute"`
	Messages []llm.Message         `json:"messages"`
}

// Service owns the chat turn pipeline. Every operation against one session
// identifier runs under that identifier's lock, so at most one turn is in
// flight per session while distinct sessions proceed concurrently.
type Service struct {
	store      storage.Store
	gateway    *Gateway
	summarizer *session.Summarizer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(store storage.Store, gateway *Gateway, summarizer *session.Summarizer) *Service {
	return &Service{
		store:      store,
		gateway:    gateway,
		summarizer: summarizer,
		locks:      make(map[string]*sync.Mutex),
	}
}

func (s *Service) lock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Turn runs one chat turn: load, append the user message, call the model
// with the full transcript, append the reply, refresh the digest, persist.
// The session lock is held across the whole pipeline, so a concurrent turn
// for the same identifier cannot begin until this one's save completes.
// A validation error leaves the session untouched; a save error fails the
// turn since success cannot be honestly reported without persistence.
func (s *Service) Turn(ctx context.Context, id, message string) (*TurnResult, error) {
	if err := session.ValidateUserText(message); err != nil {
		return nil, err
	}

	l := s.lock(id)
	l.Lock()
	defer l.Unlock()

	state, err := s.store.Load(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		state = session.NewState()
	} else if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	state.AppendUser(message)

	reply, err := s.gateway.GenerateReply(ctx, state)
	if err != nil {
		// Backend failure degrades, it never fails the turn: the fallback
		// reply joins the transcript and is persisted like any other.
		log.Printf("session %s: %v, using fallback reply", id, err)
		reply = FallbackReply(message)
	}
	state.AppendAssistant(reply)
	state.Dispute = s.summarizer.Summarize(state)

	if err := s.store.Save(ctx, id, state); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &TurnResult{
		Reply:    reply,
		Dispute:  state.Dispute,
		Messages: state.RecentView(recentWindow),
	}, nil
}

// State returns the persisted session, or nil for a never-used identifier.
func (s *Service) State(ctx context.Context, id string) (*session.State, error) {
	l := s.lock(id)
	l.Lock()
	defer l.Unlock()

	state, err := s.store.Load(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return state, nil
}

// Compact trims every transcript that has grown beyond max down to its
// newest keep messages. Each session is trimmed under its own lock, so
// compaction never interleaves with an in-flight turn. The digest is left
// as persisted: the newest messages survive the trim, so it still points
// at a message that remains in the transcript.
func (s *Service) Compact(ctx context.Context, max, keep int) error {
	if max <= 0 || keep <= 0 || keep >= max {
		return nil
	}
	ids, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	for _, id := range ids {
		if err := s.compactOne(ctx, id, max, keep); err != nil {
			log.Printf("compact session %s: %v", id, err)
		}
	}
	return nil
}

func (s *Service) compactOne(ctx context.Context, id string, max, keep int) error {
	l := s.lock(id)
	l.Lock()
	defer l.Unlock()

	state, err := s.store.Load(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(state.Messages) <= max {
		return nil
	}
	state.Messages = append([]llm.Message(nil), state.Messages[len(state.Messages)-keep:]...)
	return s.store.Save(ctx, id, state)
}
