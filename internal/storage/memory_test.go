package storage

import (
	"context"
	"errors"
	"testing"

	"dispute-assistant/internal/session"
)

func TestMemoryStore_IsolatedCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	st := session.NewState()
	st.AppendUser("hello")
	if err := store.Save(ctx, "a", st); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the saved-in or loaded-out state must not leak into the store.
	st.AppendAssistant("mutated after save")
	got1, err := store.Load(ctx, "a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got1.Messages) != 1 {
		t.Fatalf("store shares caller slice: %+v", got1.Messages)
	}
	got1.AppendAssistant("mutated after load")
	got2, _ := store.Load(ctx, "a")
	if len(got2.Messages) != 1 {
		t.Fatalf("store shares loaded slice: %+v", got2.Messages)
	}
}

func TestMemoryStore_MissingAndList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Load(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	_ = store.Save(ctx, "a", session.NewState())
	_ = store.Save(ctx, "b", session.NewState())
	ids, err := store.List(ctx)
	if err != nil || len(ids) != 2 {
		t.Fatalf("list: %v %+v", err, ids)
	}
}
