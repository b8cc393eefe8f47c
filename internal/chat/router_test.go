package chat

import "testing"

func TestRouterResolveExisting(t *testing.T) {
	r := NewRouter()
	id, minted := r.Resolve("existing-token")
	if id != "existing-token" || minted {
		t.Fatalf("existing token must map to itself: id=%q minted=%v", id, minted)
	}
}

func TestRouterMintsWhenAbsent(t *testing.T) {
	r := &Router{NewID: func() string { return "minted-id" }}
	id, minted := r.Resolve("")
	if id != "minted-id" || !minted {
		t.Fatalf("absent token must mint: id=%q minted=%v", id, minted)
	}
}

func TestRouterDefaultIDsUnique(t *testing.T) {
	r := NewRouter()
	a, _ := r.Resolve("")
	b, _ := r.Resolve("")
	if a == "" || a == b {
		t.Fatalf("minted ids must be unique and non-empty: %q %q", a, b)
	}
}
