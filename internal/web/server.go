package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"dispute-assistant/internal/chat"
	"dispute-assistant/internal/session"
)

// sessionCookie carries the session identifier between requests. Minted
// identifiers are handed back path-scoped with a lax cross-site policy.
const sessionCookie = "cf_ai_session_id"

// Server is the HTTP boundary: the chat page, the chat API and the
// session-state diagnostic endpoint.
type Server struct {
	svc    *chat.Service
	router *chat.Router
	server *http.Server
	addr   string
}

func NewServer(svc *chat.Service, router *chat.Router, addr string) *Server {
	return &Server{svc: svc, router: router, addr: addr}
}

func (s *Server) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/", s.handleRoot)
	return mux
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.mux(),
		// Generous write timeout: the chat handler waits on the model call.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("starting dispute assistant web server on %s", s.addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body chatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	id, minted := s.router.Resolve(s.sessionToken(r))

	res, err := s.svc.Turn(r.Context(), id, body.Message)
	if errors.Is(err, session.ErrEmptyMessage) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Message is required"})
		return
	}
	if err != nil {
		log.Printf("chat turn failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to persist session"})
		return
	}

	if minted {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			SameSite: http.SameSiteLaxMode,
		})
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := s.sessionToken(r)
	if token == "" {
		// No credential means no session: null, not an error.
		writeJSON(w, http.StatusOK, (*session.State)(nil))
		return
	}

	state, err := s.svc.State(r.Context(), token)
	if err != nil {
		log.Printf("state lookup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load session"})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprint(w, indexHTML)
}

func (s *Server) sessionToken(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
