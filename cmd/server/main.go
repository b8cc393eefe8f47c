package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"dispute-assistant/internal/chat"
	"dispute-assistant/internal/config"
	"dispute-assistant/internal/llm"
	"dispute-assistant/internal/scheduler"
	"dispute-assistant/internal/session"
	"dispute-assistant/internal/storage"
	"dispute-assistant/internal/web"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	llmClient, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider), cfg.ModelID)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	var store storage.Store
	if cfg.DataDir != "" {
		fs, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("failed to init session store: %v", err)
		}
		store = fs
	} else {
		log.Printf("DATA_DIR is empty, sessions will not survive a restart")
		store = storage.NewMemoryStore()
	}

	gateway := chat.NewGateway(llmClient, readSystemPrompt(cfg.SystemPromptPath), cfg.ModelTimeout)
	svc := chat.NewService(store, gateway, session.NewSummarizer())

	sched := scheduler.New(func(ctx context.Context) error {
		return svc.Compact(ctx, cfg.TranscriptMaxMessages, cfg.TranscriptKeepMessages)
	})
	if cfg.TranscriptMaxMessages > 0 {
		if err := sched.Start(cfg.CompactSchedule); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
	}

	srv := web.NewServer(svc, chat.NewRouter(), cfg.Addr)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		sched.Stop()
		if err := srv.Stop(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}

func readSystemPrompt(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("system prompt file not found or unreadable at %s: %v", path, err)
		return ""
	}
	return string(data)
}
