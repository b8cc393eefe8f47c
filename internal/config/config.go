package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI    LLMProvider = "openai"
	ProviderYandex    LLMProvider = "yandex"
	ProviderWorkersAI LLMProvider = "workersai"
)

type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	// LLM settings
	LLMProvider LLMProvider `env:"LLM_PROVIDER" envDefault:"workersai"`
	ModelID     string      `env:"MODEL_ID"`

	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL       string `env:"OPENAI_BASE_URL"`
	YandexOAuthToken    string `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID      string `env:"YANDEX_FOLDER_ID"`
	CloudflareAccountID string `env:"CLOUDFLARE_ACCOUNT_ID"`
	CloudflareAPIToken  string `env:"CLOUDFLARE_API_TOKEN"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Prompts
	SystemPromptPath string `env:"SYSTEM_PROMPT_PATH"`

	// Storage. Empty DATA_DIR keeps sessions in memory only.
	DataDir string `env:"DATA_DIR" envDefault:"data/sessions"`

	// Model call hardening
	ModelTimeout time.Duration `env:"MODEL_TIMEOUT" envDefault:"60s"`

	// Transcript compaction. TRANSCRIPT_MAX_MESSAGES=0 disables the sweep.
	TranscriptMaxMessages  int    `env:"TRANSCRIPT_MAX_MESSAGES" envDefault:"200"`
	TranscriptKeepMessages int    `env:"TRANSCRIPT_KEEP_MESSAGES" envDefault:"100"`
	CompactSchedule        string `env:"COMPACT_SCHEDULE" envDefault:"@hourly"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
