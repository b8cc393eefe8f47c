package llm

import (
	"fmt"
	"strings"

	"dispute-assistant/internal/config"
)

const (
	ProviderOpenAI    = "openai"
	ProviderYandex    = "yandex"
	ProviderWorkersAI = "workersai"
)

// Factory creates LLM clients with consistent logic
type Factory struct {
	OpenaiAPIKey        string
	OpenaiBaseURL       string
	OpenRouterReferrer  string
	OpenRouterTitle     string
	YandexOAuthToken    string
	YandexFolderID      string
	CloudflareAccountID string
	CloudflareAPIToken  string
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		OpenaiAPIKey:        cfg.OpenAIAPIKey,
		OpenaiBaseURL:       cfg.OpenAIBaseURL,
		OpenRouterReferrer:  cfg.OpenRouterReferrer,
		OpenRouterTitle:     cfg.OpenRouterTitle,
		YandexOAuthToken:    cfg.YandexOAuthToken,
		YandexFolderID:      cfg.YandexFolderID,
		CloudflareAccountID: cfg.CloudflareAccountID,
		CloudflareAPIToken:  cfg.CloudflareAPIToken,
	}
}

func (f *Factory) CreateClient(provider, model string) (Client, error) {
	if model == "" {
		model = DefaultModel
	}
	switch strings.ToLower(provider) {
	case ProviderOpenAI:
		return NewOpenAI(f.OpenaiAPIKey, f.OpenaiBaseURL, model, f.OpenRouterReferrer, f.OpenRouterTitle), nil
	case ProviderYandex:
		return NewYandex(f.YandexOAuthToken, f.YandexFolderID)
	case ProviderWorkersAI:
		return NewWorkersAI(f.CloudflareAccountID, f.CloudflareAPIToken, model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
