package factory

import (
	"fmt"

	"stylista-be/pkg/llm"
	"stylista-be/pkg/llm/huggingface"
	"stylista-be/pkg/llm/ollama"
	"stylista-be/pkg/llm/openai"
)

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openai", "groq", "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm provider %q requires an api key", cfg.Provider)
		}
		return openai.NewProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
