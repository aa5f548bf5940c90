package provider

// NewProvider creates a backend from configuration. This is the only place
// a backend gets constructed; the returned Provider is bound to a session
// for the session's whole lifetime.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Type {
	case TypeAnthropic:
		return NewAnthropicProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.MaxOutputTokens)
	case TypeDeepSeek:
		return NewDeepSeekProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.MaxOutputTokens)
	case TypeOpenRouter:
		return NewOpenRouterProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.MaxOutputTokens)
	case TypeOllama:
		return NewOllamaProvider(cfg.BaseURL, cfg.Model)
	default:
		// Unrecognized names fall back to the generic OpenAI-compatible
		// backend using the configured base URL.
		return NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.MaxOutputTokens)
	}
}

// MapProviderIDToType converts a user-facing provider name from the config
// file into a backend Type. Unknown names map to TypeOpenAI so that any
// OpenAI-compatible gateway works by just setting base_url.
func MapProviderIDToType(id string) Type {
	switch id {
	case "anthropic":
		return TypeAnthropic
	case "deepseek":
		return TypeDeepSeek
	case "openrouter":
		return TypeOpenRouter
	case "ollama":
		return TypeOllama
	case "openai":
		return TypeOpenAI
	default:
		return TypeOpenAI
	}
}
