package config

// providerModels maps each provider to the model used when none is configured.
var providerModels = map[ProviderType]string{
	ProviderGoogle:     "gemini-2.5-pro",
	ProviderOpenAI:     "gpt-4o",
	ProviderAnthropic:  "claude-sonnet-4-5-20250929",
	ProviderOllama:     "llama3",
	ProviderOpenRouter: "google/gemini-2.5-pro",
	ProviderMiniMax:    "MiniMax-M2.5",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:  ProviderGoogle,
		Model:     providerModels[ProviderGoogle],
		MaxTokens: 16384,
		Language:  "zh",
		Storage: StorageConfig{
			Backend:     StorageSQLite,
			Path:        ".layoutgen/layoutgen.db",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "layoutgen:",
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Notify: NotifyConfig{
			TimeoutSeconds: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultModel returns the default model for the given provider.
// Falls back to the Google default for unknown providers.
func DefaultModel(provider ProviderType) string {
	if m, ok := providerModels[provider]; ok {
		return m
	}
	return providerModels[ProviderGoogle]
}
