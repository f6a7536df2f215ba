package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderGoogle     ProviderType = "google"
	ProviderOpenAI     ProviderType = "openai"
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOllama     ProviderType = "ollama"
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderMiniMax    ProviderType = "minimax"
)

// StorageBackend selects where the job history and preferences live.
type StorageBackend string

const (
	StorageSQLite StorageBackend = "sqlite"
	StorageFile   StorageBackend = "file"
	StorageRedis  StorageBackend = "redis"
	StorageMemory StorageBackend = "memory"
)

// Config is the top-level layoutgen configuration, corresponding to .layoutgen.yml.
type Config struct {
	Provider        ProviderType  `yaml:"provider" koanf:"provider"`
	Model           string        `yaml:"model" koanf:"model"`
	MaxTokens       int           `yaml:"max_tokens" koanf:"max_tokens"`
	Language        string        `yaml:"language" koanf:"language"`
	InstructionsDir string        `yaml:"instructions_dir" koanf:"instructions_dir"`
	Storage         StorageConfig `yaml:"storage" koanf:"storage"`
	Server          ServerConfig  `yaml:"server" koanf:"server"`
	Notify          NotifyConfig  `yaml:"notify" koanf:"notify"`
	Log             LogConfig     `yaml:"log" koanf:"log"`
}

// StorageConfig configures the durable key-value store.
type StorageConfig struct {
	Backend       StorageBackend `yaml:"backend" koanf:"backend"`
	Path          string         `yaml:"path" koanf:"path"` // sqlite file or file-backend directory
	RedisAddr     string         `yaml:"redis_addr" koanf:"redis_addr"`
	RedisPassword string         `yaml:"redis_password" koanf:"redis_password"`
	RedisDB       int            `yaml:"redis_db" koanf:"redis_db"`
	RedisPrefix   string         `yaml:"redis_prefix" koanf:"redis_prefix"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// NotifyConfig configures the optional completion webhook.
type NotifyConfig struct {
	WebhookURL     string `yaml:"webhook_url" koanf:"webhook_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
