package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/kdduha/gemini-studio/internal/models"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Server    ServerConfig
	Provider  string `env:"MODEL_PROVIDER" envDefault:"gemini"`
	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	RateLimit RateLimitConfig
	Session   SessionConfig
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	Timeout         time.Duration `env:"SERVER_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"50"`
	MaxUploadBytes  int64         `env:"SERVER_MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// GeminiConfig holds one model identifier shared by chat, text and vision
// calls, and a separate one for embeddings.
type GeminiConfig struct {
	APIKey         string `env:"GOOGLE_API_KEY"`
	Model          string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	EmbeddingModel string `env:"GEMINI_EMBEDDING_MODEL" envDefault:"embedding-001"`
}

type OpenAIConfig struct {
	APIKey         string `env:"OPENAI_API_KEY"`
	BaseURL        string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	Model          string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	EmbeddingModel string `env:"OPENAI_EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
}

// RateLimitConfig throttles outgoing model calls. Zero RPS disables it.
type RateLimitConfig struct {
	RPS   float64 `env:"MODEL_RATE_LIMIT" envDefault:"0"`
	Burst int     `env:"MODEL_RATE_BURST" envDefault:"1"`
}

type SessionConfig struct {
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieName string        `env:"SESSION_COOKIE" envDefault:"gemini_session"`
}

// Load reads the optional dotenv files (".env" when none are given) and then
// the process environment. A missing credential for the selected provider is
// reported as a config_missing error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return models.NewError(models.KindConfigMissing, "config",
				"API key is missing. Please set GOOGLE_API_KEY in .env file.")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return models.NewError(models.KindConfigMissing, "config",
				"API key is missing. Please set OPENAI_API_KEY in .env file.")
		}
	default:
		return fmt.Errorf("unsupported MODEL_PROVIDER {%s}", c.Provider)
	}

	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("MODEL_RATE_LIMIT must not be negative")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("SERVER_MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}
