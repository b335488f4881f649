package config

import (
	"cmp"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	ProviderOpenAI   = "openai"
	ProviderGrok     = "grok"
	ProviderKimi     = "kimi"
	ProviderMoonshot = "moonshot"
	ProviderGemini   = "gemini"
)

// LocalBaseURL is used when no OpenAI key is configured, for LM Studio and friends.
const LocalBaseURL = "http://localhost:1234/v1"

type Config struct {
	Addr           string
	LogLevel       log.Level
	RequestTimeout time.Duration
	PromptsDir     string

	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Addr:       ":" + cmp.Or(os.Getenv("PORT"), "8080"),
		PromptsDir: os.Getenv("PROMPTS_DIR"),
		Provider:   strings.ToLower(cmp.Or(os.Getenv("LLM_PROVIDER"), ProviderOpenAI)),
	}

	level, err := log.ParseLevel(cmp.Or(os.Getenv("LOG_LEVEL"), "info"))
	if err != nil {
		return cfg, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.RequestTimeout = 60 * time.Second
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			// plain seconds are accepted too
			secs, convErr := strconv.Atoi(v)
			if convErr != nil {
				return cfg, fmt.Errorf("REQUEST_TIMEOUT: %w", err)
			}
			d = time.Duration(secs) * time.Second
		}
		if d <= 0 {
			return cfg, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", v)
		}
		cfg.RequestTimeout = d
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		cfg.Model = cmp.Or(os.Getenv("OPENAI_MODEL"), "gpt-4o-mini")
		cfg.BaseURL = os.Getenv("OPENAI_BASE_URL")
		if cfg.APIKey == "" && cfg.BaseURL == "" {
			cfg.BaseURL = LocalBaseURL
			cfg.Model = os.Getenv("OPENAI_MODEL")
		}
	case ProviderGrok, ProviderKimi, ProviderMoonshot, ProviderGemini:
		prefix := strings.ToUpper(cfg.Provider)
		cfg.APIKey = os.Getenv(prefix + "_API_KEY")
		cfg.Model = os.Getenv(prefix + "_MODEL")
		if cfg.APIKey == "" {
			return cfg, fmt.Errorf("%s_API_KEY is required for provider %q", prefix, cfg.Provider)
		}
	default:
		return cfg, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}

	return cfg, nil
}
