// Package config handles application configuration from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server     ServerConfig    `yaml:"server"`
	Database   DatabaseConfig  `yaml:"database"`
	LLM        LLMConfig       `yaml:"llm"`
	Google     GoogleConfig    `yaml:"google"`
	Search     SearchConfig    `yaml:"search_sources"`
	Telegram   TelegramConfig  `yaml:"telegram"`
	RateLimits RateLimitConfig `yaml:"rate_limits"`
	Logging    LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, gemini, ollama
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	OllamaURL string `yaml:"ollama_url"`
}

// GoogleConfig carries the credentials for the evidence-gathering APIs.
type GoogleConfig struct {
	FactCheckAPIKey string `yaml:"fact_check_api_key"`
	SearchAPIKey    string `yaml:"search_api_key"`
	SearchEngineID  string `yaml:"search_engine_id"`
}

type SearchConfig struct {
	Google     bool `yaml:"google"`
	DuckDuckGo bool `yaml:"duckduckgo"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"default_requests_per_minute"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Path: "./data/factcheckit.db",
		},
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash",
		},
		Search: SearchConfig{
			Google:     true,
			DuckDuckGo: true,
		},
		RateLimits: RateLimitConfig{
			RequestsPerMinute: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run with --generate-config to create one)", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Interpolate environment variables
	content := interpolateEnvVars(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// GenerateSample creates a sample configuration file.
func GenerateSample(path string) error {
	sample := `# FactCheckit Configuration
# See documentation for all options

server:
  port: 8080

database:
  path: ./data/factcheckit.db

llm:
  provider: gemini  # openai, anthropic, gemini, ollama
  model: gemini-2.5-flash
  api_key: ${GEMINI_API_KEY}

  # For OpenAI:
  # provider: openai
  # model: gpt-4o-mini
  # api_key: ${OPENAI_API_KEY}

  # For Anthropic Claude:
  # provider: anthropic
  # model: claude-3-haiku-20240307
  # api_key: ${ANTHROPIC_API_KEY}

  # For Ollama (local):
  # provider: ollama
  # model: llama3
  # ollama_url: http://localhost:11434

google:
  fact_check_api_key: ${GOOGLE_FACT_CHECK_API_KEY}
  search_api_key: ${GOOGLE_SEARCH_API_KEY}
  search_engine_id: ${GOOGLE_SEARCH_ENGINE_ID}

search_sources:
  google: true
  duckduckgo: true  # keyless fallback when Google search is unavailable

telegram:
  enabled: false
  bot_token: ${TELEGRAM_BOT_TOKEN}

rate_limits:
  default_requests_per_minute: 60

logging:
  level: info  # debug, info, warn, error
  format: json # json or text
`
	return os.WriteFile(path, []byte(sample), 0644)
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	validProviders := map[string]bool{"openai": true, "anthropic": true, "gemini": true, "ollama": true}
	if !validProviders[c.LLM.Provider] {
		return fmt.Errorf("unsupported LLM provider: %s", c.LLM.Provider)
	}

	// Validate API key requirements
	switch c.LLM.Provider {
	case "openai":
		if c.LLM.APIKey == "" {
			return fmt.Errorf("OpenAI API key is required")
		}
	case "anthropic":
		if c.LLM.APIKey == "" {
			return fmt.Errorf("Anthropic API key is required")
		}
	case "gemini":
		if c.LLM.APIKey == "" {
			return fmt.Errorf("Gemini API key is required")
		}
	}

	if c.Telegram.Enabled && c.Telegram.BotToken == "" {
		return fmt.Errorf("Telegram bot token is required when the bot is enabled")
	}

	return nil
}

// interpolateEnvVars replaces ${VAR_NAME} with environment variable values.
func interpolateEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}"), "${")
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match // Keep original if not set
	})
}
