// Package config loads runtime configuration from the environment, with
// an optional YAML overlay for deployments that prefer files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Provider selects the LLM backend used for synthesis.
type Provider string

const (
	ProviderGoogleAI  Provider = "googleai"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderOllama    Provider = "ollama"
	ProviderBedrock   Provider = "bedrock"
)

// DefaultLLMModel is the synthesis model used when none is configured.
const DefaultLLMModel = "gemini-3-flash-preview"

// Config holds all configuration values.
type Config struct {
	// HTTP server
	ServerAddr  string   `yaml:"server_addr"`
	CORSOrigins []string `yaml:"cors_origins"`

	// SurrealDB connection
	SurrealDBURL       string `yaml:"surrealdb_url"`
	SurrealDBNamespace string `yaml:"surrealdb_namespace"`
	SurrealDBDatabase  string `yaml:"surrealdb_database"`
	SurrealDBUser      string `yaml:"surrealdb_user"`
	SurrealDBPass      string `yaml:"surrealdb_pass"`

	// LLM synthesis
	LLMProvider     Provider `yaml:"llm_provider"`
	LLMModel        string   `yaml:"llm_model"`
	GoogleAPIKey    string   `yaml:"google_api_key"`
	OpenAIAPIKey    string   `yaml:"openai_api_key"`
	AnthropicAPIKey string   `yaml:"anthropic_api_key"`
	OllamaHost      string   `yaml:"ollama_host"`

	// Search adapters
	TavilyAPIKey     string        `yaml:"tavily_api_key"`
	ProductHuntToken string        `yaml:"producthunt_token"`
	SerpAPIKey       string        `yaml:"serpapi_key"`
	SearchTimeout    time.Duration `yaml:"search_timeout"`
	TrendQueryDelay  time.Duration `yaml:"trend_query_delay"`

	// Logging
	LogFile  string     `yaml:"log_file"`
	LogLevel slog.Level `yaml:"-"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored if present, and WAYPOINT_CONFIG may point
// at a YAML file whose values take precedence over the environment.
func Load() (Config, error) {
	// Missing .env is the normal case in production.
	_ = godotenv.Load()

	cfg := Config{
		ServerAddr:  getEnv("WAYPOINT_ADDR", ":8000"),
		CORSOrigins: splitList(getEnv("WAYPOINT_CORS_ORIGINS", "*")),

		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "waypoint"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "analyses"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),

		LLMProvider:     Provider(getEnv("WAYPOINT_LLM_PROVIDER", string(ProviderGoogleAI))),
		LLMModel:        getEnv("WAYPOINT_LLM_MODEL", DefaultLLMModel),
		GoogleAPIKey:    getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),

		TavilyAPIKey:     os.Getenv("TAVILY_API_KEY"),
		ProductHuntToken: os.Getenv("PRODUCTHUNT_API_TOKEN"),
		SerpAPIKey:       os.Getenv("SERPAPI_KEY"),
		SearchTimeout:    getDuration("WAYPOINT_SEARCH_TIMEOUT", 30*time.Second),
		TrendQueryDelay:  getDuration("WAYPOINT_TREND_QUERY_DELAY", 2*time.Second),

		LogFile:  getEnv("WAYPOINT_LOG_FILE", "/tmp/waypoint.log"),
		LogLevel: parseLogLevel(getEnv("WAYPOINT_LOG_LEVEL", "INFO")),
	}

	if path := os.Getenv("WAYPOINT_CONFIG"); path != "" {
		if err := cfg.applyYAML(path); err != nil {
			return Config{}, err
		}
	}

	if !cfg.LLMProvider.valid() {
		return Config{}, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}

	return cfg, nil
}

// applyYAML overlays values from a YAML file onto the config.
func (c *Config) applyYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (p Provider) valid() bool {
	switch p {
	case ProviderGoogleAI, ProviderOpenAI, ProviderAnthropic, ProviderOllama, ProviderBedrock:
		return true
	}
	return false
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
