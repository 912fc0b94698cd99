package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	LLM      LLMConfig      `yaml:"llm"`
	Reports  ReportsConfig  `yaml:"reports"`
	Briefing BriefingConfig `yaml:"briefing"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey      string  `yaml:"apiKey"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// ReportsConfig points at the public avalanche center field-report API.
type ReportsConfig struct {
	APIBaseURL string        `yaml:"apiBaseUrl"`
	Timeout    time.Duration `yaml:"timeout"`
}

// BriefingConfig controls the daily briefing domain.
type BriefingConfig struct {
	Prompt          string        `yaml:"prompt"`
	ChatPrompt      string        `yaml:"chatPrompt"`
	CacheTTL        time.Duration `yaml:"cacheTtl"`
	MaxPromptTokens int           `yaml:"maxPromptTokens"`
	Valkey          ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the summary cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("REPORTS_API_BASE_URL"); v != "" {
		cfg.Reports.APIBaseURL = v
	}
	if v := os.Getenv("REPORTS_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Reports.Timeout = parsed
		}
	}
	if v := os.Getenv("BRIEFING_PROMPT"); v != "" {
		cfg.Briefing.Prompt = v
	}
	if v := os.Getenv("BRIEFING_CHAT_PROMPT"); v != "" {
		cfg.Briefing.ChatPrompt = v
	}
	if v := os.Getenv("BRIEFING_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Briefing.CacheTTL = parsed
		}
	}
	if v := os.Getenv("BRIEFING_MAX_PROMPT_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Briefing.MaxPromptTokens = parsed
		}
	}
	if v := os.Getenv("BRIEFING_VALKEY_ENABLED"); v != "" {
		cfg.Briefing.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("BRIEFING_VALKEY_ADDR"); v != "" {
		cfg.Briefing.Valkey.Addr = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:     ":8080",
			ReadTimeout: 5 * time.Second,
			// Zero keeps the server from cutting off long-lived SSE streams.
			WriteTimeout: 0,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
		},
		Reports: ReportsConfig{
			APIBaseURL: "https://avalanche.state.co.us/api-proxy/avid",
			Timeout:    15 * time.Second,
		},
		Briefing: BriefingConfig{
			Prompt:          "You are an avalanche forecaster's assistant. Summarize the day's field reports for backcountry travelers: lead with observed avalanche activity, then snowpack instability signs, then weather. Be factual and concise; never invent observations that are not in the data.",
			ChatPrompt:      "You are an avalanche forecaster's assistant answering follow-up questions about today's field reports. Answer only from the provided reports and aggregates; say so when the data does not cover the question.",
			CacheTTL:        30 * time.Minute,
			MaxPromptTokens: 6000,
			Valkey: ValkeyConfig{
				Enabled: false,
				Addr:    "",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Reports.APIBaseURL == "" {
		return errors.New("reports.apiBaseUrl cannot be empty")
	}
	if c.Reports.Timeout <= 0 {
		return errors.New("reports.timeout must be positive")
	}
	if c.Briefing.Prompt == "" {
		return errors.New("briefing.prompt cannot be empty")
	}
	if c.Briefing.CacheTTL < 0 {
		return errors.New("briefing.cacheTtl cannot be negative")
	}
	if c.Briefing.MaxPromptTokens <= 0 {
		return errors.New("briefing.maxPromptTokens must be positive")
	}
	if c.Briefing.Valkey.Enabled && strings.TrimSpace(c.Briefing.Valkey.Addr) == "" {
		return errors.New("briefing.valkey.addr cannot be empty when the valkey cache is enabled")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
