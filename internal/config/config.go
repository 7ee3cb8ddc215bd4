// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RESUME_LOG_LEVEL.
const EnvPrefix = "RESUME"

// Config holds every tunable setting. Values come from defaults, then an
// optional JSON or YAML file, then RESUME_* environment variables.
type Config struct {
	// Logging
	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=json console"`

	// Grammar
	LanguageToolURL string `mapstructure:"languagetool_url" validate:"omitempty,url"`
	Language        string `mapstructure:"language" validate:"required"`
	SkipGrammar     bool   `mapstructure:"skip_grammar"`

	// Links
	SkipLinks        bool          `mapstructure:"skip_links"`
	ProbeTimeout     time.Duration `mapstructure:"probe_timeout" validate:"gt=0"`
	ProbeConcurrency int           `mapstructure:"probe_concurrency" validate:"min=1,max=64"`
	RedisURL         string        `mapstructure:"redis_url" validate:"omitempty,url"`
	ProbeCacheTTL    time.Duration `mapstructure:"probe_cache_ttl" validate:"gte=0"`

	// Persistence and API
	DatabaseURL string  `mapstructure:"database_url"`
	Port        int     `mapstructure:"port" validate:"min=1,max=65535"`
	RateLimit   float64 `mapstructure:"rate_limit" validate:"gte=0"` // requests per second per client; 0 disables
	RateBurst   int     `mapstructure:"rate_burst" validate:"gte=0"`

	// Comma-separated client IPs that bypass or are refused by the rate limiter.
	RateLimitWhitelist string `mapstructure:"rate_limit_whitelist"`
	RateLimitBlacklist string `mapstructure:"rate_limit_blacklist"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		LogLevel:         "info",
		LogFormat:        "console",
		LanguageToolURL:  "https://api.languagetool.org",
		Language:         "en-US",
		ProbeTimeout:     5 * time.Second,
		ProbeConcurrency: 4,
		ProbeCacheTTL:    6 * time.Hour,
		Port:             8080,
		RateLimit:        5,
		RateBurst:        10,
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("languagetool_url", d.LanguageToolURL)
	v.SetDefault("language", d.Language)
	v.SetDefault("skip_grammar", d.SkipGrammar)
	v.SetDefault("skip_links", d.SkipLinks)
	v.SetDefault("probe_timeout", d.ProbeTimeout)
	v.SetDefault("probe_concurrency", d.ProbeConcurrency)
	v.SetDefault("redis_url", d.RedisURL)
	v.SetDefault("probe_cache_ttl", d.ProbeCacheTTL)
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("port", d.Port)
	v.SetDefault("rate_limit", d.RateLimit)
	v.SetDefault("rate_burst", d.RateBurst)
	v.SetDefault("rate_limit_whitelist", d.RateLimitWhitelist)
	v.SetDefault("rate_limit_blacklist", d.RateLimitBlacklist)
}

// Load builds a Config. path is an optional JSON or YAML file; an empty
// path uses defaults and the environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and formats.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config error: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("'%s' failed '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}

// GrammarEnabled reports whether a grammar service should be called.
func (c *Config) GrammarEnabled() bool {
	return !c.SkipGrammar && c.LanguageToolURL != ""
}
