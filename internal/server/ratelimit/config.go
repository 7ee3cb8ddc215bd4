package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string  // exact path, or a prefix when it ends with "/"
	Method string  // HTTP method (GET, POST, etc.)
	Rate   float64 // tokens per second; <= 0 means unlimited
	Burst  int     // bucket capacity (defaults to Rate rounded down, at least 1)
}

// Unlimited reports whether the endpoint bypasses limiting.
func (e *EndpointConfig) Unlimited() bool {
	return e.Rate <= 0
}

// key groups requests sharing a bucket: one per rule, and one for the default.
func (e *EndpointConfig) key() string {
	if e.Path == "" {
		return "*"
	}
	return e.Path
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultRate     float64
	DefaultBurst    int
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Read routes get this multiple of the analysis rate.
const readMultiplier = 4

// NewConfig builds a configuration where POST /analyses gets perSecond
// requests per second with the given burst, and other routes get a
// larger allowance. perSecond <= 0 disables limiting. whitelist and
// blacklist are comma-separated client IPs (see ParseIPList).
func NewConfig(perSecond float64, burst int, whitelist, blacklist string) *Config {
	if perSecond <= 0 {
		return &Config{}
	}
	return &Config{
		Enabled:         true,
		DefaultRate:     perSecond * readMultiplier,
		DefaultBurst:    burst * readMultiplier,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       ParseIPList(whitelist),
		Blacklist:       ParseIPList(blacklist),
		EndpointConfigs: DefaultEndpointConfigs(perSecond, burst),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific configurations.
// Analysis is the expensive route; health and metrics are never limited.
func DefaultEndpointConfigs(perSecond float64, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/analyses", Method: http.MethodPost, Rate: perSecond, Burst: burst},
		{Path: "/health", Method: http.MethodGet},
		{Path: "/metrics", Method: http.MethodGet},
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a set.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
