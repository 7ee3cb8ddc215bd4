package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// newTestLimiter returns a limiter whose clock only moves when advance is called.
func newTestLimiter(config *Config) (*Limiter, func(time.Duration)) {
	limiter := NewLimiter(config)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	limiter.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return clock
	}
	advance := func(d time.Duration) {
		mu.Lock()
		clock = clock.Add(d)
		mu.Unlock()
	}
	return limiter, advance
}

func TestLimiter_Allow(t *testing.T) {
	config := &Config{
		Enabled:      true,
		DefaultRate:  1,
		DefaultBurst: 10,
	}
	limiter, _ := newTestLimiter(config)
	defer limiter.Stop()

	// Should allow requests up to burst
	for i := 0; i < 10; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/analyses", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", rateInfo.Limit)
		}
		if rateInfo.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, rateInfo.Remaining)
		}
	}

	// 11th request should be denied
	allowed, rateInfo := limiter.Allow("127.0.0.1", "/analyses", "GET")
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if rateInfo.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", rateInfo.Remaining)
	}
	if rateInfo.RetryAfter <= 0 || rateInfo.RetryAfter > time.Second {
		t.Errorf("Expected retry after in (0, 1s], got %v", rateInfo.RetryAfter)
	}
}

func TestLimiter_Refill(t *testing.T) {
	config := &Config{Enabled: true, DefaultRate: 1, DefaultBurst: 2}
	limiter, advance := newTestLimiter(config)
	defer limiter.Stop()

	limiter.Allow("c", "/x", "GET")
	limiter.Allow("c", "/x", "GET")
	if allowed, _ := limiter.Allow("c", "/x", "GET"); allowed {
		t.Fatal("Expected bucket to be empty")
	}

	advance(time.Second)

	if allowed, _ := limiter.Allow("c", "/x", "GET"); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
	if allowed, _ := limiter.Allow("c", "/x", "GET"); allowed {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestLimiter_DeniedRequestDoesNotConsume(t *testing.T) {
	config := &Config{Enabled: true, DefaultRate: 1, DefaultBurst: 1}
	limiter, advance := newTestLimiter(config)
	defer limiter.Stop()

	limiter.Allow("c", "/x", "GET")
	for i := 0; i < 5; i++ {
		limiter.Allow("c", "/x", "GET")
	}

	advance(time.Second)
	if allowed, _ := limiter.Allow("c", "/x", "GET"); !allowed {
		t.Error("Expected denied requests not to push the next token further out")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	config := &Config{
		Enabled:      true,
		DefaultRate:  1,
		DefaultBurst: 1,
		Whitelist:    map[string]bool{"127.0.0.1": true},
	}
	limiter, _ := newTestLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/test", "GET")
		if !allowed {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 for whitelisted, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	config := &Config{
		Enabled:      true,
		DefaultRate:  1000,
		DefaultBurst: 1000,
		Blacklist:    map[string]bool{"192.168.1.1": true},
	}
	limiter, _ := newTestLimiter(config)
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("192.168.1.1", "/test", "GET"); allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/test", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed when disabled", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 when disabled, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter, _ := newTestLimiter(NewConfig(0.5, 2, "", ""))
	defer limiter.Stop()

	clientID := "127.0.0.1"
	for i := 0; i < 2; i++ {
		if allowed, _ := limiter.Allow(clientID, "/analyses", "POST"); !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}

	allowed, rateInfo := limiter.Allow(clientID, "/analyses", "POST")
	if allowed {
		t.Error("Expected 3rd analysis to be denied")
	}
	if rateInfo.Limit != 2 {
		t.Errorf("Expected limit 2, got %d", rateInfo.Limit)
	}
	if rateInfo.RetryAfter != 2*time.Second {
		t.Errorf("Expected retry after 2s, got %v", rateInfo.RetryAfter)
	}

	// Reads use the default bucket
	allowed, rateInfo = limiter.Allow(clientID, "/analyses", "GET")
	if !allowed {
		t.Error("Expected GET to be allowed")
	}
	if rateInfo.Limit != 2*readMultiplier {
		t.Errorf("Expected limit %d, got %d", 2*readMultiplier, rateInfo.Limit)
	}
}

func TestLimiter_HealthAndMetricsUnlimited(t *testing.T) {
	limiter, _ := newTestLimiter(NewConfig(1, 1, "", ""))
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		if allowed, _ := limiter.Allow("c", "/health", "GET"); !allowed {
			t.Fatalf("Expected health check %d to be allowed", i+1)
		}
		if allowed, _ := limiter.Allow("c", "/metrics", "GET"); !allowed {
			t.Fatalf("Expected metrics scrape %d to be allowed", i+1)
		}
	}
}

func TestLimiter_DifferentClients(t *testing.T) {
	config := &Config{Enabled: true, DefaultRate: 1, DefaultBurst: 5}
	limiter, _ := newTestLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		limiter.Allow("client1", "/test", "GET")
	}
	if allowed, _ := limiter.Allow("client1", "/test", "GET"); allowed {
		t.Error("Expected client1 to be denied")
	}
	if allowed, _ := limiter.Allow("client2", "/test", "GET"); !allowed {
		t.Error("Expected client2 to be allowed")
	}
}

func TestLimiter_DefaultBucketSharedAcrossPaths(t *testing.T) {
	config := &Config{Enabled: true, DefaultRate: 1, DefaultBurst: 2}
	limiter, _ := newTestLimiter(config)
	defer limiter.Stop()

	limiter.Allow("c", "/analyses/a", "GET")
	limiter.Allow("c", "/analyses/b", "GET")
	if allowed, _ := limiter.Allow("c", "/analyses/c", "GET"); allowed {
		t.Error("Expected distinct IDs to share one bucket")
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	config := &Config{Enabled: true, DefaultRate: 1, DefaultBurst: 1, IdleTTL: time.Minute}
	limiter, advance := newTestLimiter(config)
	defer limiter.Stop()

	limiter.Allow("old", "/x", "GET")
	advance(2 * time.Minute)
	limiter.Allow("new", "/x", "GET")

	limiter.evictIdle()
	if got := limiter.size(); got != 1 {
		t.Errorf("Expected 1 bucket after eviction, got %d", got)
	}
}

func TestLimiter_Concurrency(t *testing.T) {
	config := &Config{Enabled: true, DefaultRate: 1, DefaultBurst: 100}
	limiter, _ := newTestLimiter(config)
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if allowed, _ := limiter.Allow("c", fmt.Sprintf("/x?%d", i), "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected exactly 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_StopTwice(_ *testing.T) {
	limiter := NewLimiter(NewConfig(1, 1, "", ""))
	limiter.Stop()
	limiter.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/analyses", Method: "POST", Rate: 1},
		{Path: "/admin/", Method: "GET", Rate: 2},
	}

	tests := []struct {
		path, method string
		wantRate     float64
		wantNil      bool
	}{
		{"/analyses", "POST", 1, false},
		{"/analyses", "GET", 0, true},
		{"/admin/users", "GET", 2, false},
		{"/other", "GET", 0, true},
	}
	for _, tt := range tests {
		got := MatchEndpoint(tt.path, tt.method, configs)
		if tt.wantNil {
			if got != nil {
				t.Errorf("%s %s: expected no match, got %+v", tt.method, tt.path, got)
			}
			continue
		}
		if got == nil || got.Rate != tt.wantRate {
			t.Errorf("%s %s: expected rate %v, got %+v", tt.method, tt.path, tt.wantRate, got)
		}
	}
}

func TestParseIPList(t *testing.T) {
	got := ParseIPList(" 10.0.0.1, ,10.0.0.2 ")
	if len(got) != 2 || !got["10.0.0.1"] || !got["10.0.0.2"] {
		t.Errorf("unexpected IP set: %v", got)
	}
	if len(ParseIPList("")) != 0 {
		t.Error("Expected empty set for empty list")
	}
}

func TestNewConfig_ClientLists(t *testing.T) {
	limiter, _ := newTestLimiter(NewConfig(0.01, 1, "10.0.0.1", "10.0.0.9"))
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		if allowed, _ := limiter.Allow("10.0.0.1", "/analyses", "POST"); !allowed {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
	}
	if allowed, _ := limiter.Allow("10.0.0.9", "/analyses", "POST"); allowed {
		t.Error("Expected blacklisted request to be denied")
	}
	if allowed, _ := limiter.Allow("10.0.0.5", "/analyses", "POST"); !allowed {
		t.Error("Expected first request from an unlisted client to be allowed")
	}
}
