package fetch

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultProbeTimeout bounds a single reachability probe.
	DefaultProbeTimeout = 5 * time.Second
	// DefaultProbeConcurrency is the number of links probed at once.
	DefaultProbeConcurrency = 4
)

// Prober reports whether a URL answers with a non-error status.
// Implementations never return errors; any failure means unreachable.
type Prober interface {
	Reachable(ctx context.Context, url string) bool
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, url string) bool

// Reachable calls f(ctx, url).
func (f ProberFunc) Reachable(ctx context.Context, url string) bool {
	return f(ctx, url)
}

// HTTPProber issues HEAD requests, following redirects.
type HTTPProber struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// NewHTTPProber creates an HTTPProber with the given per-probe timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &HTTPProber{
		client:    &http.Client{},
		timeout:   timeout,
		userAgent: DefaultUserAgent,
	}
}

// Reachable returns true when the URL responds with a status below 400.
// URLs without a scheme are probed over https.
func (p *HTTPProber) Reachable(ctx context.Context, rawURL string) bool {
	if !strings.HasPrefix(rawURL, "http") {
		rawURL = "https://" + rawURL
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode < http.StatusBadRequest
}

// ProbeAll probes every link with at most concurrency probes in flight and
// returns a url→reachable map. Duplicate links are probed once.
func ProbeAll(ctx context.Context, prober Prober, links []string, concurrency int) map[string]bool {
	results := make(map[string]bool, len(links))
	if prober == nil || len(links) == 0 {
		return results
	}
	if concurrency <= 0 {
		concurrency = DefaultProbeConcurrency
	}

	unique := make([]string, 0, len(links))
	seen := make(map[string]bool, len(links))
	for _, link := range links {
		if !seen[link] {
			seen[link] = true
			unique = append(unique, link)
		}
	}

	reachable := make([]bool, len(unique))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, link := range unique {
		g.Go(func() error {
			reachable[i] = prober.Reachable(ctx, link)
			return nil
		})
	}
	_ = g.Wait()

	for i, link := range unique {
		results[link] = reachable[i]
	}
	return results
}
