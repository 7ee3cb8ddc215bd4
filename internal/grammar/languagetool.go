package grammar

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// DefaultLanguageToolURL is the public LanguageTool endpoint.
	DefaultLanguageToolURL = "https://api.languagetool.org"
	// DefaultLanguage is the language code sent with every check.
	DefaultLanguage = "en-US"
	// DefaultTimeout bounds a single check request.
	DefaultTimeout = 20 * time.Second

	checkPath = "/v2/check"
)

// LanguageTool checks text against a LanguageTool server's HTTP API.
type LanguageTool struct {
	baseURL  string
	language string
	client   *http.Client
}

// LanguageToolOption configures a LanguageTool client.
type LanguageToolOption func(*LanguageTool)

// WithLanguage sets the language code (e.g. "en-GB").
func WithLanguage(lang string) LanguageToolOption {
	return func(lt *LanguageTool) { lt.language = lang }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) LanguageToolOption {
	return func(lt *LanguageTool) { lt.client = c }
}

// NewLanguageTool creates a client for the server at baseURL.
// An empty baseURL uses DefaultLanguageToolURL.
func NewLanguageTool(baseURL string, opts ...LanguageToolOption) *LanguageTool {
	if baseURL == "" {
		baseURL = DefaultLanguageToolURL
	}
	lt := &LanguageTool{
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: DefaultLanguage,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(lt)
	}
	return lt
}

type checkResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
	} `json:"matches"`
}

// Check posts text to /v2/check and converts every match into a GrammarIssue.
func (lt *LanguageTool) Check(ctx context.Context, text string) ([]types.GrammarIssue, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", lt.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lt.baseURL+checkPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &APICallError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := lt.client.Do(req)
	if err != nil {
		return nil, &APICallError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &APICallError{Message: "unexpected status", StatusCode: resp.StatusCode}
	}

	var body checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &ParseError{Message: "failed to decode check response", Cause: err}
	}

	issues := make([]types.GrammarIssue, 0, len(body.Matches))
	for _, m := range body.Matches {
		replacements := make([]string, 0, len(m.Replacements))
		for _, r := range m.Replacements {
			replacements = append(replacements, r.Value)
		}
		issues = append(issues, types.GrammarIssue{
			Message:      m.Message,
			Offset:       m.Offset,
			Length:       m.Length,
			Replacements: replacements,
		})
	}
	return issues, nil
}
