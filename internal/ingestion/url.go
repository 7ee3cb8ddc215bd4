package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// IngestFromURL fetches an online résumé page and returns its main text.
// Plain-text responses are returned as-is; HTML is reduced with the default content selectors.
func IngestFromURL(ctx context.Context, urlStr string, opts *fetch.Options) (string, error) {
	result, err := fetch.URL(ctx, urlStr, opts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	if strings.HasPrefix(result.ContentType, "text/plain") {
		return result.HTML, nil
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.DefaultTextSelectors())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	return text, nil
}
