// Package grammar defines the grammar and spelling checker capability and its implementations.
package grammar

import (
	"context"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Checker finds grammar and spelling issues in text, in document order.
type Checker interface {
	Check(ctx context.Context, text string) ([]types.GrammarIssue, error)
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, text string) ([]types.GrammarIssue, error)

// Check calls f.
func (f CheckerFunc) Check(ctx context.Context, text string) ([]types.GrammarIssue, error) {
	return f(ctx, text)
}

// Noop reports no issues.
type Noop struct{}

// Check returns an empty list.
func (Noop) Check(context.Context, string) ([]types.GrammarIssue, error) {
	return nil, nil
}
