// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AnalyzeRequest is the JSON body accepted by the analyses endpoint.
// Empty text is valid and yields a minimal report.
type AnalyzeRequest struct {
	Text     string `json:"text" validate:"max=200000"`
	FileName string `json:"file_name,omitempty" validate:"omitempty,max=255"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// AnalysisSummary is the list view of a stored analysis.
type AnalysisSummary struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name,omitempty"`
	Hash       string    `json:"hash"`
	FinalScore float64   `json:"final_score"`
	CreatedAt  time.Time `json:"created_at"`
}

// StoredAnalysis is a persisted report with its identity.
type StoredAnalysis struct {
	AnalysisSummary
	Report *AnalysisReport `json:"report"`
}
