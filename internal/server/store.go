package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Store persists analysis reports. *db.DB satisfies it.
type Store interface {
	SaveAnalysis(ctx context.Context, report *types.AnalysisReport) (*types.AnalysisSummary, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*types.StoredAnalysis, error)
	ListAnalyses(ctx context.Context, opts db.ListOptions) ([]types.AnalysisSummary, error)
	DeleteAnalysis(ctx context.Context, id uuid.UUID) (bool, error)
	Ping(ctx context.Context) error
}

var _ Store = (*db.DB)(nil)
