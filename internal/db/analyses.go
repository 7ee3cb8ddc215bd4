package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// List limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ListOptions pages through stored analyses, newest first.
type ListOptions struct {
	Limit  int
	Offset int
}

// normalized clamps Limit to (0, MaxListLimit] and Offset to >= 0.
func (o ListOptions) normalized() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultListLimit
	}
	if o.Limit > MaxListLimit {
		o.Limit = MaxListLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

// SaveAnalysis stores a report and returns its summary with the new ID
func (db *DB) SaveAnalysis(ctx context.Context, report *types.AnalysisReport) (*types.AnalysisSummary, error) {
	if report == nil {
		return nil, fmt.Errorf("report is nil")
	}
	content, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	summary := types.AnalysisSummary{
		ID:         uuid.New(),
		FileName:   report.Source.FileName,
		Hash:       report.Source.Hash,
		FinalScore: report.FinalScore,
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO analyses (id, file_name, text_hash, final_score, report)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		summary.ID, summary.FileName, summary.Hash, summary.FinalScore, content,
	).Scan(&summary.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return &summary, nil
}

// GetAnalysis retrieves a stored analysis by ID. Returns nil, nil when not found.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*types.StoredAnalysis, error) {
	var stored types.StoredAnalysis
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, file_name, text_hash, final_score, created_at, report
		 FROM analyses WHERE id = $1`,
		id,
	).Scan(&stored.ID, &stored.FileName, &stored.Hash, &stored.FinalScore, &stored.CreatedAt, &content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	var report types.AnalysisReport
	if err := json.Unmarshal(content, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	stored.Report = &report
	return &stored, nil
}

// ListAnalyses returns analysis summaries, newest first
func (db *DB) ListAnalyses(ctx context.Context, opts ListOptions) ([]types.AnalysisSummary, error) {
	opts = opts.normalized()
	rows, err := db.pool.Query(ctx,
		`SELECT id, file_name, text_hash, final_score, created_at
		 FROM analyses ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	summaries := []types.AnalysisSummary{}
	for rows.Next() {
		var s types.AnalysisSummary
		if err := rows.Scan(&s.ID, &s.FileName, &s.Hash, &s.FinalScore, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return summaries, nil
}

// DeleteAnalysis removes a stored analysis. Returns false when nothing was deleted.
func (db *DB) DeleteAnalysis(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete analysis: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
