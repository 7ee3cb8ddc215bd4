package scoring

import (
	"math"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Grammar penalty settings. Issues up to GrammarTolerance are free.
const (
	GrammarTolerance       = 10
	GrammarPenaltyPerIssue = 0.2
)

// GrammarPenalty returns the amount subtracted for issueCount grammar issues.
func GrammarPenalty(issueCount int) float64 {
	if issueCount <= GrammarTolerance {
		return 0
	}
	return float64(issueCount-GrammarTolerance) * GrammarPenaltyPerIssue
}

// FinalScore sums the sub-scores, applies the grammar penalty, clamps at 0
// and rounds to two decimals.
func FinalScore(scores types.SectionScores, grammarIssues int) float64 {
	score := float64(scores.Total()) - GrammarPenalty(grammarIssues)
	return round2(math.Max(score, 0))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
