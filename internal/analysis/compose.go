package analysis

import (
	"github.com/jonathan/resume-analyzer/internal/feedback"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Parts are the independent stage outputs a report is assembled from.
type Parts struct {
	Source         types.SourceInfo
	Contact        types.ContactInfo
	Sections       *types.SectionMap
	Bullets        types.BulletCounts
	Scores         types.SectionScores
	Formatting     scoring.FormattingResult
	GrammarIssues  int
	GrammarSamples []types.GrammarIssue
	ExternalLinks  map[string]bool
}

// Compose assembles the final report, computes the final score and
// attaches feedback. The returned report is not modified afterwards.
func Compose(p Parts) *types.AnalysisReport {
	if p.Sections == nil {
		p.Sections = types.NewSectionMap()
	}
	if p.ExternalLinks == nil {
		p.ExternalLinks = map[string]bool{}
	}
	if p.GrammarSamples == nil {
		p.GrammarSamples = []types.GrammarIssue{}
	}
	p.Scores.Formatting = p.Formatting.Score

	report := &types.AnalysisReport{
		Source:             p.Source,
		ContactInfo:        p.Contact,
		Sections:           p.Sections,
		ExternalLinks:      p.ExternalLinks,
		GrammarIssues:      p.GrammarIssues,
		GrammarSamples:     p.GrammarSamples,
		SectionScores:      p.Scores,
		ExperienceAnalysis: p.Bullets,
		WordCount:          p.Formatting.WordCount,
		LineCount:          p.Formatting.LineCount,
		FinalScore:         scoring.FinalScore(p.Scores, p.GrammarIssues),
	}

	fb := feedback.Generate(report)
	report.Strengths = fb.Strengths
	report.Suggestions = fb.Suggestions
	return report
}
