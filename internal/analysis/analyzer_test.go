package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/grammar"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const shortResume = "John Doe\njohn@x.com\nSkills\nPython, Go\nExperience\nLed a team of 5 to deliver a 30% improvement"

func fixedIssues(n int) grammar.Checker {
	return grammar.CheckerFunc(func(context.Context, string) ([]types.GrammarIssue, error) {
		issues := make([]types.GrammarIssue, n)
		for i := range issues {
			issues[i] = types.GrammarIssue{Message: "issue " + string(rune('a'+i%26)), Replacements: []string{}}
		}
		return issues, nil
	})
}

func TestAnalyzeText_SkillsAndQuantifiedExperience(t *testing.T) {
	a := New(WithLogger(zaptest.NewLogger(t)))

	report, err := a.AnalyzeText(context.Background(), "", shortResume)
	require.NoError(t, err)

	assert.True(t, report.Sections.Has(types.SectionSkills))
	assert.True(t, report.Sections.Has(types.SectionExperience))
	assert.Equal(t, []string{"john@x.com"}, report.ContactInfo.Emails)
	assert.Equal(t, types.BulletCounts{Total: 1, ActionVerbs: 1, Quantified: 1}, report.ExperienceAnalysis)
	assert.Equal(t, 4, report.Experience)
	assert.Equal(t, 2, report.Skills)
}

func TestAnalyzeText_EmptyInput(t *testing.T) {
	report, err := New().AnalyzeText(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 0, report.Summary)
	assert.Equal(t, 0, report.Skills)
	assert.Equal(t, 0, report.Experience)
	assert.Equal(t, 0, report.Education)
	assert.Equal(t, 0, report.Projects)
	assert.Equal(t, 0, report.Certifications)
	assert.Equal(t, 0, report.Awards)
	assert.Equal(t, 3, report.Formatting)
	assert.Equal(t, 3.0, report.FinalScore)
	assert.Empty(t, report.ContactInfo.Emails)
	assert.Empty(t, report.ContactInfo.Phones)
	assert.Empty(t, report.ContactInfo.LinkedIn)
	assert.Empty(t, report.ContactInfo.GitHub)
	assert.Empty(t, report.ContactInfo.Portfolio)
	assert.Empty(t, report.ContactInfo.ProhibitedInfo)
	assert.Equal(t, 0, report.WordCount)
	assert.Equal(t, 0, report.LineCount)
}

func TestAnalyzeText_ProhibitedInfo(t *testing.T) {
	report, err := New().AnalyzeText(context.Background(), "", "Jane\nDate of birth: 1 Jan 1990")
	require.NoError(t, err)

	assert.Contains(t, report.ContactInfo.ProhibitedInfo, "date of birth")
	assert.Contains(t, report.Suggestions, "Remove personal info like DOB, photo, or full address.")
}

func TestAnalyzeText_GitHubLabel(t *testing.T) {
	report, err := New().AnalyzeText(context.Background(), "", "GitHub: alice123")
	require.NoError(t, err)

	assert.Contains(t, report.ContactInfo.GitHub, "https://github.com/alice123")
}

func TestAnalyzeText_GrammarPenalty(t *testing.T) {
	at10, err := New(WithChecker(fixedIssues(10))).AnalyzeText(context.Background(), "", shortResume)
	require.NoError(t, err)
	at11, err := New(WithChecker(fixedIssues(11))).AnalyzeText(context.Background(), "", shortResume)
	require.NoError(t, err)

	raw := float64(at10.SectionScores.Total())
	assert.Equal(t, raw, at10.FinalScore)
	assert.InDelta(t, raw-0.2, at11.FinalScore, 1e-9)
	assert.Equal(t, 11, at11.GrammarIssues)
	assert.Len(t, at11.GrammarSamples, MaxGrammarSamples)
}

func TestAnalyzeText_GrammarFailureIsNotFatal(t *testing.T) {
	failing := grammar.CheckerFunc(func(context.Context, string) ([]types.GrammarIssue, error) {
		return nil, &grammar.APICallError{Message: "down"}
	})

	report, err := New(WithChecker(failing), WithLogger(zaptest.NewLogger(t))).
		AnalyzeText(context.Background(), "", shortResume)

	require.NoError(t, err)
	assert.Equal(t, 0, report.GrammarIssues)
	assert.Empty(t, report.GrammarSamples)
	assert.NotNil(t, report.GrammarSamples)
}

func TestAnalyzeText_ProbesEveryLink(t *testing.T) {
	var mu sync.Mutex
	var probed []string
	prober := fetch.ProberFunc(func(_ context.Context, url string) bool {
		mu.Lock()
		defer mu.Unlock()
		probed = append(probed, url)
		return strings.Contains(url, "jane.dev")
	})

	text := "Jane\nlinkedin.com/in/jane-d\nhttps://jane.dev"
	report, err := New(WithProber(prober)).AnalyzeText(context.Background(), "", text)
	require.NoError(t, err)

	assert.Len(t, probed, len(report.ExternalLinks))
	assert.True(t, report.ExternalLinks["https://jane.dev"])
	assert.False(t, report.ExternalLinks["https://linkedin.com/in/jane-d"])
}

func TestAnalyzeText_NoProberLeavesLinksEmpty(t *testing.T) {
	report, err := New().AnalyzeText(context.Background(), "", "https://jane.dev")
	require.NoError(t, err)

	assert.NotNil(t, report.ExternalLinks)
	assert.Empty(t, report.ExternalLinks)
}

func TestAnalyzeText_Idempotent(t *testing.T) {
	text := "Jane Doe\njane@doe.io | +1 555 123 4567\nSummary\nBackend engineer with eight years of experience shipping APIs\n" +
		"Experience\n- Led migration of 300 services\n- Helped onboarding\nEducation\nBSc University 2015\n" +
		"Projects\nA\nB\nC\nSkills\nGo, SQL"
	a := New(WithChecker(fixedIssues(4)), WithProber(fetch.ProberFunc(func(context.Context, string) bool { return true })))

	first, err := a.AnalyzeText(context.Background(), "cv.txt", text)
	require.NoError(t, err)
	second, err := a.AnalyzeText(context.Background(), "cv.txt", text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeText_ScoresWithinBounds(t *testing.T) {
	inputs := []string{
		"",
		shortResume,
		strings.Repeat("Projects\nline\nline\nline\n", 50),
		strings.Repeat("Experience\n- Led 100 users\n\t  - Built 5+ tools\n", 200),
	}

	for i, input := range inputs {
		report, err := New().AnalyzeText(context.Background(), "", input)
		require.NoError(t, err, "input %d", i)

		s := report.SectionScores
		for name, pair := range map[string][2]int{
			"summary":        {s.Summary, 2},
			"skills":         {s.Skills, 2},
			"experience":     {s.Experience, 4},
			"education":      {s.Education, 2},
			"projects":       {s.Projects, 2},
			"certifications": {s.Certifications, 2},
			"awards":         {s.Awards, 2},
			"formatting":     {s.Formatting, 4},
		} {
			assert.GreaterOrEqual(t, pair[0], 0, name)
			assert.LessOrEqual(t, pair[0], pair[1], name)
		}
		assert.GreaterOrEqual(t, report.FinalScore, 0.0)
	}
}

func TestAnalyzeText_EmitsProgress(t *testing.T) {
	var steps []string
	a := New(WithProgress(func(e ProgressEvent) { steps = append(steps, e.Step) }))

	_, err := a.AnalyzeText(context.Background(), "", shortResume)
	require.NoError(t, err)

	assert.Equal(t, []string{"normalize", "segment", "contact", "score", "grammar", "links", "feedback"}, steps)
}

func TestAnalyzeText_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().AnalyzeText(ctx, "", shortResume)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(txt, []byte(shortResume+"\n\n\n"), 0o644))

	report, err := New().AnalyzeFile(context.Background(), txt)
	require.NoError(t, err)
	assert.Equal(t, "resume.txt", report.Source.FileName)
	assert.Equal(t, []string{"john@x.com"}, report.ContactInfo.Emails)
}

func TestAnalyzeFile_UnsupportedFormatIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.odt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := New().AnalyzeFile(context.Background(), path)

	var unsupported *ingestion.UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, ".odt", unsupported.Extension)
}

func TestAnalyzeFile_MissingFileDegradesToEmpty(t *testing.T) {
	report, err := New(WithLogger(zaptest.NewLogger(t))).
		AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))

	require.NoError(t, err)
	assert.Equal(t, 3.0, report.FinalScore)
	assert.Equal(t, "missing.pdf", report.Source.FileName)
	assert.Equal(t, 0, report.WordCount)
	assert.Contains(t, report.Suggestions, "Add a skills section.")
}

func TestAnalyzeBytes_CorruptDocumentDegradesToEmpty(t *testing.T) {
	report, err := New(WithLogger(zaptest.NewLogger(t))).
		AnalyzeBytes(context.Background(), "resume.pdf", []byte("not a pdf"))

	require.NoError(t, err)
	assert.Equal(t, 3.0, report.FinalScore)
	assert.Equal(t, "resume.pdf", report.Source.FileName)
}

func TestCompose_DefaultsNilParts(t *testing.T) {
	report := Compose(Parts{})

	assert.NotNil(t, report.Sections)
	assert.NotNil(t, report.ExternalLinks)
	assert.NotNil(t, report.GrammarSamples)
	assert.NotNil(t, report.Strengths)
	assert.NotNil(t, report.Suggestions)
}
