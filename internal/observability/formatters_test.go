package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleReport() *types.AnalysisReport {
	sm := types.NewSectionMap()
	sm.Set(types.SectionSkills, "Go\nSQL")
	sm.Set(types.SectionExperience, "Led 5 teams")

	return &types.AnalysisReport{
		Source: types.SourceInfo{FileName: "cv.pdf"},
		ContactInfo: types.ContactInfo{
			Emails:   []string{"jane@doe.io"},
			LinkedIn: []string{"https://linkedin.com/in/jane"},
		},
		Sections:      sm,
		ExternalLinks: map[string]bool{"https://linkedin.com/in/jane": true},
		GrammarIssues: 2,
		GrammarSamples: []types.GrammarIssue{
			{Message: "Possible typo", Replacements: []string{"team"}},
		},
		SectionScores:      types.SectionScores{Skills: 2, Experience: 4, Formatting: 3},
		ExperienceAnalysis: types.BulletCounts{Total: 1, ActionVerbs: 1, Quantified: 1},
		WordCount:          9,
		LineCount:          5,
		FinalScore:         9,
		Strengths:          []string{"✔️ Skills section present."},
		Suggestions:        []string{"Add a phone number."},
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(sampleReport())
	output := buf.String()

	assert.Contains(t, output, "=== Resume Analysis Report ===")
	assert.Contains(t, output, "File: cv.pdf")
	assert.Contains(t, output, "Final score: 9.00")
	assert.Contains(t, output, "jane@doe.io")
	assert.Contains(t, output, "✓ https://linkedin.com/in/jane")
	assert.Contains(t, output, "skills")
	assert.Contains(t, output, "Experience       4/4")
	assert.Contains(t, output, "Possible typo → team")
	assert.Contains(t, output, "--- Strengths ---\n* ✔️ Skills section present.")
	assert.Contains(t, output, "--- Suggestions for Improvement ---\n- Add a phone number.")
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReport(nil)
	assert.Empty(t, buf.String())
}

func TestPrintContact_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintContact(types.ContactInfo{
		GitHub:         []string{"a", "b", "c", "d", "e", "f"},
		ProhibitedInfo: []string{"gender"},
	}, nil)
	output := buf.String()

	assert.Contains(t, output, "6 items (list truncated)")
	assert.Contains(t, output, "⚠ Personal info: gender")
	assert.NotContains(t, output, "Links:")
}

func TestPrintContact_ManyLinks(t *testing.T) {
	var buf bytes.Buffer
	links := map[string]bool{}
	for _, u := range []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"} {
		links[u] = false
	}

	NewPrinter(&buf).PrintContact(types.ContactInfo{}, links)

	assert.Contains(t, buf.String(), "✗ u1")
	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintSections_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSections(nil)
	assert.Empty(t, buf.String())
}

func TestPrintGrammar_LimitsSamples(t *testing.T) {
	var buf bytes.Buffer
	samples := []types.GrammarIssue{{Message: "one"}, {Message: "two"}, {Message: "three"}, {Message: "four"}}

	NewPrinter(&buf).PrintGrammar(12, samples)
	output := buf.String()

	assert.Contains(t, output, "Issues found: 12")
	assert.Contains(t, output, "three")
	assert.NotContains(t, output, "four")
	assert.Contains(t, output, "... and 1 more")
}

func TestPrintStep(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintStep("segment", "found 3 sections")
	assert.Equal(t, "[segment] found 3 sections\n", buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	assert.Contains(t, buf.String(), "...")
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.True(t, strings.HasPrefix(line, "│") || strings.HasPrefix(line, "┌") ||
			strings.HasPrefix(line, "├") || strings.HasPrefix(line, "└"))
	}
}
