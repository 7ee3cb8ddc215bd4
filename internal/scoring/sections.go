// Package scoring holds the per-section scoring rules and the final score.
package scoring

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Score ceilings.
const (
	MaxSummary        = 2
	MaxSkills         = 2
	MaxExperience     = 4
	MaxEducation      = 2
	MaxLineVolume     = 2
	MaxFormatting     = 4
	MinSummaryWords   = 8
	linesPerVolumePts = 2
)

var (
	degreeRe = regexp.MustCompile(`(?i)bachelor|master|phd|msc|bsc|university|college|degree|diploma|cgpa|gpa`)
	yearRe   = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// Summary awards points for a summary of at least MinSummaryWords words.
func Summary(sections *types.SectionMap) int {
	body := sections.Get(types.SectionSummary)
	if body != "" && len(strings.Fields(body)) >= MinSummaryWords {
		return MaxSummary
	}
	return 0
}

// Skills awards points for any skills content.
func Skills(sections *types.SectionMap) int {
	if sections.Get(types.SectionSkills) != "" {
		return MaxSkills
	}
	return 0
}

// Experience gives 2 for having bullets, then 1 each for quantification and action verbs.
func Experience(counts types.BulletCounts) int {
	if counts.Total == 0 {
		return 0
	}
	score := 2
	if counts.Quantified > 0 {
		score++
	}
	if counts.ActionVerbs > 0 {
		score++
	}
	return score
}

// Education gives 1 for a degree or institution keyword and 1 for a graduation year.
func Education(sections *types.SectionMap) int {
	body := sections.Get(types.SectionEducation)
	score := 0
	if degreeRe.MatchString(body) {
		score++
	}
	if yearRe.MatchString(body) {
		score++
	}
	return score
}

// LineVolume scores a body by its non-blank line count: one point per two lines, capped.
func LineVolume(body string) int {
	n := 0
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return min(n/linesPerVolumePts, MaxLineVolume)
}

// Sections runs every section scorer. Formatting is scored separately over the whole text.
func Sections(sections *types.SectionMap, counts types.BulletCounts) types.SectionScores {
	return types.SectionScores{
		Summary:        Summary(sections),
		Skills:         Skills(sections),
		Experience:     Experience(counts),
		Education:      Education(sections),
		Projects:       LineVolume(sections.Get(types.SectionProjects)),
		Certifications: LineVolume(sections.Get(types.SectionCertifications)),
		Awards:         LineVolume(sections.Get(types.SectionAwards)),
	}
}
