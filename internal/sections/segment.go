// Package sections splits normalized résumé text into named sections.
package sections

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Rule maps a header pattern to the section it opens.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// NewRule compiles pattern as a case-insensitive search bounded by word
// boundaries on both sides of every alternative.
func NewRule(name, pattern string) Rule {
	return Rule{
		Name:    name,
		Pattern: regexp.MustCompile(`(?i)\b(?:` + pattern + `)\b`),
	}
}

// DefaultRules is the ordered header table. The first matching rule wins.
var DefaultRules = []Rule{
	NewRule(types.SectionSummary, `(summary|objective|profile)`),
	NewRule(types.SectionExperience, `(professional|work|employment).*experience|experience`),
	NewRule(types.SectionInternships, `internship`),
	NewRule(types.SectionProjects, `projects?`),
	NewRule(types.SectionEducation, `education|bachelor|master|university|college|school|degree|cgpa|gpa`),
	NewRule(types.SectionSkills, `skills|technologies|proficiencies|core skills|technical skills`),
	NewRule(types.SectionCertifications, `certifications?|credentials?|achievements?|accomplishments?`),
	NewRule(types.SectionAwards, `awards?|honors?|recognition`),
	NewRule(types.SectionLeadership, `leadership|extracurricular|volunteer|positions|roles|club|nss|head`),
	NewRule(types.SectionContact, `contact|details|info`),
}

// Segmenter assigns lines to sections using an ordered rule table.
type Segmenter struct {
	rules []Rule
}

// New creates a Segmenter. A nil or empty rule list uses DefaultRules.
func New(rules []Rule) *Segmenter {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Segmenter{rules: rules}
}

// Segment splits text using DefaultRules.
func Segment(text string) *types.SectionMap {
	return New(nil).Segment(text)
}

// MatchHeader returns the name of the first rule matching line.
func (s *Segmenter) MatchHeader(line string) (string, bool) {
	for _, rule := range s.rules {
		if rule.Pattern.MatchString(line) {
			return rule.Name, true
		}
	}
	return "", false
}

// Segment scans text top to bottom. A header line switches the current
// section and is consumed; every other line joins the current section body.
// Lines before the first header go to "header".
func (s *Segmenter) Segment(text string) *types.SectionMap {
	order := []string{types.SectionHeader}
	bodies := map[string][]string{types.SectionHeader: nil}
	current := types.SectionHeader

	for _, line := range strings.Split(text, "\n") {
		if name, ok := s.MatchHeader(line); ok {
			current = name
			if _, seen := bodies[name]; !seen {
				bodies[name] = nil
				order = append(order, name)
			}
			continue
		}
		bodies[current] = append(bodies[current], line)
	}

	result := types.NewSectionMap()
	for _, name := range order {
		result.Set(name, strings.TrimSpace(strings.Join(bodies[name], "\n")))
	}
	return result
}
