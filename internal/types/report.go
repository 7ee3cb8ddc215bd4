// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ContactInfo holds every contact entity found anywhere in the document.
// Each field is deduplicated and sorted.
type ContactInfo struct {
	Emails         []string `json:"emails"`
	Phones         []string `json:"phones"`
	LinkedIn       []string `json:"linkedin"`
	GitHub         []string `json:"github"`
	Portfolio      []string `json:"portfolio"`
	ProhibitedInfo []string `json:"prohibited_info"`
}

// Links returns the LinkedIn, GitHub and portfolio URLs, in that order.
func (c ContactInfo) Links() []string {
	links := make([]string, 0, len(c.LinkedIn)+len(c.GitHub)+len(c.Portfolio))
	links = append(links, c.LinkedIn...)
	links = append(links, c.GitHub...)
	links = append(links, c.Portfolio...)
	return links
}

// BulletCounts summarizes experience and internship bullets.
type BulletCounts struct {
	Total       int `json:"total"`
	ActionVerbs int `json:"action_verbs"`
	WeakVerbs   int `json:"weak_verbs"`
	Quantified  int `json:"quantified"`
}

// QuantifiedRatio returns quantified/total, or 0 when there are no bullets.
func (b BulletCounts) QuantifiedRatio() float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Quantified) / float64(b.Total)
}

// GrammarIssue is a single grammar or spelling finding.
type GrammarIssue struct {
	Message      string   `json:"message"`
	Offset       int      `json:"offset"`
	Length       int      `json:"errorLength"`
	Replacements []string `json:"replacements"`
}

// SectionScores holds the eight capped sub-scores.
type SectionScores struct {
	Summary        int `json:"summary_score"`
	Skills         int `json:"skills_score"`
	Experience     int `json:"experience_score"`
	Education      int `json:"education_score"`
	Projects       int `json:"projects_score"`
	Certifications int `json:"certifications_score"`
	Awards         int `json:"awards_score"`
	Formatting     int `json:"formatting_score"`
}

// Total returns the sum of all sub-scores.
func (s SectionScores) Total() int {
	return s.Summary + s.Skills + s.Experience + s.Education +
		s.Projects + s.Certifications + s.Awards + s.Formatting
}

// SourceInfo identifies the analyzed document.
type SourceInfo struct {
	FileName string `json:"file_name,omitempty"`
	Hash     string `json:"hash"` // SHA256 of the normalized text
}

// AnalysisReport is the terminal artifact of one analysis run.
type AnalysisReport struct {
	Source         SourceInfo      `json:"source"`
	ContactInfo    ContactInfo     `json:"contact_info"`
	Sections       *SectionMap     `json:"sections"`
	ExternalLinks  map[string]bool `json:"external_links"`
	GrammarIssues  int             `json:"grammar_issues"`
	GrammarSamples []GrammarIssue  `json:"grammar_spelling_issues"`

	SectionScores

	ExperienceAnalysis BulletCounts `json:"experience_analysis"`
	WordCount          int          `json:"word_count"`
	LineCount          int          `json:"line_count"`
	FinalScore         float64      `json:"final_score"`
	Strengths          []string     `json:"strengths"`
	Suggestions        []string     `json:"suggestions"`
}
