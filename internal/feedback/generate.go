// Package feedback turns a scored report into strengths and suggestions.
package feedback

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Thresholds used by the rule table.
const (
	QuantifiedRatioTarget = 0.5
	GrammarMinorMax       = 3
	GrammarMajorMin       = 6
	GrammarSampleCount    = 3
	MinWords              = 250
	MaxWords              = 1200
	MaxLines              = 80
)

// Feedback is the output of the rule table.
type Feedback struct {
	Strengths   []string
	Suggestions []string
}

func (f *Feedback) strength(s string) { f.Strengths = append(f.Strengths, s) }
func (f *Feedback) suggestion(s string) { f.Suggestions = append(f.Suggestions, s) }

// Rule inspects a report and appends to the feedback.
type Rule struct {
	Name  string
	Apply func(r *types.AnalysisReport, f *Feedback)
}

// either records strength when cond holds and suggestion otherwise.
// An empty string skips that branch.
func either(name string, cond func(r *types.AnalysisReport) bool, strength, suggestion string) Rule {
	return Rule{
		Name: name,
		Apply: func(r *types.AnalysisReport, f *Feedback) {
			ok := cond(r)
			if ok && strength != "" {
				f.strength(strength)
			} else if !ok && suggestion != "" {
				f.suggestion(suggestion)
			}
		},
	}
}

// DefaultRules is the ordered rule table. Every rule runs; output keeps table order.
var DefaultRules = []Rule{
	either("email", func(r *types.AnalysisReport) bool { return len(r.ContactInfo.Emails) > 0 },
		"✔️ Professional email address found.", "Add a professional email address."),
	either("linkedin", func(r *types.AnalysisReport) bool { return len(r.ContactInfo.LinkedIn) > 0 },
		"✔️ LinkedIn profile detected.", "Add a LinkedIn profile link."),
	either("phone", func(r *types.AnalysisReport) bool { return len(r.ContactInfo.Phones) > 0 },
		"✔️ Phone number present.", "Add a phone number."),
	either("github", func(r *types.AnalysisReport) bool { return len(r.ContactInfo.GitHub) > 0 },
		"✔️ GitHub link present.", ""),
	either("portfolio", func(r *types.AnalysisReport) bool { return len(r.ContactInfo.Portfolio) > 0 },
		"✔️ Portfolio link present.", ""),
	either("prohibited", func(r *types.AnalysisReport) bool { return len(r.ContactInfo.ProhibitedInfo) == 0 },
		"", "Remove personal info like DOB, photo, or full address."),
	either("summary", func(r *types.AnalysisReport) bool { return r.Sections.Get(types.SectionSummary) != "" },
		"✔️ Summary section found.", ""),
	either("skills", func(r *types.AnalysisReport) bool { return r.Sections.Get(types.SectionSkills) != "" },
		"✔️ Skills section present.", "Add a skills section."),
	{Name: "experience", Apply: experience},
	either("education", func(r *types.AnalysisReport) bool { return r.Education >= 2 },
		"✔️ Education section is complete.", "Add degree, university, and graduation year to education section."),
	volume(types.SectionCertifications, func(r *types.AnalysisReport) int { return r.Certifications }),
	volume(types.SectionProjects, func(r *types.AnalysisReport) int { return r.Projects }),
	volume(types.SectionAwards, func(r *types.AnalysisReport) int { return r.Awards }),
	either("formatting", func(r *types.AnalysisReport) bool { return r.Formatting >= 4 },
		"✔️ Formatting and layout are clear.", "Improve formatting with more whitespace and clear headers."),
	{Name: "grammar", Apply: grammar},
	{Name: "length", Apply: length},
	either("lines", func(r *types.AnalysisReport) bool { return r.LineCount <= MaxLines },
		"", "Too many lines. Use concise statements and avoid unnecessary line breaks."),
}

// Generate applies DefaultRules to the report.
func Generate(r *types.AnalysisReport) Feedback {
	return GenerateWith(r, DefaultRules)
}

// GenerateWith applies rules in order. Both lists are non-nil.
func GenerateWith(r *types.AnalysisReport, rules []Rule) Feedback {
	f := Feedback{Strengths: []string{}, Suggestions: []string{}}
	for _, rule := range rules {
		rule.Apply(r, &f)
	}
	return f
}

// NeedsMoreQuantification reports whether bullets exist and fewer than half are quantified.
func NeedsMoreQuantification(c types.BulletCounts) bool {
	return c.Total > 0 && c.QuantifiedRatio() < QuantifiedRatioTarget
}

// experience keys off the experience header only; internships alone do not count.
func experience(r *types.AnalysisReport, f *Feedback) {
	if !r.Sections.Has(types.SectionExperience) {
		f.suggestion("Add a detailed experience/internship section.")
		return
	}

	c := r.ExperienceAnalysis
	f.strength("✔️ Work/Internship experience section found.")
	switch {
	case c.Total == 0:
		f.suggestion("Add detailed experience bullets.")
	case !NeedsMoreQuantification(c):
		f.strength("✔️ Many experience bullets are quantified.")
	default:
		f.suggestion("Quantify more of your experience and internship bullets with numbers, %, or results.")
	}

	if c.ActionVerbs > 0 {
		f.strength("✔️ Experience bullets start with action verbs.")
	} else {
		f.suggestion("Start more bullets with strong action verbs.")
	}
}

func volume(section string, score func(r *types.AnalysisReport) int) Rule {
	title := strings.ToUpper(section[:1]) + section[1:]
	return Rule{
		Name: section,
		Apply: func(r *types.AnalysisReport, f *Feedback) {
			switch {
			case score(r) > 0:
				f.strength(fmt.Sprintf("✔️ %s section present.", title))
			case r.Sections.Has(section):
				f.suggestion(fmt.Sprintf("Add more detail to your %s section.", section))
			default:
				f.suggestion(fmt.Sprintf("Add a %s section if you have relevant content.", section))
			}
		},
	}
}

// grammar leaves counts between GrammarMinorMax and GrammarMajorMin unremarked.
func grammar(r *types.AnalysisReport, f *Feedback) {
	switch {
	case r.GrammarIssues <= GrammarMinorMax:
		f.strength("✔️ Minimal grammar and spelling errors.")
	case r.GrammarIssues > GrammarMajorMin:
		samples := r.GrammarSamples[:min(len(r.GrammarSamples), GrammarSampleCount)]
		msgs := make([]string, 0, len(samples))
		for _, s := range samples {
			msgs = append(msgs, s.Message)
		}
		f.suggestion("Fix grammar and spelling errors throughout. (Eg: " + strings.Join(msgs, "; ") + ")")
	}
}

func length(r *types.AnalysisReport, f *Feedback) {
	switch {
	case r.WordCount < MinWords:
		f.suggestion("Resume may be too short. Add more details to showcase your profile.")
	case r.WordCount > MaxWords:
		f.suggestion("Resume is too long. Condense and focus on your most relevant information.")
	}
}
