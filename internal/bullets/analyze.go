// Package bullets measures verb strength and quantification in experience bullets.
package bullets

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// ActionVerbs open strong bullets.
var ActionVerbs = newVocabulary(
	"led", "created", "designed", "implemented", "developed", "managed", "delivered",
	"improved", "automated", "analyzed", "built", "optimized", "deployed", "executed",
	"shipped", "initiated", "planned", "organized", "facilitated", "mentored", "launched",
	"conducted", "revamped", "advised", "streamlined", "performed",
)

// WeakVerbs open bullets that understate ownership.
var WeakVerbs = newVocabulary("worked", "helped", "assisted", "participated", "did")

// Quantifiers detect a measurable result anywhere in a bullet.
var Quantifiers = []*regexp.Regexp{
	regexp.MustCompile(`\b\d+%`),
	regexp.MustCompile(`\$\d+`),
	regexp.MustCompile(`\d+ users`),
	regexp.MustCompile(`[1-9]\d{2,}`),
	regexp.MustCompile(`\d+\+`),
	regexp.MustCompile(`\d+\s+(requests|individuals|workshops|engagement|users|students|participants|projects|certificates|awards|attendees)`),
}

const bulletGlyphs = "-*• \t"

// Vocabulary is a set of lowercase words.
type Vocabulary map[string]struct{}

func newVocabulary(words ...string) Vocabulary {
	v := make(Vocabulary, len(words))
	for _, w := range words {
		v[w] = struct{}{}
	}
	return v
}

// Contains reports whether word is in the vocabulary.
func (v Vocabulary) Contains(word string) bool {
	_, ok := v[word]
	return ok
}

// FromSections collects bullets from the experience and internships bodies.
func FromSections(sections *types.SectionMap) []string {
	body := sections.Get(types.SectionExperience) + "\n" + sections.Get(types.SectionInternships)
	return Split(body)
}

// Split turns a section body into bullets: non-blank lines stripped of
// surrounding list glyphs and whitespace. A line holding only a glyph
// still counts as an (empty) bullet.
func Split(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, strings.Trim(line, bulletGlyphs))
	}
	return out
}

// IsQuantified reports whether any quantifier matches the bullet.
func IsQuantified(bullet string) bool {
	for _, re := range Quantifiers {
		if re.MatchString(bullet) {
			return true
		}
	}
	return false
}

// Analyze counts bullets by their leading verb and by quantification.
func Analyze(bullets []string) types.BulletCounts {
	var counts types.BulletCounts
	for _, b := range bullets {
		counts.Total++

		fields := strings.Fields(b)
		if len(fields) > 0 {
			first := strings.ToLower(fields[0])
			switch {
			case ActionVerbs.Contains(first):
				counts.ActionVerbs++
			case WeakVerbs.Contains(first):
				counts.WeakVerbs++
			}
		}

		if IsQuantified(b) {
			counts.Quantified++
		}
	}
	return counts
}
