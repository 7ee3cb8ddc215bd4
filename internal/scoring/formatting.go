package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Document length bounds, in characters.
const (
	MinLength = 300
	MaxLength = 2500
)

var multiSpaceRe = regexp.MustCompile(` {2,}`)

// FormattingResult is the formatting score plus the document counts it measured.
type FormattingResult struct {
	Score     int
	WordCount int
	LineCount int
}

// Formatting starts at MaxFormatting and loses a point for each of: too short,
// too long, a tab character, a run of two or more spaces.
func Formatting(text string) FormattingResult {
	score := MaxFormatting
	length := utf8.RuneCountInString(text)
	if length < MinLength {
		score--
	}
	if length > MaxLength {
		score--
	}
	if strings.Contains(text, "\t") {
		score--
	}
	if multiSpaceRe.MatchString(text) {
		score--
	}

	words, lines := CountWordsAndLines(text)
	return FormattingResult{Score: max(score, 0), WordCount: words, LineCount: lines}
}

// CountWordsAndLines returns the whitespace-delimited word count and the line count.
func CountWordsAndLines(text string) (words, lines int) {
	words = len(strings.Fields(text))
	if text == "" {
		return words, 0
	}
	lines = strings.Count(strings.TrimSuffix(text, "\n"), "\n") + 1
	return words, lines
}
