package sections

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment_BasicResume(t *testing.T) {
	text := "John Doe\njohn@x.com\nSkills\nPython, Go\nExperience\nLed a team of 5 to deliver a 30% improvement"

	got := Segment(text)

	assert.Equal(t, []string{types.SectionHeader, types.SectionSkills, types.SectionExperience}, got.Names())
	assert.Equal(t, "John Doe\njohn@x.com", got.Get(types.SectionHeader))
	assert.Equal(t, "Python, Go", got.Get(types.SectionSkills))
	assert.Equal(t, "Led a team of 5 to deliver a 30% improvement", got.Get(types.SectionExperience))
}

func TestSegment_NoHeaders(t *testing.T) {
	text := "just some text\nwith nothing recognizable"

	got := Segment(text)

	assert.Equal(t, []string{types.SectionHeader}, got.Names())
	assert.Equal(t, text, got.Get(types.SectionHeader))
}

func TestSegment_EmptyText(t *testing.T) {
	got := Segment("")
	assert.Equal(t, []string{types.SectionHeader}, got.Names())
	assert.Equal(t, "", got.Get(types.SectionHeader))
}

func TestSegment_EmptyBodyStillCreatesSection(t *testing.T) {
	got := Segment("Name\nSkills\nEducation\nBSc 2020")

	require.True(t, got.Has(types.SectionSkills))
	assert.Equal(t, "", got.Get(types.SectionSkills))
	assert.Equal(t, "BSc 2020", got.Get(types.SectionEducation))
}

func TestSegment_RepeatedHeaderAppends(t *testing.T) {
	got := Segment("Projects\nfirst\nSkills\nGo\nProjects\nsecond")

	assert.Equal(t, "first\nsecond", got.Get(types.SectionProjects))
	assert.Equal(t, []string{types.SectionHeader, types.SectionProjects, types.SectionSkills}, got.Names())
}

func TestMatchHeader_FirstRuleWins(t *testing.T) {
	s := New(nil)

	tests := []struct {
		line string
		want string
	}{
		{"PROFESSIONAL SUMMARY", types.SectionSummary},
		{"Work Experience", types.SectionExperience},
		{"Internship", types.SectionInternships},
		{"Academic Projects", types.SectionProjects},
		{"Education", types.SectionEducation},
		{"Technical Skills", types.SectionSkills},
		{"Certifications", types.SectionCertifications},
		{"Honors and Awards", types.SectionAwards},
		{"Volunteer Work", types.SectionLeadership},
		{"Contact Details", types.SectionContact},
		// summary is checked before experience
		{"Profile and experience", types.SectionSummary},
		// skills mentioned after "university" resolve to education
		{"University skills", types.SectionEducation},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := s.MatchHeader(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchHeader_WordBoundaries(t *testing.T) {
	s := New(nil)

	for _, line := range []string{"Experienced engineer", "Internships", "Schooling", "Mastered Go", "infos", "headway"} {
		t.Run(line, func(t *testing.T) {
			_, ok := s.MatchHeader(line)
			assert.False(t, ok)
		})
	}
}

func TestSegment_CoversEveryLineOnce(t *testing.T) {
	// inputs are already normalized: trimmed, no blank lines
	inputs := []string{
		"one line",
		"Jane\nSummary\nBuilder of things for ten years now\nExperience\n- Led 3 teams\n- Helped users\nEducation\nBSc University 2019\nSkills\nGo",
		"Skills\nSkills\nSkills",
		"a\nb\nProjects\nc",
		"Skills\nGo\nExperience\n- Shipped it\nSkills\nRust",
	}

	s := New(nil)
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := s.Segment(input)
			lines := strings.Split(input, "\n")

			var headers int
			var want []string
			for _, line := range lines {
				if _, ok := s.MatchHeader(line); ok {
					headers++
				} else {
					want = append(want, line)
				}
			}

			var bodyLines []string
			for _, name := range got.Names() {
				if body := got.Get(name); body != "" {
					bodyLines = append(bodyLines, strings.Split(body, "\n")...)
				}
			}

			assert.Equal(t, len(lines), len(bodyLines)+headers)
			assert.ElementsMatch(t, want, bodyLines)
		})
	}
}

func TestNew_CustomRules(t *testing.T) {
	s := New([]Rule{NewRule("hobbies", `hobbies`)})

	got := s.Segment("Me\nHobbies\nchess\nSkills\nGo")

	assert.Equal(t, []string{types.SectionHeader, "hobbies"}, got.Names())
	assert.Equal(t, "chess\nSkills\nGo", got.Get("hobbies"))
}
