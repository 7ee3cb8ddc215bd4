// Package contact finds contact entities and privacy markers anywhere in résumé text.
package contact

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Kind names the ContactInfo field an entity is recorded under.
type Kind string

const (
	KindEmail     Kind = "email"
	KindPhone     Kind = "phone"
	KindLinkedIn  Kind = "linkedin"
	KindGitHub    Kind = "github"
	KindPortfolio Kind = "portfolio"
)

// Entity is one normalized finding.
type Entity struct {
	Kind  Kind
	Value string
}

// Rule is one line-level entity pattern. Every rule runs on every line.
type Rule struct {
	Name  string
	Match func(line string) []Entity
}

// ProhibitedMarkers are personal-data topics that should not appear on a résumé.
var ProhibitedMarkers = []string{"dob", "date of birth", "gender", "photo", "religion", "address"}

var (
	emailRe     = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe     = regexp.MustCompile(`\+?\d[\d \-]{8,}`)
	linkedInRe  = regexp.MustCompile(`(?i)(linkedin\.com/[^\s,;|]+|linkedin\s*:\s*[a-zA-Z0-9._-]+)`)
	gitHubRe    = regexp.MustCompile(`(?i)(github\.com/[^\s,;|]+|github\s*:\s*[a-zA-Z0-9._-]+)`)
	urlRe       = regexp.MustCompile(`(?i)(www\.[^\s,;|]+|https?://[^\s,;|]+)`)
	portfolioRe = regexp.MustCompile(`(?i)portfolio\s*:\s*([a-zA-Z0-9.\-]+(\.[a-z]{2,}))`)
	usernameRe  = regexp.MustCompile(`^[A-Za-z0-9_-]{4,20}$`)
	digitsRe    = regexp.MustCompile(`^\d+$`)
)

// DefaultRules is the ordered entity table.
var DefaultRules = []Rule{
	{Name: "email", Match: matchAll(emailRe, KindEmail, func(s string) string { return s })},
	{Name: "phone", Match: matchAll(phoneRe, KindPhone, func(s string) string {
		return strings.ReplaceAll(s, " ", "")
	})},
	{Name: "linkedin", Match: matchAll(linkedInRe, KindLinkedIn, profileURL("https://linkedin.com/in/"))},
	{Name: "github", Match: matchAll(gitHubRe, KindGitHub, profileURL("https://github.com/"))},
	{Name: "url", Match: matchPortfolioURL},
	{Name: "portfolio", Match: matchPortfolioLabel},
	{Name: "username", Match: matchUsernames},
}

// Extractor applies an ordered rule list to each line of a document.
type Extractor struct {
	rules []Rule
}

// New creates an Extractor. A nil or empty rule list uses DefaultRules.
func New(rules []Rule) *Extractor {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Extractor{rules: rules}
}

// Extract scans text with DefaultRules.
func Extract(text string) types.ContactInfo {
	return New(nil).Extract(text)
}

// Extract returns every entity found in text plus any prohibited markers.
// Each field is deduplicated and sorted.
func (e *Extractor) Extract(text string) types.ContactInfo {
	found := map[Kind]map[string]struct{}{}
	for _, line := range strings.Split(text, "\n") {
		for _, rule := range e.rules {
			for _, ent := range rule.Match(line) {
				if ent.Value == "" {
					continue
				}
				if found[ent.Kind] == nil {
					found[ent.Kind] = map[string]struct{}{}
				}
				found[ent.Kind][ent.Value] = struct{}{}
			}
		}
	}

	return types.ContactInfo{
		Emails:         sortedSet(found[KindEmail]),
		Phones:         sortedSet(found[KindPhone]),
		LinkedIn:       sortedSet(found[KindLinkedIn]),
		GitHub:         sortedSet(found[KindGitHub]),
		Portfolio:      sortedSet(found[KindPortfolio]),
		ProhibitedInfo: FindProhibited(text),
	}
}

// FindProhibited returns the markers present in the lowercased text, in table order.
func FindProhibited(text string) []string {
	lower := strings.ToLower(text)
	out := []string{}
	for _, marker := range ProhibitedMarkers {
		if strings.Contains(lower, marker) {
			out = append(out, marker)
		}
	}
	return out
}

func matchAll(re *regexp.Regexp, kind Kind, normalize func(string) string) func(string) []Entity {
	return func(line string) []Entity {
		var out []Entity
		for _, m := range re.FindAllString(line, -1) {
			out = append(out, Entity{Kind: kind, Value: normalize(m)})
		}
		return out
	}
}

// profileURL canonicalizes either a URL fragment or a "Label: handle" match.
func profileURL(base string) func(string) string {
	return func(m string) string {
		if strings.Contains(m, "/") {
			if strings.HasPrefix(strings.ToLower(m), "http") {
				return m
			}
			return "https://" + m
		}
		handle := strings.TrimSpace(m[strings.LastIndex(m, ":")+1:])
		if handle == "" {
			return ""
		}
		return base + handle
	}
}

// matchPortfolioURL keeps generic URLs that mention neither github nor linkedin.
// The check is a plain substring test, so e.g. "githubclone.io" is dropped too.
func matchPortfolioURL(line string) []Entity {
	var out []Entity
	for _, m := range urlRe.FindAllString(line, -1) {
		lower := strings.ToLower(m)
		if strings.Contains(lower, "github") || strings.Contains(lower, "linkedin") {
			continue
		}
		out = append(out, Entity{Kind: KindPortfolio, Value: m})
	}
	return out
}

func matchPortfolioLabel(line string) []Entity {
	var out []Entity
	for _, m := range portfolioRe.FindAllStringSubmatch(line, -1) {
		out = append(out, Entity{Kind: KindPortfolio, Value: m[1]})
	}
	return out
}

// matchUsernames treats every standalone short token as a possible GitHub
// and LinkedIn handle. This over-reports on ordinary words.
func matchUsernames(line string) []Entity {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == '|'
	})

	var out []Entity
	for _, f := range fields {
		tok := strings.Trim(f, `:()"'`)
		if !isUsername(tok) {
			continue
		}
		out = append(out,
			Entity{Kind: KindGitHub, Value: "https://github.com/" + tok},
			Entity{Kind: KindLinkedIn, Value: "https://linkedin.com/in/" + tok},
		)
	}
	return out
}

func isUsername(tok string) bool {
	return usernameRe.MatchString(tok) && !digitsRe.MatchString(tok)
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
