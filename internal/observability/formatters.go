// Package observability provides formatted console output for analysis reports.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the longest list printed in full
	maxItemsToShow = 5
	// maxGrammarSamples is the number of grammar samples printed
	maxGrammarSamples = 3
)

// Printer handles formatted report output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// listLine renders a labeled list, collapsing long lists to a count.
func listLine(label string, items []string) string {
	switch {
	case len(items) == 0:
		return fmt.Sprintf("%-10s -", label+":")
	case len(items) > maxItemsToShow:
		return fmt.Sprintf("%-10s %d items (list truncated)", label+":", len(items))
	default:
		return fmt.Sprintf("%-10s %s", label+":", strings.Join(items, ", "))
	}
}

// PrintStep outputs a one-line progress message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStep(step, message string) {
	fmt.Fprintf(p.out, "[%s] %s\n", step, message)
}

// PrintReport outputs the full analysis report followed by strengths and suggestions.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(report *types.AnalysisReport) {
	if report == nil {
		return
	}

	fmt.Fprintln(p.out, "\n=== Resume Analysis Report ===")
	if report.Source.FileName != "" {
		fmt.Fprintf(p.out, "File: %s\n", report.Source.FileName)
	}
	fmt.Fprintf(p.out, "Final score: %.2f\n\n", report.FinalScore)

	p.PrintContact(report.ContactInfo, report.ExternalLinks)
	p.PrintSections(report.Sections)
	p.PrintScores(report)
	p.PrintGrammar(report.GrammarIssues, report.GrammarSamples)

	fmt.Fprintln(p.out, "\n--- Strengths ---")
	for _, s := range report.Strengths {
		fmt.Fprintf(p.out, "* %s\n", s)
	}
	fmt.Fprintln(p.out, "\n--- Suggestions for Improvement ---")
	for _, s := range report.Suggestions {
		fmt.Fprintf(p.out, "- %s\n", s)
	}
}

// PrintContact outputs contact entities and link reachability.
func (p *Printer) PrintContact(c types.ContactInfo, links map[string]bool) {
	var sb strings.Builder
	sb.WriteString(listLine("Emails", c.Emails) + "\n")
	sb.WriteString(listLine("Phones", c.Phones) + "\n")
	sb.WriteString(listLine("LinkedIn", c.LinkedIn) + "\n")
	sb.WriteString(listLine("GitHub", c.GitHub) + "\n")
	sb.WriteString(listLine("Portfolio", c.Portfolio) + "\n")
	if len(c.ProhibitedInfo) > 0 {
		sb.WriteString(fmt.Sprintf("⚠ Personal info: %s\n", strings.Join(c.ProhibitedInfo, ", ")))
	}

	if len(links) > 0 {
		urls := make([]string, 0, len(links))
		for u := range links {
			urls = append(urls, u)
		}
		sort.Strings(urls)

		sb.WriteString("\nLinks:\n")
		count := min(len(urls), maxItemsToShow)
		for _, u := range urls[:count] {
			mark := "✗"
			if links[u] {
				mark = "✓"
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n", mark, u))
		}
		if len(urls) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(urls)-maxItemsToShow))
		}
	}

	p.printBox("CONTACT INFO", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSections outputs each detected section with its body line count.
func (p *Printer) PrintSections(sm *types.SectionMap) {
	if sm.Len() == 0 {
		return
	}

	var sb strings.Builder
	for _, name := range sm.Names() {
		body := sm.Get(name)
		lines := 0
		if body != "" {
			lines = strings.Count(body, "\n") + 1
		}
		sb.WriteString(fmt.Sprintf("%-16s %d lines\n", name, lines))
	}

	p.printBox("SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScores outputs the sub-scores, bullet counts and document size.
func (p *Printer) PrintScores(r *types.AnalysisReport) {
	var sb strings.Builder
	rows := []struct {
		name  string
		score int
		max   int
	}{
		{"Summary", r.Summary, 2},
		{"Skills", r.Skills, 2},
		{"Experience", r.Experience, 4},
		{"Education", r.Education, 2},
		{"Projects", r.Projects, 2},
		{"Certifications", r.Certifications, 2},
		{"Awards", r.Awards, 2},
		{"Formatting", r.Formatting, 4},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-16s %d/%d\n", row.name, row.score, row.max))
	}

	b := r.ExperienceAnalysis
	sb.WriteString(fmt.Sprintf("\nBullets: %d (action %d, weak %d, quantified %d)\n",
		b.Total, b.ActionVerbs, b.WeakVerbs, b.Quantified))
	sb.WriteString(fmt.Sprintf("Words: %d  Lines: %d", r.WordCount, r.LineCount))

	p.printBox("SCORES", sb.String())
}

// PrintGrammar outputs the issue count and the first few samples.
func (p *Printer) PrintGrammar(count int, samples []types.GrammarIssue) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Issues found: %d\n", count))

	n := min(len(samples), maxGrammarSamples)
	for _, s := range samples[:n] {
		sb.WriteString(fmt.Sprintf("  • %s", s.Message))
		if len(s.Replacements) > 0 {
			sb.WriteString(fmt.Sprintf(" → %s", s.Replacements[0]))
		}
		sb.WriteString("\n")
	}
	if len(samples) > n {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(samples)-n))
	}

	p.printBox("GRAMMAR & SPELLING", strings.TrimSuffix(sb.String(), "\n"))
}
