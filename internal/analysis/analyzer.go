// Package analysis runs the full résumé analysis: normalization, segmentation,
// extraction, scoring and feedback, plus the grammar and link collaborators.
package analysis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/bullets"
	"github.com/jonathan/resume-analyzer/internal/contact"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/grammar"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/logger"
	"github.com/jonathan/resume-analyzer/internal/metrics"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/sections"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// MaxGrammarSamples is how many grammar issues are kept on the report.
// The issue count still reflects every issue found.
const MaxGrammarSamples = 10

// ProgressEvent reports that an analysis step finished.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called after each step.
type ProgressCallback func(event ProgressEvent)

// Analyzer produces AnalysisReports. It is safe for concurrent use as long
// as the injected checker and prober are.
type Analyzer struct {
	checker          grammar.Checker
	prober           fetch.Prober
	probeConcurrency int
	logger           *zap.Logger
	source           string
	onProgress       ProgressCallback
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithChecker sets the grammar checker. nil disables grammar checking.
func WithChecker(c grammar.Checker) Option {
	return func(a *Analyzer) { a.checker = c }
}

// WithProber sets the link prober. nil disables link probing.
func WithProber(p fetch.Prober) Option {
	return func(a *Analyzer) { a.prober = p }
}

// WithProbeConcurrency caps in-flight link probes.
func WithProbeConcurrency(n int) Option {
	return func(a *Analyzer) { a.probeConcurrency = n }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = logger.OrNop(l) }
}

// WithSource sets the metrics source label (cli or http).
func WithSource(source string) Option {
	return func(a *Analyzer) { a.source = source }
}

// WithProgress registers a progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(a *Analyzer) { a.onProgress = cb }
}

// New creates an Analyzer. Without options it checks no grammar and probes no links.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		checker:          grammar.Noop{},
		probeConcurrency: fetch.DefaultProbeConcurrency,
		logger:           zap.NewNop(),
		source:           metrics.SourceCLI,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) emit(step, message string) {
	if a.onProgress != nil {
		a.onProgress(ProgressEvent{Step: step, Message: message})
	}
}

// AnalyzeFile decodes the document at path and analyzes its text.
// An unknown extension or an unreadable file is an error; a document the
// decoder cannot parse is analyzed as empty text.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*types.AnalysisReport, error) {
	raw, err := ingestion.ExtractDocumentText(path)
	if err != nil {
		if raw, err = a.degradeDecodeError(path, err); err != nil {
			return nil, err
		}
	}
	return a.AnalyzeText(ctx, path, raw)
}

// AnalyzeBytes analyzes in-memory document content named fileName.
func (a *Analyzer) AnalyzeBytes(ctx context.Context, fileName string, data []byte) (*types.AnalysisReport, error) {
	raw, err := ingestion.ExtractBytes(fileName, data)
	if err != nil {
		if raw, err = a.degradeDecodeError(fileName, err); err != nil {
			return nil, err
		}
	}
	return a.AnalyzeText(ctx, fileName, raw)
}

// degradeDecodeError turns read and decode failures into empty text.
// Only an unrecognized extension stays fatal.
func (a *Analyzer) degradeDecodeError(name string, err error) (string, error) {
	var unsupported *ingestion.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		metrics.AnalysesFailed.WithLabelValues(a.source, "unsupported_format").Inc()
		return "", err
	}
	a.logger.Warn("document could not be read, analyzing empty text",
		zap.String("file", name), zap.Error(err))
	return "", nil
}

// AnalyzeText analyzes raw extracted text. fileName is informational and may be empty.
func (a *Analyzer) AnalyzeText(ctx context.Context, fileName, raw string) (*types.AnalysisReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	text := ingestion.Normalize(raw)
	a.emit("normalize", "normalized "+strconv.Itoa(len(text))+" bytes")

	sectionMap := sections.Segment(text)
	a.emit("segment", "found "+strconv.Itoa(sectionMap.Len())+" sections")

	contactInfo := contact.Extract(text)
	a.emit("contact", "extracted contact details")

	counts := bullets.Analyze(bullets.FromSections(sectionMap))
	scores := scoring.Sections(sectionMap, counts)
	format := scoring.Formatting(text)
	a.emit("score", "scored sections")

	issueCount, samples := a.checkGrammar(ctx, text)
	a.emit("grammar", strconv.Itoa(issueCount)+" grammar issues")

	links := a.probeLinks(ctx, contactInfo.Links())
	a.emit("links", "probed "+strconv.Itoa(len(links))+" links")

	report := Compose(Parts{
		Source:         ingestion.NewSourceInfo(fileName, text),
		Contact:        contactInfo,
		Sections:       sectionMap,
		Bullets:        counts,
		Scores:         scores,
		Formatting:     format,
		GrammarIssues:  issueCount,
		GrammarSamples: samples,
		ExternalLinks:  links,
	})
	a.emit("feedback", "generated feedback")

	metrics.AnalysesCompleted.WithLabelValues(a.source).Inc()
	metrics.AnalysisDuration.WithLabelValues(a.source).Observe(time.Since(start).Seconds())
	metrics.FinalScore.Observe(report.FinalScore)

	a.logger.Debug("analysis complete",
		zap.String("file", report.Source.FileName),
		zap.Int("sections", sectionMap.Len()),
		zap.Int("bullets", counts.Total),
		zap.Int("grammar_issues", issueCount),
		zap.Float64("final_score", report.FinalScore),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// checkGrammar never fails the analysis: a checker error counts as zero issues.
func (a *Analyzer) checkGrammar(ctx context.Context, text string) (int, []types.GrammarIssue) {
	if a.checker == nil {
		return 0, []types.GrammarIssue{}
	}
	issues, err := a.checker.Check(ctx, text)
	if err != nil {
		metrics.GrammarCheckFailures.Inc()
		a.logger.Warn("grammar check failed, recording no issues", zap.Error(err))
		return 0, []types.GrammarIssue{}
	}
	samples := make([]types.GrammarIssue, 0, min(len(issues), MaxGrammarSamples))
	samples = append(samples, issues[:min(len(issues), MaxGrammarSamples)]...)
	return len(issues), samples
}

func (a *Analyzer) probeLinks(ctx context.Context, links []string) map[string]bool {
	if a.prober == nil {
		return map[string]bool{}
	}
	results := fetch.ProbeAll(ctx, a.prober, links, a.probeConcurrency)
	for link, ok := range results {
		metrics.LinkProbes.WithLabelValues(strconv.FormatBool(ok)).Inc()
		if !ok {
			a.logger.Debug("link unreachable", zap.String("url", link))
		}
	}
	return results
}
