package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/metrics"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file-or-url>",
	Short: "Analyze a résumé and print the report",
	Long: `Analyzes a résumé document (.pdf, .docx, .txt, .md, .html) or an online résumé page
and prints sections, contact details, scores, grammar findings, strengths and suggestions.

Use --json for machine-readable output, --out to also write the JSON report to a file,
and --save to store the report in PostgreSQL.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeJSON        bool
	analyzeOut         string
	analyzeSave        bool
	analyzeVerbose     bool
	analyzeSkipGrammar bool
	analyzeSkipLinks   bool
	analyzeTimeout     time.Duration
)

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the report as JSON instead of text")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Also write the JSON report to this file")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Store the report in PostgreSQL")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print each analysis step")
	analyzeCmd.Flags().BoolVar(&analyzeSkipGrammar, "skip-grammar", false, "Do not call the grammar service")
	analyzeCmd.Flags().BoolVar(&analyzeSkipLinks, "skip-links", false, "Do not probe contact links")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "Overall time limit for the analysis")

	rootCmd.AddCommand(analyzeCmd)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), analyzeTimeout)
	defer cancel()

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)

	setup := analyzerSetup{
		source:      metrics.SourceCLI,
		skipGrammar: analyzeSkipGrammar || appConfig.SkipGrammar,
		skipLinks:   analyzeSkipLinks || appConfig.SkipLinks,
	}
	if analyzeVerbose {
		// progress goes to stderr so --json output stays parseable
		stepPrinter := observability.NewPrinter(cmd.ErrOrStderr())
		setup.progress = func(e analysis.ProgressEvent) {
			stepPrinter.PrintStep(e.Step, e.Message)
		}
	}
	analyzer, cleanup := newAnalyzer(ctx, appConfig, appLogger, setup)
	defer cleanup()

	report, err := analyzeTarget(ctx, analyzer, args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if analyzeOut != "" {
		if err := os.WriteFile(analyzeOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report to %s: %w", analyzeOut, err)
		}
		appLogger.Info("report written", zap.String("path", analyzeOut))
	}

	if analyzeSave {
		if err := saveReport(ctx, report); err != nil {
			return err
		}
	}

	if analyzeJSON {
		_, err := fmt.Fprintln(out, string(data))
		return err
	}
	printer.PrintReport(report)
	return nil
}

func analyzeTarget(ctx context.Context, analyzer *analysis.Analyzer, target string) (*types.AnalysisReport, error) {
	if !isURL(target) {
		return analyzer.AnalyzeFile(ctx, target)
	}

	opts := fetch.DefaultOptions()
	text, err := ingestion.IngestFromURL(ctx, target, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	return analyzer.AnalyzeText(ctx, target, text)
}

func saveReport(ctx context.Context, report *types.AnalysisReport) error {
	store, err := openStore(ctx, appConfig.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.SaveAnalysis(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	appLogger.Info("analysis saved",
		zap.String("id", summary.ID.String()),
		zap.Float64("final_score", summary.FinalScore),
	)
	return nil
}
