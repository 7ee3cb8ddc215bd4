// Package main provides the resume_analyzer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/logger"
)

var (
	rootConfigPath string
	rootLogLevel   string
	rootLogFormat  string

	appConfig *config.Config
	appLogger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "resume_analyzer",
	Short: "Heuristic résumé analysis",
	Long: `resume_analyzer scores a résumé (PDF, DOCX, text, HTML or a URL) on section coverage,
bullet quality and formatting, checks grammar and contact links, and prints strengths and
suggestions. It can also serve the same analysis over a REST API.

Settings come from an optional --config file and RESUME_* environment variables.`,
	PersistentPreRunE: loadRuntime,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootLogFormat, "log-format", "", "Log format override (console, json)")
}

// loadRuntime resolves configuration and builds the logger before any command runs.
func loadRuntime(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return err
	}
	if rootLogLevel != "" {
		cfg.LogLevel = rootLogLevel
	}
	if rootLogFormat != "" {
		cfg.LogFormat = rootLogFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	appConfig = cfg
	appLogger = l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = appLogger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
