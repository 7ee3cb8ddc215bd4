package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/metrics"
	"github.com/jonathan/resume-analyzer/internal/server"
)

var (
	servePort      int
	serveNoStore   bool
	serveMaxUpload int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that analyzes résumés on POST /analyses and, when a database
is configured, stores reports and serves them on GET/DELETE /analyses/{id}.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "Do not persist reports even if a database is configured")
	serveCmd.Flags().Int64Var(&serveMaxUpload, "max-upload-bytes", server.DefaultMaxUploadBytes, "Maximum request body size")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := appConfig
	port := cfg.Port
	if servePort > 0 {
		port = servePort
	}

	analyzer, cleanup := newAnalyzer(ctx, cfg, appLogger, analyzerSetup{
		source:      metrics.SourceHTTP,
		skipGrammar: cfg.SkipGrammar,
		skipLinks:   cfg.SkipLinks,
	})
	defer cleanup()

	var store server.Store
	if cfg.DatabaseURL != "" && !serveNoStore {
		database, err := openStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		store = database
	} else {
		appLogger.Info("no database configured, reports will not be stored")
	}

	srv := server.New(server.Config{
		Port:           port,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
		RateWhitelist:  cfg.RateLimitWhitelist,
		RateBlacklist:  cfg.RateLimitBlacklist,
		MaxUploadBytes: serveMaxUpload,
	}, analyzer, store, appLogger)

	appLogger.Info("serving", zap.Int("port", port), zap.Bool("store", store != nil))
	return srv.Start(ctx)
}
