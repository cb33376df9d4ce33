package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tomatolab/ai-daily/app/analyzer"
	"github.com/tomatolab/ai-daily/app/api"
	"github.com/tomatolab/ai-daily/app/cfg"
	"github.com/tomatolab/ai-daily/app/database"
	"github.com/tomatolab/ai-daily/app/export"
	"github.com/tomatolab/ai-daily/app/feed"
	"github.com/tomatolab/ai-daily/app/notify"
	"github.com/tomatolab/ai-daily/app/pipeline"
	"github.com/tomatolab/ai-daily/app/report"
	"github.com/tomatolab/ai-daily/app/site"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Local development convenience, absent files are fine
	_ = godotenv.Load()

	c, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if c == nil {
		// Help was requested
		return 0
	}

	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	siteConfig, err := site.Load(c.SiteDir)
	if err != nil {
		slog.Error("Failed to load site configuration", "dir", c.SiteDir, "error", err)
		return 1
	}
	slog.Info("Starting", "version", c.Version, "categories", len(siteConfig.Categories))

	if c.Serve {
		return serve(c, siteConfig)
	}
	return runPipeline(c, siteConfig)
}

func runPipeline(c *cfg.Cfg, siteConfig *site.Site) int {
	if c.FeedURL == "" {
		slog.Error("No feed URL configured, set RSS_URL or --feed-url")
		return 1
	}

	targetDate := c.TargetDate(time.Now())
	notifier := notify.NewNotifier(c.SMTPHost, c.SMTPPort, c.SMTPUser, c.SMTPPass, c.NotifyTo, c.PagesURL, c.Language)

	runs := openRunHistory(c.HistoryDB)

	builder, err := report.NewBuilder(c.OutputDir, siteConfig)
	if err != nil {
		slog.Error("Failed to prepare output directory", "dir", c.OutputDir, "error", err)
		return 1
	}
	if err := builder.WriteStyles(); err != nil {
		slog.Error("Failed to write stylesheet", "error", err)
		return 1
	}

	oracle, err := analyzer.NewAnalyzer(c.APIBaseURL, c.APIKey, c.Model, c.MaxTokens, siteConfig, nil)
	if err != nil {
		slog.Error("Analyzer unavailable", "error", err)
		if notifyErr := notifier.NotifyFailure(targetDate, err.Error()); notifyErr != nil {
			slog.Warn("Failure notification failed", "error", notifyErr)
		}
		recordRun(runs, database.Run{
			Date: targetDate, Language: c.Language,
			Outcome: string(pipeline.StatusFailed), Detail: err.Error(),
		})
		return 1
	}

	source := feed.NewSource(c.FeedURL, time.Duration(c.FeedTimeout)*time.Second, c.UserAgent, nil)
	runner := pipeline.NewRunner(
		source,
		feed.NewResolver(),
		oracle,
		builder,
		notifier,
		export.NewExporter(c.BrowserBin, c.ExportFormat),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	outcome := runner.Run(ctx, targetDate, c.Language)

	recordRun(runs, database.Run{
		Date:      outcome.Date,
		Language:  c.Language,
		Outcome:   string(outcome.Status),
		ItemCount: outcome.ItemCount,
		Detail:    outcome.Detail(),
		Duration:  time.Since(start).Milliseconds(),
	})

	slog.Info("Pipeline run finished", "date", outcome.Date, "outcome", outcome.Status,
		"items", outcome.ItemCount, "duration", time.Since(start).Round(time.Millisecond))

	return outcome.ExitCode()
}

// openRunHistory opens the run-history store. History is auxiliary: when the
// database cannot be opened the pipeline still runs, it just records nothing.
func openRunHistory(path string) *database.RunRepository {
	if path == "" {
		return nil
	}

	db, err := database.NewConnection(path)
	if err != nil {
		slog.Warn("Run history unavailable", "path", path, "error", err)
		return nil
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Warn("Run history migrations failed", "path", path, "error", err)
		db.Close()
		return nil
	}
	slog.Debug("Run history ready", "path", path, "schema_version", version, "dirty", dirty)

	return database.NewRunRepository(db)
}

func recordRun(runs *database.RunRepository, run database.Run) {
	if runs == nil {
		return
	}
	if _, err := runs.RecordRun(run); err != nil {
		slog.Warn("Failed to record run", "date", run.Date, "error", err)
	}
}

func serve(c *cfg.Cfg, siteConfig *site.Site) int {
	historyPath := c.HistoryDB
	if historyPath == "" {
		historyPath = ":memory:"
	}

	db, err := database.NewConnection(historyPath)
	if err != nil {
		slog.Error("Failed to open run history", "path", historyPath, "error", err)
		return 1
	}
	defer db.Close()

	if _, _, err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run migrations", "path", historyPath, "error", err)
		return 1
	}

	builder, err := report.NewBuilder(c.OutputDir, siteConfig)
	if err != nil {
		slog.Error("Failed to prepare output directory", "dir", c.OutputDir, "error", err)
		return 1
	}
	if err := builder.WriteStyles(); err != nil {
		slog.Error("Failed to write stylesheet", "error", err)
		return 1
	}

	handler := api.NewHandler(database.NewRunRepository(db), siteConfig)
	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      api.NewServer(handler, c.OutputDir),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Preview server started", "port", c.Port, "reports", c.OutputDir)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
		return 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		return 1
	}
	slog.Info("Server stopped")

	return 0
}
