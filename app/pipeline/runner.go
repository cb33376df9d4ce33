package pipeline

import (
	"context"
	"log/slog"

	"github.com/tomatolab/ai-daily/app/analyzer"
	"github.com/tomatolab/ai-daily/app/feed"
)

// FeedSource pulls the upstream feed.
type FeedSource interface {
	Pull(ctx context.Context) (*feed.Snapshot, error)
}

// EntryResolver locates the entry for a calendar day within a snapshot.
type EntryResolver interface {
	Locate(snapshot *feed.Snapshot, targetDate string) (*feed.Record, bool, error)
	LatestAvailableDate(snapshot *feed.Snapshot) string
	AvailableDateRange(snapshot *feed.Snapshot) (string, string)
}

// Classifier turns a raw feed record into a structured classification.
type Classifier interface {
	Run(ctx context.Context, record *feed.Record, targetDate, lang string) (*analyzer.Classification, error)
}

// ReportBuilder renders report pages and maintains the archive index.
type ReportBuilder interface {
	BuildDaily(result *analyzer.Classification) (string, error)
	BuildEmpty(date, msg, lang string) (string, error)
}

// Notifier delivers the run result by mail. Implementations may be
// unconfigured, in which case delivery is a no-op.
type Notifier interface {
	NotifySuccess(day string, count int) error
	NotifyEmpty(day, reason string) error
	NotifyFailure(day, errMsg string) error
}

// Capturer renders a report page to an image or document.
type Capturer interface {
	Enabled() bool
	OutputPath(htmlPath string) string
	Run(ctx context.Context, htmlPath, outPath string) error
}

// Runner executes one end-to-end pipeline run for a single day.
type Runner struct {
	source   FeedSource
	resolver EntryResolver
	analyzer Classifier
	builder  ReportBuilder
	notifier Notifier
	exporter Capturer
}

func NewRunner(source FeedSource, resolver EntryResolver, classifier Classifier, builder ReportBuilder, notifier Notifier, exporter Capturer) *Runner {
	return &Runner{
		source:   source,
		resolver: resolver,
		analyzer: classifier,
		builder:  builder,
		notifier: notifier,
		exporter: exporter,
	}
}

// Run walks the stages in order: pull the feed, locate the entry for the
// target day, classify it, render the report, capture and notify. Stages
// after rendering are best-effort and never change the outcome.
func (r *Runner) Run(ctx context.Context, targetDate, lang string) Outcome {
	slog.Info("Pipeline run started", "date", targetDate, "lang", lang)

	snapshot, err := r.source.Pull(ctx)
	if err != nil {
		return r.fail(targetDate, err)
	}
	slog.Debug("Feed pulled", "title", snapshot.Title, "entries", len(snapshot.Entries))

	record, found, err := r.resolver.Locate(snapshot, targetDate)
	if err != nil {
		return r.fail(targetDate, err)
	}
	if !found {
		earliest, latest := r.resolver.AvailableDateRange(snapshot)
		slog.Info("No entry for target day", "date", targetDate,
			"latest_available", r.resolver.LatestAvailableDate(snapshot),
			"range_start", earliest, "range_end", latest)
		return r.finishEmpty(targetDate, lang, "no matching feed entry")
	}
	slog.Debug("Entry located", "title", record.Title, "link", record.Link)

	result, err := r.analyzer.Run(ctx, record, targetDate, lang)
	if err != nil {
		return r.fail(targetDate, err)
	}
	if result.Status == analyzer.StatusEmpty {
		reason := result.Reason
		if reason == "" {
			reason = "no content for this day"
		}
		return r.finishEmpty(targetDate, lang, reason)
	}

	htmlPath, err := r.builder.BuildDaily(result)
	if err != nil {
		return r.fail(targetDate, err)
	}
	slog.Info("Report written", "path", htmlPath, "items", result.ItemCount())

	r.capture(ctx, htmlPath)

	if err := r.notifier.NotifySuccess(targetDate, result.ItemCount()); err != nil {
		slog.Warn("Success notification failed", "error", err)
	}

	return published(targetDate, result.ItemCount())
}

func (r *Runner) finishEmpty(targetDate, lang, reason string) Outcome {
	if _, err := r.builder.BuildEmpty(targetDate, reason, lang); err != nil {
		return r.fail(targetDate, err)
	}
	if err := r.notifier.NotifyEmpty(targetDate, reason); err != nil {
		slog.Warn("Empty-day notification failed", "error", err)
	}
	return empty(targetDate, reason)
}

func (r *Runner) fail(targetDate string, err error) Outcome {
	slog.Error("Pipeline run failed", "date", targetDate, "error", err)
	if notifyErr := r.notifier.NotifyFailure(targetDate, err.Error()); notifyErr != nil {
		slog.Warn("Failure notification failed", "error", notifyErr)
	}
	return failed(targetDate, err)
}

func (r *Runner) capture(ctx context.Context, htmlPath string) {
	if r.exporter == nil || !r.exporter.Enabled() {
		return
	}
	outPath := r.exporter.OutputPath(htmlPath)
	if err := r.exporter.Run(ctx, htmlPath, outPath); err != nil {
		slog.Warn("Page capture failed", "path", htmlPath, "error", err)
		return
	}
	slog.Info("Page captured", "output", outPath)
}
