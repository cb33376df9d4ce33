package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tomatolab/ai-daily/app/analyzer"
	"github.com/tomatolab/ai-daily/app/feed"
)

type stubSource struct {
	snapshot *feed.Snapshot
	err      error
}

func (s *stubSource) Pull(ctx context.Context) (*feed.Snapshot, error) {
	return s.snapshot, s.err
}

type stubResolver struct {
	record *feed.Record
	found  bool
	err    error
}

func (s *stubResolver) Locate(snapshot *feed.Snapshot, targetDate string) (*feed.Record, bool, error) {
	return s.record, s.found, s.err
}

func (s *stubResolver) LatestAvailableDate(snapshot *feed.Snapshot) string { return "2024-03-09" }

func (s *stubResolver) AvailableDateRange(snapshot *feed.Snapshot) (string, string) {
	return "2024-02-01", "2024-03-09"
}

type stubClassifier struct {
	result *analyzer.Classification
	err    error
	calls  int
}

func (s *stubClassifier) Run(ctx context.Context, record *feed.Record, targetDate, lang string) (*analyzer.Classification, error) {
	s.calls++
	return s.result, s.err
}

type stubBuilder struct {
	dailyCalls int
	emptyCalls int
	emptyMsg   string
	dailyErr   error
}

func (s *stubBuilder) BuildDaily(result *analyzer.Classification) (string, error) {
	s.dailyCalls++
	if s.dailyErr != nil {
		return "", s.dailyErr
	}
	return "/tmp/out/2024-03-10-zh.html", nil
}

func (s *stubBuilder) BuildEmpty(date, msg, lang string) (string, error) {
	s.emptyCalls++
	s.emptyMsg = msg
	return "/tmp/out/2024-03-10-zh.html", nil
}

type stubNotifier struct {
	successCount int
	successItems int
	emptyCount   int
	failureCount int
	failureMsg   string
}

func (s *stubNotifier) NotifySuccess(day string, count int) error {
	s.successCount++
	s.successItems = count
	return nil
}

func (s *stubNotifier) NotifyEmpty(day, reason string) error {
	s.emptyCount++
	return nil
}

func (s *stubNotifier) NotifyFailure(day, errMsg string) error {
	s.failureCount++
	s.failureMsg = errMsg
	return nil
}

type stubExporter struct {
	enabled bool
	err     error
	runs    int
}

func (s *stubExporter) Enabled() bool { return s.enabled }

func (s *stubExporter) OutputPath(htmlPath string) string { return htmlPath + ".png" }

func (s *stubExporter) Run(ctx context.Context, htmlPath, outPath string) error {
	s.runs++
	return s.err
}

func testSnapshot() *feed.Snapshot {
	return &feed.Snapshot{
		Title: "AI Daily",
		Entries: []feed.Entry{
			{Title: "Issue 2024-03-10", Link: "https://example.org/issues/24-03-10-daily"},
		},
	}
}

func testRecord() *feed.Record {
	return &feed.Record{
		Title:   "Issue 2024-03-10",
		Link:    "https://example.org/issues/24-03-10-daily",
		Content: "<p>model releases and funding news</p>",
	}
}

func testClassification(itemsPerCategory ...int) *analyzer.Classification {
	result := &analyzer.Classification{
		Status: analyzer.StatusSuccess,
		Date:   "2024-03-10",
		Lang:   "zh",
		Theme:  "blue",
	}
	for i, n := range itemsPerCategory {
		cat := analyzer.Category{Key: fmt.Sprintf("cat%d", i), Name: fmt.Sprintf("Category %d", i)}
		for j := 0; j < n; j++ {
			cat.Items = append(cat.Items, analyzer.Item{Title: fmt.Sprintf("item %d-%d", i, j)})
		}
		result.Categories = append(result.Categories, cat)
	}
	return result
}

func TestRunPublished(t *testing.T) {
	builder := &stubBuilder{}
	notifier := &stubNotifier{}
	exporter := &stubExporter{enabled: true}
	runner := NewRunner(
		&stubSource{snapshot: testSnapshot()},
		&stubResolver{record: testRecord(), found: true},
		&stubClassifier{result: testClassification(3, 1)},
		builder, notifier, exporter,
	)

	outcome := runner.Run(context.Background(), "2024-03-10", "zh")

	if outcome.Status != StatusPublished {
		t.Fatalf("outcome status = %q, want %q (err: %v)", outcome.Status, StatusPublished, outcome.Err)
	}
	if outcome.ItemCount != 4 {
		t.Errorf("outcome item count = %d, want 4", outcome.ItemCount)
	}
	if builder.dailyCalls != 1 {
		t.Errorf("BuildDaily called %d times, want 1", builder.dailyCalls)
	}
	if notifier.successCount != 1 || notifier.successItems != 4 {
		t.Errorf("success notification calls = %d with %d items, want 1 with 4",
			notifier.successCount, notifier.successItems)
	}
	if exporter.runs != 1 {
		t.Errorf("exporter ran %d times, want 1", exporter.runs)
	}
	if outcome.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", outcome.ExitCode())
	}
}

func TestRunEmptyWhenNoEntryMatches(t *testing.T) {
	builder := &stubBuilder{}
	notifier := &stubNotifier{}
	classifier := &stubClassifier{}
	runner := NewRunner(
		&stubSource{snapshot: testSnapshot()},
		&stubResolver{found: false},
		classifier, builder, notifier, &stubExporter{},
	)

	outcome := runner.Run(context.Background(), "2099-01-01", "zh")

	if outcome.Status != StatusEmpty {
		t.Fatalf("outcome status = %q, want %q", outcome.Status, StatusEmpty)
	}
	if outcome.Reason != "no matching feed entry" {
		t.Errorf("outcome reason = %q, want %q", outcome.Reason, "no matching feed entry")
	}
	if classifier.calls != 0 {
		t.Errorf("classifier called %d times on a missing entry, want 0", classifier.calls)
	}
	if builder.emptyCalls != 1 {
		t.Errorf("BuildEmpty called %d times, want 1", builder.emptyCalls)
	}
	if notifier.emptyCount != 1 {
		t.Errorf("empty notification calls = %d, want 1", notifier.emptyCount)
	}
	if outcome.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d for empty day, want 0", outcome.ExitCode())
	}
}

func TestRunEmptyClassification(t *testing.T) {
	builder := &stubBuilder{}
	notifier := &stubNotifier{}
	runner := NewRunner(
		&stubSource{snapshot: testSnapshot()},
		&stubResolver{record: testRecord(), found: true},
		&stubClassifier{result: &analyzer.Classification{
			Status: analyzer.StatusEmpty,
			Reason: "entry has no content",
		}},
		builder, notifier, &stubExporter{},
	)

	outcome := runner.Run(context.Background(), "2024-03-10", "zh")

	if outcome.Status != StatusEmpty {
		t.Fatalf("outcome status = %q, want %q", outcome.Status, StatusEmpty)
	}
	if builder.emptyCalls != 1 || builder.emptyMsg != "entry has no content" {
		t.Errorf("BuildEmpty calls = %d with msg %q, want 1 with %q",
			builder.emptyCalls, builder.emptyMsg, "entry has no content")
	}
	if builder.dailyCalls != 0 {
		t.Errorf("BuildDaily called %d times for an empty day, want 0", builder.dailyCalls)
	}
}

func TestRunFailedOnOracleError(t *testing.T) {
	notifier := &stubNotifier{}
	oracleErr := fmt.Errorf("%w: upstream returned 429", analyzer.ErrOracle)
	runner := NewRunner(
		&stubSource{snapshot: testSnapshot()},
		&stubResolver{record: testRecord(), found: true},
		&stubClassifier{err: oracleErr},
		&stubBuilder{}, notifier, &stubExporter{},
	)

	outcome := runner.Run(context.Background(), "2024-03-10", "zh")

	if outcome.Status != StatusFailed {
		t.Fatalf("outcome status = %q, want %q", outcome.Status, StatusFailed)
	}
	if !errors.Is(outcome.Err, analyzer.ErrOracle) {
		t.Errorf("outcome error = %v, want to wrap the oracle error", outcome.Err)
	}
	if notifier.failureCount != 1 {
		t.Errorf("failure notification calls = %d, want 1", notifier.failureCount)
	}
	if outcome.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d for failed run, want 1", outcome.ExitCode())
	}
}

func TestRunFailedOnFetchError(t *testing.T) {
	notifier := &stubNotifier{}
	fetchErr := fmt.Errorf("%w: connection refused", feed.ErrFetch)
	runner := NewRunner(
		&stubSource{err: fetchErr},
		&stubResolver{}, &stubClassifier{}, &stubBuilder{}, notifier, &stubExporter{},
	)

	outcome := runner.Run(context.Background(), "2024-03-10", "zh")

	if outcome.Status != StatusFailed {
		t.Fatalf("outcome status = %q, want %q", outcome.Status, StatusFailed)
	}
	if !errors.Is(outcome.Err, feed.ErrFetch) {
		t.Errorf("outcome error = %v, want to wrap the fetch error", outcome.Err)
	}
	if notifier.failureMsg == "" {
		t.Error("failure notification carried no error message")
	}
}

func TestCaptureFailureDoesNotChangeOutcome(t *testing.T) {
	exporter := &stubExporter{enabled: true, err: errors.New("chromium exited with status 1")}
	runner := NewRunner(
		&stubSource{snapshot: testSnapshot()},
		&stubResolver{record: testRecord(), found: true},
		&stubClassifier{result: testClassification(2)},
		&stubBuilder{}, &stubNotifier{}, exporter,
	)

	outcome := runner.Run(context.Background(), "2024-03-10", "zh")

	if outcome.Status != StatusPublished {
		t.Fatalf("outcome status = %q after capture failure, want %q", outcome.Status, StatusPublished)
	}
	if exporter.runs != 1 {
		t.Errorf("exporter ran %d times, want 1", exporter.runs)
	}
}

func TestCaptureSkippedWhenDisabled(t *testing.T) {
	exporter := &stubExporter{enabled: false}
	runner := NewRunner(
		&stubSource{snapshot: testSnapshot()},
		&stubResolver{record: testRecord(), found: true},
		&stubClassifier{result: testClassification(1)},
		&stubBuilder{}, &stubNotifier{}, exporter,
	)

	outcome := runner.Run(context.Background(), "2024-03-10", "zh")

	if outcome.Status != StatusPublished {
		t.Fatalf("outcome status = %q, want %q", outcome.Status, StatusPublished)
	}
	if exporter.runs != 0 {
		t.Errorf("exporter ran %d times while disabled, want 0", exporter.runs)
	}
}
