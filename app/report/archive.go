package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tomatolab/ai-daily/app/analyzer"
)

const (
	logFileName   = ".index.json"
	maxLogEntries = 50
	summaryMaxLen = 120
)

// LogEntry is one archived run in the bounded JSON log.
type LogEntry struct {
	Date    string `json:"date"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
	Lang    string `json:"lang"`
	TS      string `json:"ts"`
}

// SyncIndex merges the run for one date into the archive log and rebuilds
// index.html from it. Best-effort overwrite, no transactional guarantee.
func (b *Builder) SyncIndex(date string, result *analyzer.Classification, lang string) error {
	entries := b.readLog()

	summary := ""
	if len(result.Summary) > 0 {
		summary = result.Summary[0]
	}

	entry := LogEntry{
		Date:    date,
		URL:     fmt.Sprintf("%s-%s.html", date, lang),
		Summary: truncateSummary(summary, summaryMaxLen),
		Lang:    lang,
		TS:      time.Now().UTC().Format(time.RFC3339),
	}

	entries = MergeLog(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode archive log: %w", err)
	}
	if err := os.WriteFile(filepath.Join(b.root, logFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write archive log: %w", err)
	}

	if err := b.writeIndexPage(entries, lang); err != nil {
		return err
	}

	slog.Info("Archive updated", "entries", len(entries), "date", date)
	return nil
}

// MergeLog inserts entry at the front, removing any prior entry for the same
// date, and caps the log at its bound. The newest run for a date wins.
func MergeLog(entries []LogEntry, entry LogEntry) []LogEntry {
	merged := make([]LogEntry, 0, len(entries)+1)
	merged = append(merged, entry)
	for _, e := range entries {
		if e.Date == entry.Date {
			continue
		}
		merged = append(merged, e)
	}
	if len(merged) > maxLogEntries {
		merged = merged[:maxLogEntries]
	}
	return merged
}

func (b *Builder) readLog() []LogEntry {
	data, err := os.ReadFile(filepath.Join(b.root, logFileName))
	if err != nil {
		return nil
	}

	var entries []LogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Warn("Archive log unreadable, starting fresh", "error", err)
		return nil
	}
	return entries
}

func (b *Builder) writeIndexPage(entries []LogEntry, lang string) error {
	ui := b.site.Strings(lang)

	var buf bytes.Buffer
	b.writeHead(&buf, lang, ui.Title+" - Archive", "")
	buf.WriteString("<body>\n    <div class=\"container\">\n")
	buf.WriteString("        <header class=\"header\">\n")
	buf.WriteString("            <div class=\"logo-icon\">🍅</div>\n")
	fmt.Fprintf(&buf, "            <h1>%s</h1>\n", html.EscapeString(ui.Title))
	fmt.Fprintf(&buf, "            <p class=\"subtitle\">%s</p>\n", html.EscapeString(ui.Subtitle))
	buf.WriteString("        </header>\n")
	buf.WriteString("        <main class=\"main-content\">\n            <div class=\"index-entries\">\n")

	for _, e := range entries {
		entryLang := e.Lang
		if entryLang == "" {
			entryLang = "zh"
		}
		buf.WriteString("                <article class=\"index-entry\">\n")
		fmt.Fprintf(&buf, "                    <a href=\"%s\" class=\"entry-link\">\n", html.EscapeString(e.URL))
		fmt.Fprintf(&buf, "                        <span class=\"entry-date\">%s</span>\n", html.EscapeString(b.site.PrettyDate(e.Date, entryLang)))
		fmt.Fprintf(&buf, "                        <p class=\"entry-summary\">%s</p>\n", html.EscapeString(e.Summary))
		buf.WriteString("                    </a>\n                </article>\n")
	}

	buf.WriteString("            </div>\n        </main>\n    </div>\n</body>\n</html>\n")

	if err := os.WriteFile(filepath.Join(b.root, "index.html"), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write archive index: %w", err)
	}
	return nil
}

func truncateSummary(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
