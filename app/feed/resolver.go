package feed

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// urlDatePatterns match dated issue paths like /issues/24-03-10-daily and
// /issues/2024-03-10-daily. The two-digit form is tried first; two-digit
// years expand as 20YY.
var urlDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`/issues/(\d{2})-(\d{2})-(\d{2})-`),
	regexp.MustCompile(`/issues/(\d{4})-(\d{2})-(\d{2})-`),
}

// Resolver selects the feed entry matching a target calendar day and
// normalizes it into a canonical content record.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Locate scans the snapshot in feed order and returns the canonical record
// for the first entry matching targetDate, either by the UTC calendar date
// of its publish timestamp or by a date encoded in its link path. The
// timestamp rule is checked before the URL rule for each entry, but the scan
// across entries is strictly sequential: an earlier entry matching only by
// URL wins over a later entry matching by timestamp. A miss is a normal
// negative result, not an error.
func (r *Resolver) Locate(snapshot *Snapshot, targetDate string) (*Record, bool, error) {
	target, err := time.Parse("2006-01-02", targetDate)
	if err != nil {
		return nil, false, fmt.Errorf("date format mismatch: %s (use YYYY-MM-DD)", targetDate)
	}

	for _, entry := range snapshot.Entries {
		if entry.PublishedAt != nil && sameCalendarDay(entry.PublishedAt.UTC(), target) {
			rec := buildRecord(entry)
			return &rec, true, nil
		}

		if extracted := ExtractURLDate(entry.Link); extracted == targetDate {
			rec := buildRecord(entry)
			return &rec, true, nil
		}
	}

	slog.Debug("No entry matched target date", "target", targetDate, "entries", len(snapshot.Entries))
	return nil, false, nil
}

// LatestAvailableDate returns the date of the first entry in feed order,
// preferring the date encoded in its link over its parsed timestamp.
// Returns "" when the feed is empty or the entry yields no date.
func (r *Resolver) LatestAvailableDate(snapshot *Snapshot) string {
	if len(snapshot.Entries) == 0 {
		return ""
	}

	top := snapshot.Entries[0]
	if d := ExtractURLDate(top.Link); d != "" {
		return d
	}
	if top.PublishedAt != nil {
		return top.PublishedAt.UTC().Format("2006-01-02")
	}
	return ""
}

// AvailableDateRange returns the minimum and maximum dates extractable from
// entry links across the whole snapshot, or ("", "") when none exist.
func (r *Resolver) AvailableDateRange(snapshot *Snapshot) (string, string) {
	var earliest, latest string
	for _, entry := range snapshot.Entries {
		d := ExtractURLDate(entry.Link)
		if d == "" {
			continue
		}
		if earliest == "" || d < earliest {
			earliest = d
		}
		if latest == "" || d > latest {
			latest = d
		}
	}
	return earliest, latest
}

// ExtractURLDate pulls a YYYY-MM-DD date out of a dated issue link, or ""
// when the link carries none.
func ExtractURLDate(link string) string {
	for _, pattern := range urlDatePatterns {
		m := pattern.FindStringSubmatch(link)
		if m == nil {
			continue
		}
		year := m[1]
		if len(year) == 2 {
			year = "20" + year
		}
		return fmt.Sprintf("%s-%s-%s", year, m[2], m[3])
	}
	return ""
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// buildRecord normalizes a matched entry. Content follows the ordered
// precedence content > summary > description, then the three entities
// &lt; &gt; &amp; are unescaped in that fixed order.
func buildRecord(entry Entry) Record {
	return Record{
		Title:   entry.Title,
		Link:    entry.Link,
		GUID:    FirstNonEmpty(entry.GUID, entry.Link),
		Content: UnescapeEntities(FirstNonEmpty(entry.Content, entry.Summary, entry.Description)),
		PubDate: FirstNonEmpty(entry.Published, entry.Updated),
	}
}

// FirstNonEmpty returns the first non-empty candidate, or "".
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// UnescapeEntities decodes exactly &lt;, &gt; and &amp;, in that order,
// one sequential pass each. Not a general HTML entity decoder.
func UnescapeEntities(s string) string {
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&amp;", "&")
	return s
}
