package feed

import (
	"time"
)

// Snapshot is one in-memory pull of the remote feed. Entries keep the exact
// feed order; callers needing a consistent view across lookups reuse the
// same snapshot instead of pulling again.
type Snapshot struct {
	Title       string
	Link        string
	Description string
	Language    string
	Entries     []Entry
}

// Entry is one feed item as delivered by the source. Immutable after the
// pull; the zero value of every field means "absent".
type Entry struct {
	Title       string
	Link        string
	GUID        string
	Content     string
	Summary     string
	Description string
	PublishedAt *time.Time
	Published   string // raw published string as it appeared in the feed
	Updated     string // raw updated string, fallback for Published
}

// Record is the canonical content unit passed downstream. Content is always
// a string (possibly empty), never absent; GUID is non-empty whenever the
// source entry carried an id or a link.
type Record struct {
	Title   string
	Link    string
	GUID    string
	Content string
	PubDate string
}
