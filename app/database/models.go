package database

import "time"

// Run records a single pipeline execution.
type Run struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Language  string    `json:"language"`
	Outcome   string    `json:"outcome"`
	ItemCount int       `json:"item_count"`
	Detail    string    `json:"detail"`
	Duration  int64     `json:"duration_ms"`
	CreatedAt time.Time `json:"created_at"`
}

// OutcomeStats aggregates run counts per terminal outcome.
type OutcomeStats struct {
	Published int `json:"published"`
	Empty     int `json:"empty"`
	Failed    int `json:"failed"`
}
