package cfg

import (
	"testing"
	"time"
)

func TestValidateDate(t *testing.T) {
	tests := []struct {
		date    string
		wantErr bool
	}{
		{"2024-03-10", false},
		{"2024-12-31", false},
		{"2024-13-01", true},
		{"2024-02-30", true},
		{"24-03-10", true},
		{"2024/03/10", true},
		{"not-a-date", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateDate(tt.date)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
		}
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"zh", "zh", false},
		{"en", "en", false},
		{"zh-CN", "zh", false},
		{"en-US", "en", false},
		{"English", "", true},
		{"klingon", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeLanguage(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeLanguage(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestTargetDate(t *testing.T) {
	now := time.Date(2024, 3, 11, 8, 30, 0, 0, time.UTC)

	c := &Cfg{Days: 1}
	if got := c.TargetDate(now); got != "2024-03-10" {
		t.Errorf("TargetDate() with one-day lookback = %q, want 2024-03-10", got)
	}

	c = &Cfg{Days: 3}
	if got := c.TargetDate(now); got != "2024-03-08" {
		t.Errorf("TargetDate() with three-day lookback = %q, want 2024-03-08", got)
	}

	c = &Cfg{Days: 1, Date: "2024-01-05"}
	if got := c.TargetDate(now); got != "2024-01-05" {
		t.Errorf("TargetDate() with explicit date = %q, want 2024-01-05", got)
	}

	// Lookback works from the UTC date even when local time is ahead of it.
	local := time.Date(2024, 4, 1, 1, 0, 0, 0, time.FixedZone("UTC+8", 8*3600))
	c = &Cfg{Days: 1}
	if got := c.TargetDate(local); got != "2024-03-30" {
		t.Errorf("TargetDate() across month boundary = %q, want 2024-03-30", got)
	}
}
