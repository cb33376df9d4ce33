package site

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(s.Categories) != 6 {
		t.Errorf("Expected 6 default categories, got: %d", len(s.Categories))
	}
	if s.DefaultTheme != "blue" {
		t.Errorf("Expected default theme 'blue', got: %s", s.DefaultTheme)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	config := `
default_theme: dark
fixed_theme: dark
themes:
  - key: dark
    name: Dark
    description: dark mode
categories:
  - key: model
    name: Models
    icon: "🤖"
    description: model news
`
	if err := os.WriteFile(filepath.Join(dir, "site.yml"), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(dir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if s.FixedTheme != "dark" {
		t.Errorf("Expected fixed theme 'dark', got: %s", s.FixedTheme)
	}
	if len(s.Themes) != 1 {
		t.Errorf("Expected 1 theme after overlay, got: %d", len(s.Themes))
	}
}

func TestLoadRejectsUnknownDefaultTheme(t *testing.T) {
	dir := t.TempDir()
	config := "default_theme: nonexistent\n"
	if err := os.WriteFile(filepath.Join(dir, "site.yml"), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("Expected an error for unknown default theme")
	}
}

func TestResolveTheme(t *testing.T) {
	s := Defaults()

	if got := s.ResolveTheme("dark"); got != "dark" {
		t.Errorf("Expected known theme to pass through, got: %s", got)
	}
	if got := s.ResolveTheme("neon"); got != "blue" {
		t.Errorf("Expected fallback to default, got: %s", got)
	}

	s.FixedTheme = "warm"
	if got := s.ResolveTheme("dark"); got != "warm" {
		t.Errorf("Expected fixed theme to override, got: %s", got)
	}
}

func TestPrettyDate(t *testing.T) {
	s := Defaults()

	// 2024-03-10 was a Sunday.
	if got := s.PrettyDate("2024-03-10", "zh"); got != "2024年03月10日 星期日" {
		t.Errorf("Unexpected zh date: %s", got)
	}
	if got := s.PrettyDate("2024-03-10", "en"); got != "Sunday, March 10, 2024" {
		t.Errorf("Unexpected en date: %s", got)
	}
	if got := s.PrettyDate("not-a-date", "en"); got != "not-a-date" {
		t.Errorf("Expected passthrough for unparsable date, got: %s", got)
	}
}
