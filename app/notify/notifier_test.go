package notify

import (
	"net/smtp"
	"strings"
	"testing"
)

func TestReady(t *testing.T) {
	tests := []struct {
		name     string
		notifier *Notifier
		want     bool
	}{
		{"complete", NewNotifier("smtp.example.com", "587", "bot@example.com", "secret", "ops@example.com", "", "zh"), true},
		{"missing host", NewNotifier("", "587", "bot@example.com", "secret", "ops@example.com", "", "zh"), false},
		{"missing sender", NewNotifier("smtp.example.com", "587", "", "secret", "ops@example.com", "", "zh"), false},
		{"missing password", NewNotifier("smtp.example.com", "587", "bot@example.com", "", "ops@example.com", "", "zh"), false},
		{"missing recipient", NewNotifier("smtp.example.com", "587", "bot@example.com", "secret", "", "", "zh"), false},
	}

	for _, tt := range tests {
		if got := tt.notifier.Ready(); got != tt.want {
			t.Errorf("%s: Ready() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDispatchSkippedWhenNotReady(t *testing.T) {
	n := NewNotifier("", "", "", "", "", "", "zh")
	n.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		t.Fatal("Expected no send attempt")
		return nil
	}

	if err := n.NotifySuccess("2024-03-10", 4); err != nil {
		t.Errorf("Expected skipped dispatch to be a no-op, got: %v", err)
	}
}

func TestNotifySuccessMessage(t *testing.T) {
	n := NewNotifier("smtp.example.com", "587", "bot@example.com", "secret", "ops@example.com", "https://tomatolab.github.io/daily/", "zh")

	var sentAddr, sentFrom string
	var sentTo []string
	var sentMsg []byte
	n.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		sentAddr, sentFrom, sentTo, sentMsg = addr, from, to, msg
		return nil
	}

	if err := n.NotifySuccess("2024-03-10", 4); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if sentAddr != "smtp.example.com:587" {
		t.Errorf("Unexpected SMTP address: %s", sentAddr)
	}
	if sentFrom != "bot@example.com" {
		t.Errorf("Unexpected sender: %s", sentFrom)
	}
	if len(sentTo) != 1 || sentTo[0] != "ops@example.com" {
		t.Errorf("Unexpected recipients: %v", sentTo)
	}

	msg := string(sentMsg)
	if !strings.Contains(msg, "Subject: ✅ Daily Ready - 2024-03-10") {
		t.Error("Expected subject header")
	}
	if !strings.Contains(msg, "Content-Type: text/html") {
		t.Error("Expected HTML content type")
	}
	if !strings.Contains(msg, "Total items: <strong>4</strong>") {
		t.Error("Expected item count in body")
	}
	if !strings.Contains(msg, "https://tomatolab.github.io/daily/2024-03-10-zh.html") {
		t.Error("Expected report link built from pages URL")
	}
}

func TestNotifyFailureEscapesError(t *testing.T) {
	n := NewNotifier("smtp.example.com", "587", "bot@example.com", "secret", "ops@example.com", "", "zh")

	var sentMsg []byte
	n.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		sentMsg = msg
		return nil
	}

	if err := n.NotifyFailure("2024-03-10", "boom: <nil> & panic"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(string(sentMsg), "boom: &lt;nil&gt; &amp; panic") {
		t.Error("Expected error detail to be HTML-escaped")
	}
}

func TestReportLinkMatchesPageName(t *testing.T) {
	n := NewNotifier("h", "587", "s", "p", "r", "", "zh")
	if got := n.reportLink("2024-03-10"); got != "2024-03-10-zh.html" {
		t.Errorf("Expected bare page name fallback, got: %s", got)
	}

	n.pagesURL = "https://example.com/daily"
	if got := n.reportLink("2024-03-10"); got != "https://example.com/daily/2024-03-10-zh.html" {
		t.Errorf("Unexpected report link: %s", got)
	}

	en := NewNotifier("h", "587", "s", "p", "r", "https://example.com/daily", "en")
	if got := en.reportLink("2024-03-10"); got != "https://example.com/daily/2024-03-10-en.html" {
		t.Errorf("Unexpected English report link: %s", got)
	}
}

func TestCILogURL(t *testing.T) {
	n := NewNotifier("h", "587", "s", "p", "r", "", "zh")
	n.repo = "tomatolab/ai-daily"
	n.runID = "12345"
	n.serverURL = "https://github.com"

	if got := n.ciLogURL(); got != "https://github.com/tomatolab/ai-daily/actions/runs/12345" {
		t.Errorf("Unexpected CI log URL: %s", got)
	}

	n.runID = ""
	if got := n.ciLogURL(); got != "" {
		t.Errorf("Expected empty URL without run id, got: %s", got)
	}
}
