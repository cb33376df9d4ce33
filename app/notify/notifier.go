package notify

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"os"
	"strings"
	"time"
)

// Notifier sends pipeline outcome alerts by email. It is ready only when
// host, sender, password and recipient are all configured; dispatch is a
// logged no-op otherwise.
type Notifier struct {
	host      string
	port      string
	sender    string
	password  string
	recipient string
	pagesURL  string
	lang      string

	// CI context, filled from the environment when running under GitHub Actions
	repo      string
	runID     string
	serverURL string

	send sendFunc
}

type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

func NewNotifier(host, port, sender, password, recipient, pagesURL, lang string) *Notifier {
	if lang == "" {
		lang = "zh"
	}

	serverURL := os.Getenv("GITHUB_SERVER_URL")
	if serverURL == "" {
		serverURL = "https://github.com"
	}

	return &Notifier{
		host:      host,
		port:      port,
		sender:    sender,
		password:  password,
		recipient: recipient,
		pagesURL:  pagesURL,
		lang:      lang,
		repo:      os.Getenv("GITHUB_REPOSITORY"),
		runID:     os.Getenv("GITHUB_RUN_ID"),
		serverURL: serverURL,
		send:      smtp.SendMail,
	}
}

// Ready reports whether the SMTP configuration is complete.
func (n *Notifier) Ready() bool {
	return n.host != "" && n.sender != "" && n.password != "" && n.recipient != ""
}

// NotifySuccess reports a published daily.
func (n *Notifier) NotifySuccess(day string, count int) error {
	subject := fmt.Sprintf("✅ Daily Ready - %s", day)
	body := n.successBody(day, count)
	return n.dispatch(subject, body)
}

// NotifyEmpty reports a day without content.
func (n *Notifier) NotifyEmpty(day, reason string) error {
	subject := fmt.Sprintf("📭 No News - %s", day)
	body := n.emptyBody(day, reason)
	return n.dispatch(subject, body)
}

// NotifyFailure reports a failed pipeline run with the error detail.
func (n *Notifier) NotifyFailure(day, errMsg string) error {
	subject := fmt.Sprintf("❌ Pipeline Failed - %s", day)
	body := n.failureBody(day, errMsg)
	return n.dispatch(subject, body)
}

func (n *Notifier) successBody(day string, count int) string {
	link := n.reportLink(day)
	return fmt.Sprintf(`<html>
<body style="font-family: sans-serif; background: #f9f9f9; padding: 20px;">
  <div style="max-width: 550px; margin: auto; background: #fff; border-radius: 10px; border: 1px solid #eee; overflow: hidden;">
    <div style="background: #2c3e50; color: #fff; padding: 20px; text-align: center;">
      <h2 style="margin: 0;">Tomato AI Daily</h2>
    </div>
    <div style="padding: 25px;">
      <p style="font-size: 16px;">The report for <strong>%s</strong> is live.</p>
      <div style="background: #f0f4f8; padding: 15px; border-radius: 5px; margin: 20px 0;">
        <p style="margin: 0; color: #34495e;">Total items: <strong>%d</strong></p>
      </div>
      <a href="%s" style="display: block; text-align: center; background: #3498db; color: #fff; padding: 12px; border-radius: 5px; text-decoration: none; font-weight: bold;">Open Report</a>
    </div>
    <div style="padding: 15px; border-top: 1px solid #eee; font-size: 11px; color: #999; text-align: center;">
      Generated at %s UTC
    </div>
  </div>
</body>
</html>`, day, count, link, time.Now().UTC().Format("15:04:05"))
}

func (n *Notifier) emptyBody(day, reason string) string {
	logButton := ""
	if url := n.ciLogURL(); url != "" {
		logButton = fmt.Sprintf(`<p><a href="%s">View Logs</a></p>`, url)
	}
	return fmt.Sprintf(`<html>
<body style="font-family: sans-serif; padding: 20px;">
  <h3>No updates for %s</h3>
  <p>Reason: %s</p>
  %s
</body>
</html>`, day, sanitize(reason), logButton)
}

func (n *Notifier) failureBody(day, errMsg string) string {
	return fmt.Sprintf(`<html>
<body style="font-family: monospace; background: #fff5f5; padding: 20px;">
  <h2 style="color: #c0392b;">Execution Error</h2>
  <p><strong>Date:</strong> %s</p>
  <div style="background: #333; color: #0f0; padding: 15px; border-radius: 5px; overflow-x: auto;">
    <pre>%s</pre>
  </div>
  <p><a href="%s">Check GitHub Actions</a></p>
</body>
</html>`, day, sanitize(errMsg), n.ciLogURL())
}

// reportLink builds the public URL of the published report page, falling
// back to the bare filename when no pages base URL is configured. The page
// name matches what the report builder writes: {date}-{lang}.html.
func (n *Notifier) reportLink(day string) string {
	name := day + "-" + n.lang + ".html"
	if n.pagesURL == "" {
		return name
	}
	return strings.TrimRight(n.pagesURL, "/") + "/" + name
}

func (n *Notifier) ciLogURL() string {
	if n.repo == "" || n.runID == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/actions/runs/%s", n.serverURL, n.repo, n.runID)
}

func (n *Notifier) dispatch(subject, body string) error {
	if !n.Ready() {
		slog.Warn("SMTP not configured, skipping notification", "subject", subject)
		return nil
	}

	msg := n.buildMessage(subject, body)
	auth := smtp.PlainAuth("", n.sender, n.password, n.host)
	addr := n.host + ":" + n.port

	if err := n.send(addr, auth, n.sender, []string{n.recipient}, msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	slog.Info("Notification dispatched", "subject", subject, "to", n.recipient)
	return nil
}

// buildMessage assembles an RFC 5322 message with an HTML body.
func (n *Notifier) buildMessage(subject, body string) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", n.sender)
	fmt.Fprintf(&sb, "To: %s\r\n", n.recipient)
	fmt.Fprintf(&sb, "Subject: %s\r\n", subject)
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}

// sanitize escapes HTML characters in untrusted text placed into bodies.
func sanitize(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	return text
}
