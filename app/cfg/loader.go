package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"golang.org/x/text/language"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Run selection
	Days     int    `long:"days" default:"1" description:"Lookback offset in days from the current UTC date"`
	Date     string `long:"date" description:"Explicit target date (YYYY-MM-DD), overrides --days"`
	Language string `long:"language" env:"REPORT_LANGUAGE" default:"zh" description:"Report language (zh or en)"`

	// Feed source
	FeedURL     string `long:"feed-url" env:"RSS_URL" description:"Syndication feed URL"`
	FeedTimeout int    `long:"feed-timeout" env:"RSS_TIMEOUT" default:"30" description:"Feed fetch timeout in seconds"`

	// Analysis
	APIBaseURL string `long:"api-base-url" env:"OPENAI_BASE_URL" default:"https://api.openai.com/v1" description:"OpenAI-compatible API base URL"`
	APIKey     string `long:"api-key" env:"OPENAI_API_KEY" description:"API key for the analysis endpoint"`
	Model      string `long:"model" env:"OPENAI_MODEL" default:"gpt-4o-mini" description:"Model used for analysis"`
	MaxTokens  int    `long:"max-tokens" env:"OPENAI_MAX_TOKENS" default:"8192" description:"Maximum completion tokens"`

	// Output
	OutputDir string `long:"output-dir" env:"OUTPUT_DIR" default:"./public" description:"Directory for generated HTML artifacts"`
	SiteDir   string `long:"site-dir" env:"SITE_DIR" default:"./site" description:"Directory with site content configuration (categories, themes, i18n)"`
	PagesURL  string `long:"pages-url" env:"GITHUB_PAGES_URL" description:"Public base URL where reports are published"`

	// Export
	BrowserBin   string `long:"browser-bin" env:"BROWSER_BIN" description:"Headless chromium binary for screenshot/PDF export (empty disables export)"`
	ExportFormat string `long:"export-format" env:"EXPORT_FORMAT" default:"png" description:"Export format (png or pdf)"`

	// Notifications
	SMTPHost string `long:"smtp-host" env:"SMTP_HOST" description:"SMTP server host"`
	SMTPPort string `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP server port"`
	SMTPUser string `long:"smtp-user" env:"SMTP_USER" description:"SMTP sender address"`
	SMTPPass string `long:"smtp-password" env:"SMTP_PASSWORD" description:"SMTP password"`
	NotifyTo string `long:"notify-to" env:"NOTIFICATION_TO" description:"Notification recipient address"`

	// Run history
	HistoryDB string `long:"history-db" env:"HISTORY_DB" default:"./data/history.db" description:"SQLite file for run history (empty disables)"`

	// Preview server
	Serve bool   `long:"serve" description:"Serve the generated site locally instead of running the pipeline"`
	Port  string `long:"port" env:"PORT" default:"8080" description:"Preview server port"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"TomatoNews/2.0 (compatible; NewsBot/1.0)" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

var supportedLanguages = language.NewMatcher([]language.Tag{
	language.Chinese, // zh, the default
	language.English, // en
})

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.Date != "" {
		if err := ValidateDate(raw.Date); err != nil {
			return nil, err
		}
	}

	lang, err := NormalizeLanguage(raw.Language)
	if err != nil {
		return nil, err
	}

	if raw.ExportFormat != "png" && raw.ExportFormat != "pdf" {
		return nil, fmt.Errorf("unsupported export format: %q (use png or pdf)", raw.ExportFormat)
	}

	cfg := &Cfg{
		Days:         raw.Days,
		Date:         raw.Date,
		Language:     lang,
		FeedURL:      raw.FeedURL,
		FeedTimeout:  raw.FeedTimeout,
		APIBaseURL:   raw.APIBaseURL,
		APIKey:       raw.APIKey,
		Model:        raw.Model,
		MaxTokens:    raw.MaxTokens,
		OutputDir:    raw.OutputDir,
		SiteDir:      raw.SiteDir,
		PagesURL:     raw.PagesURL,
		BrowserBin:   raw.BrowserBin,
		ExportFormat: raw.ExportFormat,
		SMTPHost:     raw.SMTPHost,
		SMTPPort:     raw.SMTPPort,
		SMTPUser:     raw.SMTPUser,
		SMTPPass:     raw.SMTPPass,
		NotifyTo:     raw.NotifyTo,
		HistoryDB:    raw.HistoryDB,
		Serve:        raw.Serve,
		Port:         raw.Port,
		UserAgent:    raw.UserAgent,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// ValidateDate checks that a caller-supplied date string is a real calendar
// date in YYYY-MM-DD form. Reported before any pipeline stage runs.
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("date format mismatch: %s (use YYYY-MM-DD)", date)
	}
	return nil
}

// NormalizeLanguage maps any parsable language tag onto one of the supported
// report languages. "zh-CN" and "cmn" collapse to "zh", "en-US" to "en".
func NormalizeLanguage(raw string) (string, error) {
	tag, err := language.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("unsupported language: %q (use zh or en)", raw)
	}

	_, idx, conf := supportedLanguages.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("unsupported language: %q (use zh or en)", raw)
	}
	if idx == 1 {
		return "en", nil
	}
	return "zh", nil
}

// TargetDate resolves the date the pipeline should process: the explicit
// --date override when present, otherwise the current UTC date minus the
// --days lookback offset.
func (c *Cfg) TargetDate(now time.Time) string {
	if c.Date != "" {
		return c.Date
	}
	return now.UTC().AddDate(0, 0, -c.Days).Format("2006-01-02")
}
