package cfg

type Cfg struct {
	// Run selection
	Days     int
	Date     string
	Language string

	// Feed source
	FeedURL     string
	FeedTimeout int

	// Analysis (OpenAI-compatible endpoint)
	APIBaseURL string
	APIKey     string
	Model      string
	MaxTokens  int

	// Output
	OutputDir string
	SiteDir   string
	PagesURL  string

	// Export
	BrowserBin   string
	ExportFormat string

	// Notifications
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	NotifyTo string

	// Run history
	HistoryDB string

	// Preview server
	Serve bool
	Port  string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
