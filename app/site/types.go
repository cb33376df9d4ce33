package site

// Category is one classification bucket offered to the analysis model.
type Category struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Icon        string `yaml:"icon"`
	Description string `yaml:"description"`
}

// Theme is one visual style the analysis model may pick for a report.
type Theme struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// UIStrings holds the localized interface strings for one report language.
// Weekdays are indexed Monday first; DateFormat is a Go reference layout.
type UIStrings struct {
	Title      string   `yaml:"title"`
	Subtitle   string   `yaml:"subtitle"`
	EmptyTitle string   `yaml:"empty_title"`
	BackToHome string   `yaml:"back_to_home"`
	Highlights string   `yaml:"highlights"`
	Keywords   string   `yaml:"keywords"`
	ReadMore   string   `yaml:"read_more"`
	FooterText string   `yaml:"footer_text"`
	Weekdays   []string `yaml:"weekdays"`
	DateFormat string   `yaml:"date_format"`
}

// Meta is site-wide page metadata.
type Meta struct {
	Description string `yaml:"description"`
}

// Site is the full content configuration: what the reports look like and the
// vocabulary the analysis prompt is built from.
type Site struct {
	Meta         Meta                 `yaml:"meta"`
	DefaultTheme string               `yaml:"default_theme"`
	FixedTheme   string               `yaml:"fixed_theme"`
	Categories   []Category           `yaml:"categories"`
	Themes       []Theme              `yaml:"themes"`
	I18N         map[string]UIStrings `yaml:"i18n"`
}
