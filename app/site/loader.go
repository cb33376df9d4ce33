package site

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads site.yml from dir when present and overlays it onto the
// built-in defaults. A missing directory or file is not an error; the
// defaults alone are a complete configuration.
func Load(dir string) (*Site, error) {
	s := Defaults()

	if dir == "" {
		return s, nil
	}

	path := filepath.Join(dir, "site.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("No site configuration file, using defaults", "path", path)
			return s, nil
		}
		return nil, fmt.Errorf("failed to read site configuration: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse site configuration: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid site configuration %s: %w", path, err)
	}

	slog.Info("Site configuration loaded", "path", path, "categories", len(s.Categories), "themes", len(s.Themes))
	return s, nil
}

func (s *Site) validate() error {
	if len(s.Categories) == 0 {
		return fmt.Errorf("no categories defined")
	}
	if len(s.Themes) == 0 {
		return fmt.Errorf("no themes defined")
	}
	if !s.KnownTheme(s.DefaultTheme) {
		return fmt.Errorf("default theme %q is not defined", s.DefaultTheme)
	}
	if s.FixedTheme != "" && !s.KnownTheme(s.FixedTheme) {
		return fmt.Errorf("fixed theme %q is not defined", s.FixedTheme)
	}
	for lang, ui := range s.I18N {
		if len(ui.Weekdays) != 7 {
			return fmt.Errorf("i18n %q: expected 7 weekday names, got %d", lang, len(ui.Weekdays))
		}
	}
	return nil
}

// KnownTheme reports whether key names a defined theme.
func (s *Site) KnownTheme(key string) bool {
	for _, t := range s.Themes {
		if t.Key == key {
			return true
		}
	}
	return false
}

// ResolveTheme applies the fixed-override-then-fallback rule: a configured
// fixed theme always wins, otherwise the requested theme when known,
// otherwise the default. The result always names a defined theme.
func (s *Site) ResolveTheme(requested string) string {
	if s.FixedTheme != "" {
		return s.FixedTheme
	}
	if s.KnownTheme(requested) {
		return requested
	}
	return s.DefaultTheme
}

// Strings returns the UI strings for lang, falling back to Chinese.
func (s *Site) Strings(lang string) UIStrings {
	if ui, ok := s.I18N[lang]; ok {
		return ui
	}
	return s.I18N["zh"]
}

// PrettyDate renders a YYYY-MM-DD date for human reading in the given
// language; the raw string is returned unchanged when it does not parse.
func (s *Site) PrettyDate(date, lang string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}

	ui := s.Strings(lang)
	dayName := ui.Weekdays[(int(parsed.Weekday())+6)%7] // weekday names are Monday-first
	if lang == "zh" {
		return parsed.Format(ui.DateFormat) + " " + dayName
	}
	return dayName + ", " + parsed.Format(ui.DateFormat)
}

// Defaults returns the built-in content configuration.
func Defaults() *Site {
	return &Site{
		Meta: Meta{
			Description: "AI-curated daily digest of artificial intelligence news",
		},
		DefaultTheme: "blue",
		Categories: []Category{
			{Key: "model", Name: "模型动态", Icon: "🤖", Description: "New model releases, benchmarks and capability updates"},
			{Key: "product", Name: "产品发布", Icon: "🚀", Description: "Product launches and feature announcements"},
			{Key: "research", Name: "研究进展", Icon: "🔬", Description: "Papers, technical reports and research findings"},
			{Key: "tools", Name: "工具资源", Icon: "🛠️", Description: "Developer tools, frameworks and open source projects"},
			{Key: "funding", Name: "融资动态", Icon: "💰", Description: "Funding rounds, acquisitions and market moves"},
			{Key: "events", Name: "行业事件", Icon: "📅", Description: "Conferences, policy and notable industry events"},
		},
		Themes: []Theme{
			{Key: "blue", Name: "沉稳蓝", Description: "Calm and professional, suited for product and research news"},
			{Key: "dark", Name: "极简黑", Description: "Minimalist dark mode for dense technical digests"},
			{Key: "warm", Name: "暖阳橙", Description: "Warm and lively, suited for community and event news"},
		},
		I18N: map[string]UIStrings{
			"zh": {
				Title:      "番茄 AI 日报",
				Subtitle:   "每日 AI 资讯精选",
				EmptyTitle: "今日暂无资讯",
				BackToHome: "返回首页",
				Highlights: "今日要点",
				Keywords:   "关键词",
				ReadMore:   "阅读原文",
				FooterText: "由 AI 自动生成",
				Weekdays:   []string{"星期一", "星期二", "星期三", "星期四", "星期五", "星期六", "星期日"},
				DateFormat: "2006年01月02日",
			},
			"en": {
				Title:      "Tomato AI Daily",
				Subtitle:   "Curated AI news, every day",
				EmptyTitle: "No news today",
				BackToHome: "Back to home",
				Highlights: "Highlights",
				Keywords:   "Keywords",
				ReadMore:   "Read more",
				FooterText: "Generated automatically",
				Weekdays:   []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
				DateFormat: "January 2, 2006",
			},
		},
	}
}
