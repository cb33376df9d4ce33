package report

import (
	"bytes"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomatolab/ai-daily/app/analyzer"
	"github.com/tomatolab/ai-daily/app/site"
)

// Builder renders the publishable artifacts: daily report pages, the
// empty-state page, the stylesheet and the archive index.
type Builder struct {
	root string
	site *site.Site
}

func NewBuilder(root string, siteConfig *site.Site) (*Builder, error) {
	if err := os.MkdirAll(filepath.Join(root, "css"), 0755); err != nil {
		return nil, fmt.Errorf("failed to prepare output directory: %w", err)
	}
	return &Builder{root: root, site: siteConfig}, nil
}

// BuildDaily writes the report page for one classification and refreshes the
// archive. Returns the path of the written page.
func (b *Builder) BuildDaily(result *analyzer.Classification) (string, error) {
	date := result.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	lang := result.Lang
	if lang == "" {
		lang = "zh"
	}

	content := b.assembleDaily(result, date, lang)
	name := fmt.Sprintf("%s-%s.html", date, lang)
	path := filepath.Join(b.root, name)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	slog.Info("Report saved", "file", name, "theme", result.Theme)

	if err := b.SyncIndex(date, result, lang); err != nil {
		return "", err
	}

	return path, nil
}

// BuildEmpty writes a placeholder page for a day without content.
func (b *Builder) BuildEmpty(date, msg, lang string) (string, error) {
	ui := b.site.Strings(lang)

	var buf bytes.Buffer
	b.writeHead(&buf, lang, ui.Title+" · "+date, "")
	buf.WriteString("<body>\n    <div class=\"container\">\n")
	b.writeHeader(&buf, ui.Title, b.site.PrettyDate(date, lang))
	buf.WriteString("        <main class=\"main-content\" style=\"text-align: center; padding: 100px 0;\">\n")
	buf.WriteString("            <div style=\"font-size: 50px;\">📭</div>\n")
	fmt.Fprintf(&buf, "            <h2>%s</h2>\n", html.EscapeString(ui.EmptyTitle))
	fmt.Fprintf(&buf, "            <p style=\"color: #888;\">%s</p>\n", html.EscapeString(msg))
	buf.WriteString("            <br>\n")
	fmt.Fprintf(&buf, "            <a href=\"index.html\" class=\"item-link\">%s</a>\n", html.EscapeString(ui.BackToHome))
	buf.WriteString("        </main>\n    </div>\n</body>\n</html>\n")

	path := filepath.Join(b.root, fmt.Sprintf("%s-%s.html", date, lang))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write empty page: %w", err)
	}
	return path, nil
}

func (b *Builder) assembleDaily(result *analyzer.Classification, date, lang string) string {
	ui := b.site.Strings(lang)
	dateLabel := b.site.PrettyDate(date, lang)

	var buf bytes.Buffer
	b.writeHead(&buf, lang, ui.Title+" · "+dateLabel, b.site.Meta.Description)
	buf.WriteString("<body>\n    <div class=\"container\">\n")
	b.writeHeader(&buf, ui.Title, dateLabel)
	buf.WriteString("        <main class=\"main-content\">\n")

	if len(result.Summary) > 0 {
		buf.WriteString("            <section class=\"summary-card\">\n")
		fmt.Fprintf(&buf, "                <h2 class=\"section-title\">%s</h2>\n", html.EscapeString(ui.Highlights))
		buf.WriteString("                <ul class=\"summary-list\">\n")
		for _, s := range result.Summary {
			fmt.Fprintf(&buf, "                    <li class=\"summary-item\">%s</li>\n", html.EscapeString(s))
		}
		buf.WriteString("                </ul>\n            </section>\n")
	}

	for _, cat := range result.Categories {
		if len(cat.Items) == 0 {
			continue
		}
		buf.WriteString("            <section class=\"category-section\">\n")
		fmt.Fprintf(&buf, "                <h2 class=\"section-title\">%s</h2>\n", html.EscapeString(cat.Name))
		buf.WriteString("                <div class=\"news-grid\">\n")
		for _, item := range cat.Items {
			b.writeNewsCard(&buf, item, ui)
		}
		buf.WriteString("                </div>\n            </section>\n")
	}

	if len(result.Keywords) > 0 {
		buf.WriteString("            <footer class=\"keywords-footer\">\n")
		fmt.Fprintf(&buf, "                <p>%s: %s</p>\n", html.EscapeString(ui.Keywords), html.EscapeString(joinKeywords(result.Keywords)))
		buf.WriteString("            </footer>\n")
	}

	buf.WriteString("        </main>\n")
	fmt.Fprintf(&buf, "        <footer class=\"footer\">\n            <p>© %d %s · %s</p>\n        </footer>\n",
		time.Now().Year(), html.EscapeString(ui.Title), html.EscapeString(ui.FooterText))
	buf.WriteString("    </div>\n</body>\n</html>\n")

	return buf.String()
}

func (b *Builder) writeNewsCard(buf *bytes.Buffer, item analyzer.Item, ui site.UIStrings) {
	buf.WriteString("                    <article class=\"news-card\">\n")
	fmt.Fprintf(buf, "                        <h3 class=\"news-title\">%s</h3>\n", html.EscapeString(item.Title))
	fmt.Fprintf(buf, "                        <p class=\"news-summary\">%s</p>\n", html.EscapeString(item.Summary))
	if item.URL != "" {
		fmt.Fprintf(buf, "                        <a href=\"%s\" class=\"item-link\" target=\"_blank\">%s</a>\n",
			html.EscapeString(item.URL), html.EscapeString(ui.ReadMore))
	}
	buf.WriteString("                        <div class=\"item-tags\">")
	tags := item.Tags
	if len(tags) > 3 {
		tags = tags[:3]
	}
	for _, tag := range tags {
		fmt.Fprintf(buf, "<span class=\"tag\">%s</span>", html.EscapeString(tag))
	}
	buf.WriteString("</div>\n")
	buf.WriteString("                    </article>\n")
}

func (b *Builder) writeHead(buf *bytes.Buffer, lang, title, description string) {
	fmt.Fprintf(buf, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n", html.EscapeString(lang))
	buf.WriteString("    <meta charset=\"UTF-8\">\n")
	buf.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(buf, "    <title>%s</title>\n", html.EscapeString(title))
	if description != "" {
		fmt.Fprintf(buf, "    <meta name=\"description\" content=\"%s\">\n", html.EscapeString(description))
	}
	buf.WriteString("    <link rel=\"stylesheet\" href=\"css/styles.css\">\n")
	buf.WriteString("    <link href=\"https://fonts.googleapis.com/css2?family=Inter:wght@400;600;800&display=swap\" rel=\"stylesheet\">\n")
	buf.WriteString("</head>\n")
}

func (b *Builder) writeHeader(buf *bytes.Buffer, title, badge string) {
	buf.WriteString("        <header class=\"header\">\n")
	buf.WriteString("            <div class=\"logo-icon\">🍅</div>\n")
	fmt.Fprintf(buf, "            <h1>%s</h1>\n", html.EscapeString(title))
	fmt.Fprintf(buf, "            <div class=\"date-badge\">%s</div>\n", html.EscapeString(badge))
	buf.WriteString("        </header>\n")
}

func joinKeywords(keywords []string) string {
	return strings.Join(keywords, " / ")
}
