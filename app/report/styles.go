package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteStyles emits the stylesheet shared by every generated page.
func (b *Builder) WriteStyles() error {
	path := filepath.Join(b.root, "css", "styles.css")
	if err := os.WriteFile(path, []byte(stylesheet), 0644); err != nil {
		return fmt.Errorf("failed to write stylesheet: %w", err)
	}
	return nil
}

const stylesheet = `/* Tomato AI Daily - minimalist dark stylesheet */
:root {
    --bg-color: #000000;
    --card-bg: #000000;
    --title-color: #ffffff;
    --text-color: #cccccc;
    --accent-color: #ffffff;
    --secondary-color: #888888;
    --border-color: #222222;
    --tag-bg: #111111;
}
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: 'Inter', sans-serif;
    background: var(--bg-color);
    color: var(--text-color);
    line-height: 1.6;
}
.container { max-width: 720px; margin: 0 auto; padding: 80px 24px; }
.header { margin-bottom: 80px; }
.logo-icon { font-size: 32px; margin-bottom: 16px; }
.header h1 { font-size: 48px; font-weight: 800; color: var(--title-color); letter-spacing: -0.04em; }
.date-badge { font-size: 14px; color: var(--secondary-color); text-transform: uppercase; letter-spacing: 0.1em; }
.section-title { font-size: 13px; font-weight: 700; color: var(--secondary-color); text-transform: uppercase; letter-spacing: 0.1em; margin-bottom: 24px; padding-bottom: 8px; border-bottom: 1px solid var(--border-color); }
.summary-card { margin-bottom: 64px; }
.summary-list { list-style: none; }
.summary-item { font-size: 18px; font-weight: 500; color: var(--title-color); margin-bottom: 16px; padding-left: 24px; position: relative; }
.summary-item::before { content: "→"; position: absolute; left: 0; color: var(--secondary-color); }
.category-section { margin-bottom: 64px; }
.news-grid { display: flex; flex-direction: column; gap: 40px; }
.news-card { padding-bottom: 40px; border-bottom: 1px solid var(--border-color); }
.news-title { font-size: 20px; font-weight: 700; color: var(--title-color); margin-bottom: 8px; }
.news-summary { font-size: 16px; color: var(--text-color); margin-bottom: 16px; }
.item-link { font-size: 14px; font-weight: 600; color: var(--title-color); text-decoration: none; }
.item-link::after { content: " ↗"; }
.item-tags { display: flex; gap: 8px; margin-top: 16px; }
.tag { font-size: 12px; color: var(--secondary-color); background: var(--tag-bg); padding: 4px 10px; border-radius: 4px; }
.keywords-footer { margin-top: 80px; padding-top: 40px; border-top: 1px solid var(--border-color); color: var(--secondary-color); font-size: 14px; }
.footer { margin-top: 40px; color: var(--secondary-color); font-size: 12px; }
.index-entries { display: flex; flex-direction: column; gap: 24px; }
.index-entry { padding: 24px; border: 1px solid var(--border-color); border-radius: 8px; }
.entry-link { text-decoration: none; }
.entry-date { font-size: 18px; font-weight: 700; color: var(--title-color); display: block; }
.entry-summary { font-size: 14px; color: var(--secondary-color); }
`
