package analyzer

import (
	"fmt"
	"strings"

	"github.com/tomatolab/ai-daily/app/feed"
)

// buildPrompt composes the structured instruction for the model: the target
// date, the source content, the category and theme vocabularies from the
// site configuration, and the strict-JSON output contract.
func (a *Analyzer) buildPrompt(record *feed.Record, targetDate, lang string) string {
	langLabel := "English"
	if lang == "zh" {
		langLabel = "中文"
	}

	var categories strings.Builder
	var keys []string
	for _, c := range a.site.Categories {
		fmt.Fprintf(&categories, "- %s %s: %s\n", c.Icon, c.Name, c.Description)
		keys = append(keys, c.Key)
	}

	var themes strings.Builder
	for _, t := range a.site.Themes {
		fmt.Fprintf(&themes, "- %s: %s - %s\n", t.Key, t.Name, t.Description)
	}

	return fmt.Sprintf(`You are an expert AI technology scout. Analyze the provided daily news content.
Target Language: %s.

[Target Date]
%s

[News Source]
Title: %s
URL: %s
Body:
%s

---

[Tasks]
1. Verify if content is meaningful. Status: "success" or "empty".
2. Highlights: Extract 3-5 critical breakthroughs or events. Keep each under 50 words.
3. Categorization: Group news into these buckets:
%s
   Each bucket should have:
   - key: ID (%s)
   - name: Localized name (%s)
   - icon: Assigned emoji
   - items: List of entries (title, summary, url, tags)

4. Keywords: Identify 5-10 trending entities or concepts.
5. Visual Theme: Pick the most appropriate style:
%s
[Output Format]
Strict JSON only:
`+"```json"+`
{
  "status": "success",
  "date": "%s",
  "lang": "%s",
  "theme": "%s",
  "summary": ["Point 1", "Point 2"],
  "keywords": ["KW1", "KW2"],
  "categories": [
    {
      "key": "%s",
      "name": "Section",
      "icon": "🤖",
      "items": [
        {
          "title": "Short Title",
          "summary": "Brief summary",
          "url": "link",
          "tags": ["tag1"]
        }
      ]
    }
  ]
}
`+"```"+`
`,
		langLabel,
		targetDate,
		record.Title,
		record.Link,
		promptContent(record.Content),
		categories.String(),
		strings.Join(keys, "/"),
		langLabel,
		themes.String(),
		targetDate,
		lang,
		a.site.DefaultTheme,
		keys[0],
	)
}
