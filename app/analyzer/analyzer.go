package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/tomatolab/ai-daily/app/feed"
	"github.com/tomatolab/ai-daily/app/site"
)

// ErrOracle covers failed classification calls and malformed model output.
var ErrOracle = errors.New("analysis failed")

// maxPromptChars bounds how much of the day's content enters the prompt.
const maxPromptChars = 14000

// Analyzer classifies and summarizes a day's content through an
// OpenAI-compatible chat-completions endpoint.
type Analyzer struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	site       *site.Site
	httpClient *http.Client
}

func NewAnalyzer(baseURL, apiKey, model string, maxTokens int, siteConfig *site.Site, httpClient *http.Client) (*Analyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing API key for analysis endpoint")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Analyzer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		maxTokens:  maxTokens,
		site:       siteConfig,
		httpClient: httpClient,
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Run performs the classification for one canonical record. An empty record
// short-circuits to an empty classification without calling the endpoint;
// transport errors, non-2xx responses and malformed output are ErrOracle.
func (a *Analyzer) Run(ctx context.Context, record *feed.Record, targetDate, lang string) (*Classification, error) {
	if record == nil || record.Content == "" {
		return a.emptyClassification(targetDate, lang, "No content provided"), nil
	}

	prompt := a.buildPrompt(record, targetDate, lang)

	body, err := json.Marshal(chatRequest{
		Model:       a.model,
		MaxTokens:   a.maxTokens,
		Temperature: 0.25,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOracle, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOracle, err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	slog.Info("Requesting analysis", "model", a.model, "lang", lang, "date", targetDate)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOracle, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOracle, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrOracle, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOracle, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: response contains no choices", ErrOracle)
	}

	raw := chat.Choices[0].Message.Content
	slog.Info("Analysis complete", "chars", len(raw))

	return a.decodeOutput(raw, targetDate, lang)
}

// decodeOutput parses the model's JSON answer, tolerating markdown code
// fences, and injects defaults so every list is present and the theme always
// resolves to a known identifier.
func (a *Analyzer) decodeOutput(raw, targetDate, lang string) (*Classification, error) {
	clean := stripCodeFences(raw)

	var result Classification
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON output: %s", ErrOracle, err)
	}

	if result.Status == "" {
		result.Status = StatusSuccess
	}
	if result.Status != StatusSuccess && result.Status != StatusEmpty {
		return nil, fmt.Errorf("%w: unknown status %q", ErrOracle, result.Status)
	}
	if result.Date == "" {
		result.Date = targetDate
	}
	if result.Lang == "" {
		result.Lang = lang
	}
	result.Theme = a.site.ResolveTheme(result.Theme)
	if result.Summary == nil {
		result.Summary = []string{}
	}
	if result.Keywords == nil {
		result.Keywords = []string{}
	}
	if result.Categories == nil {
		result.Categories = []Category{}
	}
	for i := range result.Categories {
		if result.Categories[i].Items == nil {
			result.Categories[i].Items = []Item{}
		}
		for j := range result.Categories[i].Items {
			if result.Categories[i].Items[j].Tags == nil {
				result.Categories[i].Items[j].Tags = []string{}
			}
		}
	}

	slog.Info("Analysis decoded", "highlights", len(result.Summary), "categories", len(result.Categories), "items", result.ItemCount())
	return &result, nil
}

func (a *Analyzer) emptyClassification(targetDate, lang, reason string) *Classification {
	return &Classification{
		Status:     StatusEmpty,
		Date:       targetDate,
		Lang:       lang,
		Theme:      a.site.ResolveTheme(""),
		Summary:    []string{},
		Keywords:   []string{},
		Categories: []Category{},
		Reason:     reason,
	}
}

// stripCodeFences removes a leading ```json / ``` marker and a trailing ```.
func stripCodeFences(raw string) string {
	clean := strings.TrimSpace(raw)
	for _, marker := range []string{"```json", "```"} {
		if strings.HasPrefix(clean, marker) {
			clean = clean[len(marker):]
		}
		if strings.HasSuffix(clean, "```") {
			clean = clean[:len(clean)-3]
		}
	}
	return strings.TrimSpace(clean)
}

// promptContent prepares the record body for the prompt. Oversized HTML goes
// through readability extraction first so the budget is spent on text
// instead of markup.
func promptContent(content string) string {
	if len(content) > maxPromptChars && strings.Contains(content, "<") {
		article, err := readability.FromReader(strings.NewReader(content), nil)
		if err == nil && article.TextContent != "" {
			content = article.TextContent
		} else if err != nil {
			slog.Debug("Readability extraction failed, using raw content", "error", err)
		}
	}
	return truncateRunes(content, maxPromptChars)
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
