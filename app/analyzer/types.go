package analyzer

// Classification is the oracle's structured answer for one day's content.
// Every list defaults to empty rather than absent; Status is always exactly
// "success" or "empty"; Theme always names a defined visual theme.
type Classification struct {
	Status     string     `json:"status"`
	Date       string     `json:"date"`
	Lang       string     `json:"lang"`
	Theme      string     `json:"theme"`
	Summary    []string   `json:"summary"`
	Keywords   []string   `json:"keywords"`
	Categories []Category `json:"categories"`
	Reason     string     `json:"reason,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusEmpty   = "empty"
)

// Category is one classification bucket in the oracle's answer.
type Category struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Items []Item `json:"items"`
}

// Item is one news entry within a category.
type Item struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	URL     string   `json:"url,omitempty"`
	Tags    []string `json:"tags"`
}

// ItemCount sums the item counts across all categories.
func (c *Classification) ItemCount() int {
	total := 0
	for _, cat := range c.Categories {
		total += len(cat.Items)
	}
	return total
}
