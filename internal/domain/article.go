package domain

import "strings"

// ArticleRecord is the title/description pair projected from one search result.
type ArticleRecord struct {
	Title       string
	Description string
}

// ActionItem is a single line of the action planner output.
type ActionItem struct {
	Index int
	Text  string
}

// SplitActionItems splits raw planner output on line breaks.
// Count and content are not validated: blank lines become empty items.
func SplitActionItems(raw string) []ActionItem {
	lines := strings.Split(raw, "\n")
	items := make([]ActionItem, len(lines))
	for i, line := range lines {
		items[i] = ActionItem{Index: i, Text: line}
	}
	return items
}

// ZipArticles pairs aligned title and description slices.
func ZipArticles(titles, descriptions []string) []ArticleRecord {
	n := len(titles)
	if len(descriptions) < n {
		n = len(descriptions)
	}
	records := make([]ArticleRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, ArticleRecord{Title: titles[i], Description: descriptions[i]})
	}
	return records
}
