package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"NewsRisk/internal/domain"
)

const (
	ogTitleKey       = "og:title"
	ogDescriptionKey = "og:description"
	unknownLink      = "<unknown link>"
)

type rawResult struct {
	Link    string `json:"link"`
	Pagemap *struct {
		Metatags []map[string]any `json:"metatags"`
	} `json:"pagemap"`
}

// FieldExtractor projects raw search results into title/description pairs.
type FieldExtractor struct {
	logger *slog.Logger
}

// NewFieldExtractor builds an extractor that logs skipped entries.
func NewFieldExtractor(logger *slog.Logger) *FieldExtractor {
	return &FieldExtractor{logger: orDiscard(logger)}
}

// Extract returns aligned titles and descriptions. Malformed entries are logged and skipped.
func (e *FieldExtractor) Extract(results domain.SearchResultSet) (titles, descriptions []string) {
	titles = make([]string, 0, len(results))
	descriptions = make([]string, 0, len(results))

	for _, raw := range results {
		link, title, description, err := extractEntry(raw)
		if err != nil {
			if link == "" {
				link = unknownLink
			}
			e.logger.Warn("skip article", "link", link, "error", err)
			continue
		}
		titles = append(titles, title)
		descriptions = append(descriptions, description)
	}

	return titles, descriptions
}

// Records zips the extracted fields into ArticleRecords.
func (e *FieldExtractor) Records(results domain.SearchResultSet) []domain.ArticleRecord {
	return domain.ZipArticles(e.Extract(results))
}

func extractEntry(raw json.RawMessage) (link, title, description string, err error) {
	var entry rawResult
	if err := json.Unmarshal(raw, &entry); err != nil {
		return entry.Link, "", "", fmt.Errorf("decode result: %w", err)
	}
	if entry.Pagemap == nil {
		return entry.Link, "", "", errors.New("missing pagemap")
	}
	if len(entry.Pagemap.Metatags) == 0 {
		return entry.Link, "", "", errors.New("missing metatags")
	}

	tags := entry.Pagemap.Metatags[0]
	title, err = metaString(tags, ogTitleKey)
	if err != nil {
		return entry.Link, "", "", err
	}
	description, err = metaString(tags, ogDescriptionKey)
	if err != nil {
		return entry.Link, "", "", err
	}

	return entry.Link, plainText(title), plainText(description), nil
}

func metaString(tags map[string]any, key string) (string, error) {
	value, ok := tags[key]
	if !ok {
		return "", fmt.Errorf("missing %s", key)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%s is %T, not a string", key, value)
	}
	return s, nil
}

var (
	markupTag     = regexp.MustCompile(`</?([A-Za-z][A-Za-z0-9]*)(\s[^<>]*)?/?>`)
	literalAngles = strings.NewReplacer("<", "&lt;", ">", "&gt;")
)

// formattingTags are the inline elements sites leave in og:* values.
var formattingTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "br": true, "cite": true, "em": true,
	"i": true, "mark": true, "p": true, "q": true, "small": true, "span": true,
	"strong": true, "sub": true, "sup": true, "u": true, "wbr": true,
}

// plainText decodes entities and drops formatting markup that sites leave in
// og:* values. Any other angle bracket is kept as literal text.
func plainText(value string) string {
	if !strings.ContainsAny(value, "<&") {
		return strings.TrimSpace(value)
	}
	source := value
	if !onlyFormattingMarkup(value) {
		source = literalAngles.Replace(value)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(doc.Text())
}

// onlyFormattingMarkup reports whether every '<' in value opens a formatting tag.
func onlyFormattingMarkup(value string) bool {
	matches := markupTag.FindAllStringSubmatch(value, -1)
	if len(matches) != strings.Count(value, "<") {
		return false
	}
	for _, m := range matches {
		if !formattingTags[strings.ToLower(m[1])] {
			return false
		}
	}
	return true
}
