package domain

import (
	"encoding/json"
	"strings"
)

// SearchRequest carries the parameters of one web search call.
type SearchRequest struct {
	Query        string
	Country      string
	Language     string
	DateRestrict string
	Num          int
	Start        int
	Filter       bool
}

// SearchResultSet is the raw result list, kept verbatim for the snapshot.
type SearchResultSet []json.RawMessage

// BuildQuery joins terms into a quoted disjunction.
func BuildQuery(terms []string) string {
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if !strings.HasPrefix(term, `"`) {
			term = `"` + term + `"`
		}
		quoted = append(quoted, term)
	}
	return strings.Join(quoted, " OR ")
}
