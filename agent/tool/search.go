package tool

import (
	"fmt"
	"strings"
)

// SearchIndex serves canned web-search lookups: topical articles and current
// deal listings. Live search is a remote capability in a real deployment;
// the demo answers from fixed tables like the other tool fixtures.
type SearchIndex struct{}

func NewSearchIndex() *SearchIndex {
	return &SearchIndex{}
}

type SearchResult struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Source    string  `json:"source"`
	Relevance float64 `json:"relevance"`
}

// webIndex entries are matched as substrings of the lowercased query, in
// order, first hit wins.
var webIndex = []struct {
	key     string
	results []SearchResult
}{
	{
		key: "laptop repair",
		results: []SearchResult{{
			Title:     "Common Laptop Issues and Solutions",
			Content:   "Power issues are often related to battery or adapter problems. Try different power sources first.",
			Source:    "TechSupport.com",
			Relevance: 0.8,
		}},
	},
	{
		key: "techbook review",
		results: []SearchResult{{
			Title:     "TechBook Product Reviews",
			Content:   "TechBook laptops are known for reliability and performance. Pro series rated highly for business use.",
			Source:    "LaptopReviews.com",
			Relevance: 0.9,
		}},
	},
}

// SearchWeb returns topical results for the query, falling back to a generic
// pointer when no indexed entry matches.
func (s *SearchIndex) SearchWeb(query string) []SearchResult {
	lower := strings.ToLower(query)
	for _, entry := range webIndex {
		if strings.Contains(lower, entry.key) {
			out := make([]SearchResult, len(entry.results))
			copy(out, entry.results)
			return out
		}
	}
	return []SearchResult{{
		Title:     "General Search Results",
		Content:   fmt.Sprintf("Search results for %q: comprehensive information available online.", query),
		Source:    "Web Search",
		Relevance: 0.5,
	}}
}

// FindDeals returns the current promotions for a product category.
func (s *SearchIndex) FindDeals(category string) []SearchResult {
	return []SearchResult{{
		Title: fmt.Sprintf("Current %s Deals", category),
		Content: fmt.Sprintf("Winter sale: 15%% off select %s models. Free shipping on orders over $500. "+
			"Extended warranty available.", category),
		Source:    "Deal Tracker",
		Relevance: 0.7,
	}}
}
