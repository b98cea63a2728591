package content

import "strings"

// Query narrows a listing for display. The zero Query matches everything.
type Query struct {
	Search   string `json:"q,omitempty" query:"q"`
	Category string `json:"category,omitempty" query:"category"`
}

func (q Query) normalized() (search, category string) {
	search = strings.ToLower(strings.TrimSpace(q.Search))
	category = strings.TrimSpace(q.Category)
	if strings.EqualFold(category, "all") {
		category = ""
	}
	return search, category
}

// FilterArticles returns the articles whose title or description contains the
// search text (case-insensitive) and whose main category equals the requested
// one. Listing order is preserved.
func FilterArticles(articles []Article, q Query) []Article {
	search, category := q.normalized()
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if category != "" && a.MainCategory != category {
			continue
		}
		if search != "" && !containsFold(search, a.Title, a.Description) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FilterWorks is FilterArticles for works, searching title and overview.
func FilterWorks(works []Work, q Query) []Work {
	search, category := q.normalized()
	out := make([]Work, 0, len(works))
	for _, w := range works {
		if category != "" && w.MainCategory != category {
			continue
		}
		if search != "" && !containsFold(search, w.Title, w.Overview) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
