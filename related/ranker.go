package related

import (
	"context"
	"slices"
	"strings"

	"github.com/eringen/portfolio/content"
)

// DefaultLimit is the number of matches returned when no limit is set.
const DefaultLimit = 3

// ArticleLister supplies the candidate pool for article rankings.
type ArticleLister interface {
	ListArticles(ctx context.Context) ([]content.Article, error)
}

// WorkLister supplies the candidate pool for work rankings.
type WorkLister interface {
	ListWorks(ctx context.Context) ([]content.Work, error)
}

// Reference identifies the record matches are ranked against.
type Reference struct {
	ID           string
	MainCategory string
	Tags         []string
}

// ArticleReference builds the Reference for an article.
func ArticleReference(a content.Article) Reference {
	return Reference{ID: a.ID, MainCategory: a.MainCategory, Tags: a.Tags}
}

// WorkReference builds the Reference for a work.
func WorkReference(w content.Work) Reference {
	return Reference{ID: w.ID, MainCategory: w.MainCategory, Tags: w.Tags}
}

// Match is a ranked candidate.
type Match[T any] struct {
	Item  T   `json:"item"`
	Score int `json:"score"`
}

// Ranker ranks records of the same kind by category and tag similarity.
type Ranker struct {
	articles ArticleLister
	works    WorkLister
	limit    int
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithLimit sets how many matches are returned. Values below 1 are ignored.
func WithLimit(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.limit = n
		}
	}
}

// New creates a Ranker drawing candidates from the given listers. Both are
// usually the same content.Repository.
func New(articles ArticleLister, works WorkLister, opts ...Option) *Ranker {
	r := &Ranker{articles: articles, works: works, limit: DefaultLimit}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SimilarArticles returns the articles most similar to ref, excluding ref
// itself. Equal scores keep listing order.
func (r *Ranker) SimilarArticles(ctx context.Context, ref Reference) ([]Match[content.Article], error) {
	pool, err := r.articles.ListArticles(ctx)
	if err != nil {
		return nil, err
	}
	tags := NewTagSet(ref.Tags)
	return rank(pool, r.limit, func(a content.Article) (string, int) {
		return a.ID, Score(SameCategory(ref.MainCategory, a.MainCategory), tags, NewTagSet(a.Tags))
	}, ref.ID), nil
}

// SimilarWorks returns the works most similar to ref, excluding ref itself.
// Reference tags that name one of a candidate's technologies add to its score.
// Equal scores rank the most recently published work first.
func (r *Ranker) SimilarWorks(ctx context.Context, ref Reference) ([]Match[content.Work], error) {
	listed, err := r.works.ListWorks(ctx)
	if err != nil {
		return nil, err
	}
	pool := byPublication(listed)
	tags := NewTagSet(ref.Tags)
	return rank(pool, r.limit, func(w content.Work) (string, int) {
		same := SameCategory(ref.MainCategory, w.MainCategory)
		return w.ID, WorkScore(same, tags, NewTagSet(w.Tags), NewTagSet(w.Technologies))
	}, ref.ID), nil
}

// byPublication returns a copy of works ordered by Work.Date, newest first.
// Undated works go last and otherwise listing order is kept.
func byPublication(works []content.Work) []content.Work {
	sorted := slices.Clone(works)
	slices.SortStableFunc(sorted, func(a, b content.Work) int {
		da, db := a.Date(), b.Date()
		switch {
		case da == db:
			return 0
		case da == "":
			return 1
		case db == "":
			return -1
		}
		return strings.Compare(db, da)
	})
	return sorted
}

func rank[T any](pool []T, limit int, score func(T) (string, int), exclude string) []Match[T] {
	matches := make([]Match[T], 0, len(pool))
	for _, item := range pool {
		id, s := score(item)
		if id == exclude {
			continue
		}
		matches = append(matches, Match[T]{Item: item, Score: s})
	}
	slices.SortStableFunc(matches, func(a, b Match[T]) int {
		return b.Score - a.Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
