package content

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// Repository is the read contract shared by every content backend.
//
// Listings return the full set without the rich content body. Single-item
// lookups report a missing slug through the boolean, never as an error.
// Implementations do not cache: every call goes to the backing store.
type Repository interface {
	// ListArticles returns articles by publication date, newest first;
	// undated articles come last.
	ListArticles(ctx context.Context) ([]Article, error)
	// ListWorks returns works by creation timestamp, newest first.
	ListWorks(ctx context.Context) ([]Work, error)
	GetArticleBySlug(ctx context.Context, slug string) (Article, bool, error)
	GetWorkBySlug(ctx context.Context, slug string) (Work, bool, error)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("article_category", func(fl validator.FieldLevel) bool {
		return hasCategory(ArticleCategories, fl.Field().String())
	})
	_ = v.RegisterValidation("work_category", func(fl validator.FieldLevel) bool {
		return hasCategory(WorkCategories, fl.Field().String())
	})
	return v
}

// Validate reports whether a record has the required identity fields and a
// known main category.
func Validate(record any) error {
	return validate.Struct(record)
}
