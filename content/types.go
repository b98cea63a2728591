// Package content reads the portfolio's articles and works from a content
// store. Two backends implement Repository: Client queries the hosted Sanity
// dataset, SQLiteStore reads a local snapshot of it.
package content

import "github.com/goccy/go-json"

// Article is a blog post (Sanity document type "blog").
type Article struct {
	ID           string          `json:"_id" validate:"required"`
	Slug         string          `json:"slug" validate:"required"`
	Title        string          `json:"title" validate:"required"`
	PublishedAt  string          `json:"publishedAt,omitempty"`
	Description  string          `json:"description,omitempty"`
	ReadingTime  int             `json:"readingTime,omitempty"`
	MainImage    json.RawMessage `json:"mainImage,omitempty"`
	MainCategory string          `json:"mainCategory,omitempty" validate:"omitempty,article_category"`
	Tags         []string        `json:"tags,omitempty"`
	Content      json.RawMessage `json:"content,omitempty"`
	CreatedAt    string          `json:"_createdAt,omitempty"`
}

// Link returns the site path of the article page.
func (a Article) Link() string {
	return "/blog/" + a.Slug + "/"
}

// Work is a showcased project (Sanity document type "project").
type Work struct {
	ID           string          `json:"_id" validate:"required"`
	Slug         string          `json:"slug" validate:"required"`
	Title        string          `json:"title" validate:"required"`
	Overview     string          `json:"overview,omitempty"`
	Description  string          `json:"description,omitempty"`
	Image        json.RawMessage `json:"image,omitempty"`
	Technologies []string        `json:"technologies,omitempty"`
	ProjectType  string          `json:"projectType,omitempty"`
	MainCategory string          `json:"mainCategory,omitempty" validate:"omitempty,work_category"`
	Tags         []string        `json:"tags,omitempty"`
	GithubLink   string          `json:"githubLink,omitempty"`
	LiveLink     string          `json:"liveLink,omitempty"`
	Content      json.RawMessage `json:"content,omitempty"`
	PublishedAt  string          `json:"publishedAt,omitempty"`
	CreatedAt    string          `json:"_createdAt,omitempty"`
}

// Link returns the site path of the work page.
func (w Work) Link() string {
	return "/project/" + w.Slug + "/"
}

// Date returns the publication date, falling back to the creation timestamp.
func (w Work) Date() string {
	if w.PublishedAt != "" {
		return w.PublishedAt
	}
	return w.CreatedAt
}

// Category is one value of a main-category enumeration with its display title.
type Category struct {
	Value string `json:"value"`
	Title string `json:"title"`
}

// ArticleCategories is the fixed main-category enumeration for articles.
var ArticleCategories = []Category{
	{Value: "technology", Title: "Technology"},
	{Value: "ai-ml", Title: "AI & Machine Learning"},
	{Value: "automation", Title: "Automation"},
	{Value: "backend", Title: "Backend"},
	{Value: "web-development", Title: "Web Development"},
	{Value: "mobile-development", Title: "Mobile Development"},
	{Value: "data-science", Title: "Data Science"},
	{Value: "devops", Title: "DevOps"},
	{Value: "software-engineering", Title: "Software Engineering"},
	{Value: "data-engineering", Title: "Data Engineering"},
	{Value: "programming", Title: "Programming"},
	{Value: "career", Title: "Career"},
	{Value: "tutorial", Title: "Tutorial"},
	{Value: "review", Title: "Review"},
	{Value: "opinion", Title: "Opinion"},
}

// WorkCategories is the fixed main-category enumeration for works.
var WorkCategories = []Category{
	{Value: "web-application", Title: "Web Application"},
	{Value: "mobile-application", Title: "Mobile Application"},
	{Value: "desktop-application", Title: "Desktop Application"},
	{Value: "ai-ml-project", Title: "AI/ML Project"},
	{Value: "data-science", Title: "Data Science"},
	{Value: "game-development", Title: "Game Development"},
	{Value: "api-backend", Title: "API/Backend"},
	{Value: "devops-infrastructure", Title: "DevOps/Infrastructure"},
	{Value: "open-source", Title: "Open Source"},
	{Value: "e-commerce", Title: "E-commerce"},
	{Value: "portfolio-website", Title: "Portfolio/Website"},
	{Value: "tool-utility", Title: "Tool/Utility"},
}

// CategoryTitle returns the display title of value within cats, or value
// itself when it is not part of the enumeration.
func CategoryTitle(cats []Category, value string) string {
	for _, c := range cats {
		if c.Value == value {
			return c.Title
		}
	}
	return value
}

func hasCategory(cats []Category, value string) bool {
	for _, c := range cats {
		if c.Value == value {
			return true
		}
	}
	return false
}
