package portfolio

import (
	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/related"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}

// Flash holds the one-shot contact form outcome shown after a redirect.
type Flash struct {
	Success string
	Error   string
}

// HomeData is passed to ViewFuncs.Home.
type HomeData struct {
	Meta      PageMeta
	Articles  []content.Article // newest first, at most HomeItems
	Works     []content.Work
	Flash     Flash
	CSRFToken string
}

// ArticlesData is passed to ViewFuncs.Articles.
type ArticlesData struct {
	Meta       PageMeta
	Articles   []content.Article
	Query      content.Query
	Categories []content.Category
}

// ArticleData is passed to ViewFuncs.Article.
type ArticleData struct {
	Meta    PageMeta
	Article content.Article
	Similar []related.Match[content.Article]
}

// WorksData is passed to ViewFuncs.Works.
type WorksData struct {
	Meta       PageMeta
	Works      []content.Work
	Query      content.Query
	Categories []content.Category
}

// WorkData is passed to ViewFuncs.Work.
type WorkData struct {
	Meta    PageMeta
	Work    content.Work
	Similar []related.Match[content.Work]
}

type articleDetail struct {
	Item    content.Article                  `json:"item"`
	Similar []related.Match[content.Article] `json:"similar"`
}

type workDetail struct {
	Item    content.Work                  `json:"item"`
	Similar []related.Match[content.Work] `json:"similar"`
}

type categoriesResponse struct {
	Articles []content.Category `json:"articles"`
	Works    []content.Category `json:"works"`
}
