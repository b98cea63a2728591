package portfolio

import (
	"net/url"
	"path"
	"strings"

	"github.com/goccy/go-json"

	"github.com/eringen/portfolio/content"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	addAuthor(data, cfg)
	return marshalJsonLD(data)
}

// ArticleJsonLD returns a JSON-LD string for a BlogPosting schema.
func ArticleJsonLD(a content.Article, cfg SiteConfig) string {
	articleURL := BuildURL(cfg.URL, "blog", a.Slug)
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    a.Title,
		"description": a.Description,
		"url":         articleURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   articleURL,
		},
	}
	if a.PublishedAt != "" {
		data["datePublished"] = a.PublishedAt
	}
	if a.MainCategory != "" {
		data["articleSection"] = content.CategoryTitle(content.ArticleCategories, a.MainCategory)
	}
	if len(a.Tags) > 0 {
		data["keywords"] = JoinTags(a.Tags)
	}
	addAuthor(data, cfg)
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	return marshalJsonLD(data)
}

// WorkJsonLD returns a JSON-LD string for a CreativeWork schema.
func WorkJsonLD(w content.Work, cfg SiteConfig) string {
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "CreativeWork",
		"name":        w.Title,
		"description": w.Overview,
		"url":         BuildURL(cfg.URL, "project", w.Slug),
	}
	if d := w.Date(); d != "" {
		data["dateCreated"] = d
	}
	if w.LiveLink != "" {
		data["sameAs"] = w.LiveLink
	}
	if w.GithubLink != "" {
		data["codeRepository"] = w.GithubLink
	}
	if keywords := append(append([]string{}, w.Tags...), w.Technologies...); len(keywords) > 0 {
		data["keywords"] = JoinTags(keywords)
	}
	addAuthor(data, cfg)
	return marshalJsonLD(data)
}

func addAuthor(data map[string]any, cfg SiteConfig) {
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
}

func marshalJsonLD(data map[string]any) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
