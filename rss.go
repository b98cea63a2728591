package portfolio

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/portfolio/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// renderRSS writes the article feed. Undated articles are left out.
func (a *App) renderRSS(c echo.Context, articles []content.Article) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(articles))
	for _, art := range articles {
		t, ok := parseStoreDate(art.PublishedAt)
		if !ok {
			continue
		}
		articleURL := BuildURL(base, "blog", art.Slug)
		items = append(items, rssItem{
			Title:       art.Title,
			Link:        articleURL,
			Description: art.Description,
			Category:    content.CategoryTitle(content.ArticleCategories, art.MainCategory),
			PubDate:     t.Format(time.RFC1123Z),
			GUID:        articleURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}

// parseStoreDate accepts the date and datetime forms the content store emits.
func parseStoreDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
