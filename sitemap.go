package portfolio

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/portfolio/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, articles []content.Article, works []content.Work) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, "blogs")},
		{Loc: BuildURL(base, "projects")},
	}
	for _, art := range articles {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "blog", art.Slug),
			LastMod: lastMod(art.PublishedAt),
		})
	}
	for _, w := range works {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "project", w.Slug),
			LastMod: lastMod(w.Date()),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

// lastMod trims a store timestamp to the W3C date the sitemap expects.
func lastMod(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ""
}
