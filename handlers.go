package portfolio

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/related"
)

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	var articles []content.Article
	var works []content.Work

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		articles, err = a.Repo.ListArticles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		works, err = a.Repo.ListWorks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return Render(c, a.Views.Home(HomeData{
		Meta: PageMeta{
			Title:       a.Config.Name,
			Description: a.Config.Description,
			URL:         BuildURL(a.Config.URL),
			OGType:      "website",
			JSONLD:      WebsiteJsonLD(a.Config),
		},
		Articles:  firstN(articles, HomeItems),
		Works:     firstN(works, HomeItems),
		Flash:     popFlash(c),
		CSRFToken: csrfToken(c),
	}))
}

func (a *App) handleArticles(c echo.Context) error {
	var q content.Query
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}
	articles, err := a.Repo.ListArticles(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.Articles(ArticlesData{
		Meta: PageMeta{
			Title:       "Blog | " + a.Config.Name,
			Description: a.Config.Description,
			URL:         BuildURL(a.Config.URL, "blogs"),
			OGType:      "website",
		},
		Articles:   content.FilterArticles(articles, q),
		Query:      q,
		Categories: content.ArticleCategories,
	}))
}

func (a *App) handleArticle(c echo.Context) error {
	ctx := c.Request().Context()
	article, ok, err := a.Repo.GetArticleBySlug(ctx, c.Param("slug"))
	if err != nil {
		return err
	}
	if !ok {
		return echo.ErrNotFound
	}
	similar, err := a.Ranker.SimilarArticles(ctx, related.ArticleReference(article))
	if err != nil {
		return err
	}
	return Render(c, a.Views.Article(ArticleData{
		Meta: PageMeta{
			Title:       article.Title + " | " + a.Config.Name,
			Description: article.Description,
			URL:         BuildURL(a.Config.URL, "blog", article.Slug),
			OGType:      "article",
			JSONLD:      ArticleJsonLD(article, a.Config),
		},
		Article: article,
		Similar: similar,
	}))
}

func (a *App) handleWorks(c echo.Context) error {
	var q content.Query
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}
	works, err := a.Repo.ListWorks(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.Works(WorksData{
		Meta: PageMeta{
			Title:       "Projects | " + a.Config.Name,
			Description: a.Config.Description,
			URL:         BuildURL(a.Config.URL, "projects"),
			OGType:      "website",
		},
		Works:      content.FilterWorks(works, q),
		Query:      q,
		Categories: content.WorkCategories,
	}))
}

func (a *App) handleWork(c echo.Context) error {
	ctx := c.Request().Context()
	work, ok, err := a.Repo.GetWorkBySlug(ctx, c.Param("slug"))
	if err != nil {
		return err
	}
	if !ok {
		return echo.ErrNotFound
	}
	similar, err := a.Ranker.SimilarWorks(ctx, related.WorkReference(work))
	if err != nil {
		return err
	}
	return Render(c, a.Views.Work(WorkData{
		Meta: PageMeta{
			Title:       work.Title + " | " + a.Config.Name,
			Description: work.Overview,
			URL:         BuildURL(a.Config.URL, "project", work.Slug),
			OGType:      "article",
			JSONLD:      WorkJsonLD(work, a.Config),
		},
		Work:    work,
		Similar: similar,
	}))
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	var articles []content.Article
	var works []content.Work

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		articles, err = a.Repo.ListArticles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		works, err = a.Repo.ListWorks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return a.renderSitemap(c, articles, works)
}

func (a *App) handleFeed(c echo.Context) error {
	articles, err := a.Repo.ListArticles(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, articles)
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n", strings.TrimSuffix(BuildURL(a.Config.URL), "/")+"/sitemap.xml")
	return c.String(http.StatusOK, body)
}

func handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func metricsHandler() http.Handler {
	return promhttp.Handler()
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	he, ok := err.(*echo.HTTPError)
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error().Err(err).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Str("uri", c.Request().RequestURI).
			Msg("server error")
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		_ = jsonError(c, code, http.StatusText(code))
		return
	}
	switch {
	case code == http.StatusNotFound && a.Views.NotFound != nil:
		_ = RenderStatus(c, code, a.Views.NotFound())
	case code >= 500 && a.Views.ServerError != nil:
		_ = RenderStatus(c, code, a.Views.ServerError())
	default:
		_ = c.String(code, http.StatusText(code))
	}
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
