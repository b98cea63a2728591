package portfolio

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/related"
)

func (a *App) handleAPIArticles(c echo.Context) error {
	var q content.Query
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return jsonError(c, http.StatusBadRequest, "Bad Request")
	}
	articles, err := a.Repo.ListArticles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, content.FilterArticles(articles, q))
}

func (a *App) handleAPIArticle(c echo.Context) error {
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
	return c.JSON(http.StatusOK, articleDetail{Item: article, Similar: similar})
}

func (a *App) handleAPIWorks(c echo.Context) error {
	var q content.Query
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return jsonError(c, http.StatusBadRequest, "Bad Request")
	}
	works, err := a.Repo.ListWorks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, content.FilterWorks(works, q))
}

func (a *App) handleAPIWork(c echo.Context) error {
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
	return c.JSON(http.StatusOK, workDetail{Item: work, Similar: similar})
}

func handleAPICategories(c echo.Context) error {
	return c.JSON(http.StatusOK, categoriesResponse{
		Articles: content.ArticleCategories,
		Works:    content.WorkCategories,
	})
}
