package content

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// snapshotFetchLimit bounds concurrent single-item lookups against the source.
const snapshotFetchLimit = 4

// SnapshotWriter receives the full record sets produced by Snapshot.
type SnapshotWriter interface {
	ReplaceArticles(ctx context.Context, articles []Article) error
	ReplaceWorks(ctx context.Context, works []Work) error
}

// SnapshotResult counts the records written by Snapshot.
type SnapshotResult struct {
	Articles int
	Works    int
}

// Snapshot copies every article and work from src into dst. Listings carry
// no content body, so each record is fetched again by slug. Records that
// disappear between the listing and the lookup are skipped.
func Snapshot(ctx context.Context, src Repository, dst SnapshotWriter) (SnapshotResult, error) {
	articles, err := src.ListArticles(ctx)
	if err != nil {
		return SnapshotResult{}, err
	}
	works, err := src.ListWorks(ctx)
	if err != nil {
		return SnapshotResult{}, err
	}

	fullArticles, err := fetchAll(ctx, articles, func(ctx context.Context, a Article) (Article, bool, error) {
		return src.GetArticleBySlug(ctx, a.Slug)
	})
	if err != nil {
		return SnapshotResult{}, fmt.Errorf("snapshot articles: %w", err)
	}
	fullWorks, err := fetchAll(ctx, works, func(ctx context.Context, w Work) (Work, bool, error) {
		return src.GetWorkBySlug(ctx, w.Slug)
	})
	if err != nil {
		return SnapshotResult{}, fmt.Errorf("snapshot works: %w", err)
	}

	if err := dst.ReplaceArticles(ctx, fullArticles); err != nil {
		return SnapshotResult{}, err
	}
	if err := dst.ReplaceWorks(ctx, fullWorks); err != nil {
		return SnapshotResult{}, err
	}
	return SnapshotResult{Articles: len(fullArticles), Works: len(fullWorks)}, nil
}

func fetchAll[T any](ctx context.Context, items []T, get func(context.Context, T) (T, bool, error)) ([]T, error) {
	full := make([]T, len(items))
	found := make([]bool, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotFetchLimit)
	for i, item := range items {
		g.Go(func() error {
			rec, ok, err := get(gctx, item)
			if err != nil {
				return err
			}
			full[i], found[i] = rec, ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(items))
	for i := range full {
		if found[i] {
			out = append(out, full[i])
		}
	}
	return out, nil
}
