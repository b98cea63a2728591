package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

const backendSQLite = "sqlite"

// SQLiteStore is the Repository backed by a local SQLite snapshot of the
// content store. It is filled by Snapshot and read by the site when running
// without network access to the hosted dataset.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and creates the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the site keep reading while a snapshot replaces the tables.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    published_at TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    reading_time INTEGER NOT NULL DEFAULT 0,
    main_image TEXT NOT NULL DEFAULT '',
    main_category TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',
    content TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS works (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    overview TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL DEFAULT '',
    technologies TEXT NOT NULL DEFAULT '[]',
    project_type TEXT NOT NULL DEFAULT '',
    main_category TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',
    github_link TEXT NOT NULL DEFAULT '',
    live_link TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    published_at TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT ''
);
`)
	return err
}

const (
	articleListColumns = `id, slug, title, published_at, description, reading_time, main_image, main_category, tags, created_at`
	workListColumns    = `id, slug, title, overview, image, technologies, project_type, main_category, tags, github_link, live_link, published_at, created_at`
)

// ListArticles implements Repository. Undated articles sort last.
func (s *SQLiteStore) ListArticles(ctx context.Context) (articles []Article, err error) {
	const op = "list articles"
	defer func(start time.Time) { observeQuery(backendSQLite, op, start, err) }(time.Now())

	rows, err := s.db.QueryContext(ctx, `SELECT `+articleListColumns+` FROM articles ORDER BY published_at = '', published_at DESC, created_at DESC`)
	if err != nil {
		return nil, repoErr(op, err)
	}
	defer rows.Close()

	articles = []Article{}
	for rows.Next() {
		var a Article
		var image, tags string
		if err := rows.Scan(&a.ID, &a.Slug, &a.Title, &a.PublishedAt, &a.Description, &a.ReadingTime, &image, &a.MainCategory, &tags, &a.CreatedAt); err != nil {
			return nil, repoErr(op, err)
		}
		a.MainImage = rawOrNil(image)
		if a.Tags, err = decodeStrings(tags); err != nil {
			return nil, repoErr(op, err)
		}
		if err := checkRecord(a); err != nil {
			return nil, repoErr(op, err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, repoErr(op, err)
	}
	return articles, nil
}

// ListWorks implements Repository.
func (s *SQLiteStore) ListWorks(ctx context.Context) (works []Work, err error) {
	const op = "list works"
	defer func(start time.Time) { observeQuery(backendSQLite, op, start, err) }(time.Now())

	rows, err := s.db.QueryContext(ctx, `SELECT `+workListColumns+` FROM works ORDER BY created_at DESC`)
	if err != nil {
		return nil, repoErr(op, err)
	}
	defer rows.Close()

	works = []Work{}
	for rows.Next() {
		w, err := scanWork(rows.Scan, false)
		if err == nil {
			err = checkRecord(w)
		}
		if err != nil {
			return nil, repoErr(op, err)
		}
		works = append(works, w)
	}
	if err := rows.Err(); err != nil {
		return nil, repoErr(op, err)
	}
	return works, nil
}

// GetArticleBySlug implements Repository.
func (s *SQLiteStore) GetArticleBySlug(ctx context.Context, slug string) (Article, bool, error) {
	const op = "get article"
	start := time.Now()

	var a Article
	var image, tags, body string
	err := s.db.QueryRowContext(ctx, `SELECT `+articleListColumns+`, content FROM articles WHERE slug = ?`, slug).
		Scan(&a.ID, &a.Slug, &a.Title, &a.PublishedAt, &a.Description, &a.ReadingTime, &image, &a.MainCategory, &tags, &a.CreatedAt, &body)
	if errors.Is(err, sql.ErrNoRows) {
		observeQuery(backendSQLite, op, start, nil)
		return Article{}, false, nil
	}
	if err == nil {
		a.MainImage = rawOrNil(image)
		a.Content = rawOrNil(body)
		a.Tags, err = decodeStrings(tags)
	}
	if err == nil {
		err = checkRecord(a)
	}
	observeQuery(backendSQLite, op, start, err)
	if err != nil {
		return Article{}, false, repoErr(op, err)
	}
	return a, true, nil
}

// GetWorkBySlug implements Repository.
func (s *SQLiteStore) GetWorkBySlug(ctx context.Context, slug string) (Work, bool, error) {
	const op = "get work"
	start := time.Now()

	row := s.db.QueryRowContext(ctx, `SELECT `+workListColumns+`, description, content FROM works WHERE slug = ?`, slug)
	w, err := scanWork(row.Scan, true)
	if errors.Is(err, sql.ErrNoRows) {
		observeQuery(backendSQLite, op, start, nil)
		return Work{}, false, nil
	}
	if err == nil {
		err = checkRecord(w)
	}
	observeQuery(backendSQLite, op, start, err)
	if err != nil {
		return Work{}, false, repoErr(op, err)
	}
	return w, true, nil
}

func scanWork(scan func(dest ...any) error, full bool) (Work, error) {
	var w Work
	var image, tech, tags, body string
	dest := []any{&w.ID, &w.Slug, &w.Title, &w.Overview, &image, &tech, &w.ProjectType, &w.MainCategory, &tags, &w.GithubLink, &w.LiveLink, &w.PublishedAt, &w.CreatedAt}
	if full {
		dest = append(dest, &w.Description, &body)
	}
	if err := scan(dest...); err != nil {
		return Work{}, err
	}
	var err error
	w.Image = rawOrNil(image)
	w.Content = rawOrNil(body)
	if w.Technologies, err = decodeStrings(tech); err != nil {
		return Work{}, err
	}
	if w.Tags, err = decodeStrings(tags); err != nil {
		return Work{}, err
	}
	return w, nil
}

// ReplaceArticles swaps the stored articles for the given set in one transaction.
func (s *SQLiteStore) ReplaceArticles(ctx context.Context, articles []Article) error {
	return s.replace(ctx, "articles", len(articles), func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO articles (id, slug, title, published_at, description, reading_time, main_image, main_category, tags, content, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, a := range articles {
			tags, err := encodeStrings(a.Tags)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, a.ID, a.Slug, a.Title, a.PublishedAt, a.Description, a.ReadingTime,
				string(a.MainImage), a.MainCategory, tags, string(a.Content), a.CreatedAt); err != nil {
				return fmt.Errorf("insert article %s: %w", a.Slug, err)
			}
		}
		return nil
	})
}

// ReplaceWorks swaps the stored works for the given set in one transaction.
func (s *SQLiteStore) ReplaceWorks(ctx context.Context, works []Work) error {
	return s.replace(ctx, "works", len(works), func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO works (id, slug, title, overview, description, image, technologies, project_type, main_category, tags, github_link, live_link, content, published_at, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, w := range works {
			tech, err := encodeStrings(w.Technologies)
			if err != nil {
				return err
			}
			tags, err := encodeStrings(w.Tags)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, w.ID, w.Slug, w.Title, w.Overview, w.Description, string(w.Image), tech,
				w.ProjectType, w.MainCategory, tags, w.GithubLink, w.LiveLink, string(w.Content), w.PublishedAt, w.CreatedAt); err != nil {
				return fmt.Errorf("insert work %s: %w", w.Slug, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) replace(ctx context.Context, table string, n int, insert func(*sql.Tx) error) error {
	op := "replace " + table
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return repoErr(op, err)
	}
	defer tx.Rollback()

	// table is one of two constants, never caller input.
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return repoErr(op, err)
	}
	if n > 0 {
		if err := insert(tx); err != nil {
			return repoErr(op, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return repoErr(op, err)
	}
	return nil
}

// checkRecord applies the shape rules the hosted client enforces.
func checkRecord(record any) error {
	if err := Validate(record); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}

func rawOrNil(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	return json.RawMessage(s)
}

func encodeStrings(vals []string) (string, error) {
	if len(vals) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeStrings(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var vals []string
	if err := json.Unmarshal([]byte(s), &vals); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return vals, nil
}
