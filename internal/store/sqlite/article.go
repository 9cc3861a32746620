package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/mrjoshuak/postcollect/types"
)

var _ types.ArticleStore = (*ArticleStore)(nil)

// timeFormat sorts lexically in time order.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// ArticleStore implements types.ArticleStore using SQLite. Saving a page
// whose content changed adds a new revision; FindBySourceURL returns the
// latest one.
type ArticleStore struct {
	db  *DB
	now func() time.Time
}

// NewArticleStore creates a new ArticleStore.
func NewArticleStore(db *DB) *ArticleStore {
	return &ArticleStore{db: db, now: time.Now}
}

// hashContent fingerprints the stored fields of a page.
func hashContent(page *types.ExtractedPage) string {
	d := xxhash.New()
	for _, field := range []string{page.Title, page.Content, page.Author, string(page.PostFormat)} {
		_, _ = d.WriteString(field)
		_, _ = d.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// Save stores page and returns its id. Saving a page identical to the latest
// revision for the same source URL returns that revision's id.
func (s *ArticleStore) Save(ctx context.Context, page *types.ExtractedPage) (string, error) {
	if page == nil || page.SourceURL == "" {
		return "", errors.New("page has no source url")
	}

	hash := hashContent(page)
	latest, err := s.FindBySourceURL(ctx, page.SourceURL)
	switch {
	case err == nil && latest.ContentHash == hash:
		return latest.ID, nil
	case err != nil && !errors.Is(err, types.ErrNotFound):
		return "", err
	}

	format := page.PostFormat
	if format == "" {
		format = types.PostFormatStandard
	}
	if !format.Valid() {
		return "", fmt.Errorf("unknown post format %q", format)
	}
	var published string
	if !page.Date.IsZero() {
		published = page.Date.UTC().Format(time.RFC3339)
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles (id, source_url, title, content, author, excerpt, post_format, published_at, content_hash, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, page.SourceURL, page.Title, page.Content, page.Author, page.Excerpt, string(format), published, hash,
		s.now().UTC().Format(timeFormat))
	if err != nil {
		return "", fmt.Errorf("failed to save article: %w", err)
	}
	return id, nil
}

const selectArticle = `SELECT id, source_url, title, content, author, excerpt, post_format, published_at, content_hash, saved_at FROM articles`

// FindByID retrieves an article by id.
func (s *ArticleStore) FindByID(ctx context.Context, id string) (*types.StoredArticle, error) {
	row := s.db.QueryRowContext(ctx, selectArticle+` WHERE id = ?`, id)
	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("article %s: %w", id, types.ErrNotFound)
	}
	return article, err
}

// FindBySourceURL retrieves the latest revision saved for sourceURL.
func (s *ArticleStore) FindBySourceURL(ctx context.Context, sourceURL string) (*types.StoredArticle, error) {
	row := s.db.QueryRowContext(ctx, selectArticle+` WHERE source_url = ? ORDER BY saved_at DESC, rowid DESC LIMIT 1`, sourceURL)
	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("article for %s: %w", sourceURL, types.ErrNotFound)
	}
	return article, err
}

// List returns the most recently saved articles, newest first. A limit of 0
// or less returns all of them.
func (s *ArticleStore) List(ctx context.Context, limit int) ([]*types.StoredArticle, error) {
	query := selectArticle + ` ORDER BY saved_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*types.StoredArticle
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*types.StoredArticle, error) {
	var (
		a                  types.StoredArticle
		format             string
		published, savedAt string
	)
	if err := row.Scan(&a.ID, &a.Page.SourceURL, &a.Page.Title, &a.Page.Content, &a.Page.Author,
		&a.Page.Excerpt, &format, &published, &a.ContentHash, &savedAt); err != nil {
		return nil, err
	}
	a.Page.PostFormat = types.PostFormat(format)

	var err error
	if a.SavedAt, err = time.Parse(timeFormat, savedAt); err != nil {
		return nil, fmt.Errorf("failed to parse saved_at: %w", err)
	}
	if published != "" {
		if a.Page.Date, err = time.Parse(time.RFC3339, published); err != nil {
			return nil, fmt.Errorf("failed to parse published_at: %w", err)
		}
	}
	return &a, nil
}
