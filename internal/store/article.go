// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides persistence for articles. ArticleStore wraps a
// PostgreSQL *sql.DB; MemoryStore keeps everything in process and backs the
// test suites and the "memory" store driver.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

const articleColumns = `id, title, content, author, category, featured, image, published_date, views`

// listOrder keeps pages deterministic when two articles share a timestamp.
const listOrder = `ORDER BY published_date DESC, id DESC`

// ArticleStore handles all article database operations.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// scanArticle scans a row into an Article struct.
func scanArticle(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	var a models.Article
	err := scanner.Scan(
		&a.ID, &a.Title, &a.Content, &a.Author, &a.Category,
		&a.Featured, &a.Image, &a.PublishedDate, &a.Views,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Find returns one page of articles matching the query, newest first.
func (s *ArticleStore) Find(ctx context.Context, q Query) ([]models.Article, error) {
	where, args := q.whereClause()
	page, args := q.pageClause(args)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles `+where+` `+listOrder+` `+page, args...)
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	defer rows.Close()

	items := make([]models.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// Count returns the number of articles matching the filter.
func (s *ArticleStore) Count(ctx context.Context, f Filter) (int, error) {
	where, args := f.whereClause()

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// FindByID retrieves an article by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// Insert stores a new article and returns it with the generated ID. The
// caller supplies PublishedDate and Views.
func (s *ArticleStore) Insert(ctx context.Context, a *models.Article) (*models.Article, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO articles (title, content, author, category, featured, image, published_date, views)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+articleColumns,
		a.Title, a.Content, a.Author, a.Category, a.Featured, a.Image, a.PublishedDate, a.Views,
	)
	result, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	return result, nil
}

// Update applies the set fields of the patch and returns the updated
// article. Returns nil if no article has that ID.
func (s *ArticleStore) Update(ctx context.Context, id uuid.UUID, p models.ArticlePatch) (*models.Article, error) {
	if p.IsEmpty() {
		return s.FindByID(ctx, id)
	}

	sets, args := setClause(p)
	args = append(args, id)
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`UPDATE articles SET %s WHERE id = $%d RETURNING %s`, sets, len(args), articleColumns),
		args...,
	)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return a, nil
}

// Delete removes an article by ID and reports whether a row was removed.
func (s *ArticleStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete article: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete article rows: %w", err)
	}
	return n > 0, nil
}

// IncrementViews atomically adds one to the view counter and returns the
// article as it is after the increment. Returns nil if not found.
func (s *ArticleStore) IncrementViews(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE articles SET views = views + 1 WHERE id = $1 RETURNING `+articleColumns, id)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("increment article views: %w", err)
	}
	return a, nil
}

// DistinctCategories returns every category in use, sorted ascending.
func (s *ArticleStore) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM articles ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Ping verifies the database is reachable.
func (s *ArticleStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
