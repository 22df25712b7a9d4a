// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package articles implements the article operations on top of a
// Repository: listing with filters and pages, fetch with view counting,
// create, partial update, delete and the derived category and featured
// listings.
package articles

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/models"
	"newsdesk/internal/store"
)

// Repository is the persistence contract. Lookups return nil with a nil
// error when the article does not exist.
type Repository interface {
	Find(ctx context.Context, q store.Query) ([]models.Article, error)
	Count(ctx context.Context, f store.Filter) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	Insert(ctx context.Context, a *models.Article) (*models.Article, error)
	Update(ctx context.Context, id uuid.UUID, p models.ArticlePatch) (*models.Article, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	IncrementViews(ctx context.Context, id uuid.UUID) (*models.Article, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// Page is one page of a listing.
type Page struct {
	Articles   []models.Article
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// CreateInput is the client payload for a new article.
type CreateInput struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Author   string  `json:"author"`
	Category string  `json:"category"`
	Featured *bool   `json:"featured,omitempty"`
	Image    *string `json:"image,omitempty"`
}

// Service runs article operations against a Repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a Service backed by repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns the page of articles matching p together with the total
// match count.
func (s *Service) List(ctx context.Context, p ListParams) (*Page, error) {
	q := p.Query()

	total, err := s.repo.Count(ctx, q.Filter)
	if err != nil {
		return nil, storeErr("count articles", err)
	}
	items, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, storeErr("find articles", err)
	}
	if items == nil {
		items = []models.Article{}
	}

	page, limit := p.normalized()
	return &Page{
		Articles:   items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}, nil
}

// Get returns the article with the given id after counting one view.
func (s *Service) Get(ctx context.Context, rawID string) (*models.Article, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		return nil, storeErr("increment views", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// Create validates in and stores a new article published now.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Article, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	a := &models.Article{
		Title:         in.Title,
		Content:       in.Content,
		Author:        in.Author,
		Category:      in.Category,
		PublishedDate: s.now().UTC(),
	}
	if in.Featured != nil {
		a.Featured = *in.Featured
	}
	if in.Image != nil && *in.Image != "" {
		img := *in.Image
		a.Image = &img
	}

	created, err := s.repo.Insert(ctx, a)
	if err != nil {
		return nil, storeErr("insert article", err)
	}
	slog.Info("article created", "id", created.ID, "category", created.Category)
	return created, nil
}

// Update applies the set fields of patch to the article with the given id.
func (s *Service) Update(ctx context.Context, rawID string, patch models.ArticlePatch) (*models.Article, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	a, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, storeErr("update article", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// Delete removes the article with the given id.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return storeErr("delete article", err)
	}
	if !removed {
		return ErrNotFound
	}
	slog.Info("article deleted", "id", id)
	return nil
}

// Categories returns the distinct categories in use, sorted.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, storeErr("distinct categories", err)
	}
	if cats == nil {
		cats = []string{}
	}
	return cats, nil
}

// Featured returns the most recent featured articles.
func (s *Service) Featured(ctx context.Context) ([]models.Article, error) {
	items, err := s.repo.Find(ctx, store.Query{
		Filter: store.Filter{FeaturedOnly: true},
		Limit:  FeaturedLimit,
	})
	if err != nil {
		return nil, storeErr("find featured", err)
	}
	if items == nil {
		items = []models.Article{}
	}
	return items, nil
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return storeErr("ping", err)
	}
	return nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
