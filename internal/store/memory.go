// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

// MemoryStore is an in-process article store with the same semantics as
// ArticleStore. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	articles map[uuid.UUID]*models.Article
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{articles: make(map[uuid.UUID]*models.Article)}
}

// clone copies an article so callers never share the stored image pointer.
func clone(a *models.Article) models.Article {
	c := *a
	if a.Image != nil {
		img := *a.Image
		c.Image = &img
	}
	return c
}

// sorted returns the matching articles ordered like listOrder. Caller holds mu.
func (s *MemoryStore) sorted(f Filter) []models.Article {
	items := make([]models.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if f.Matches(a) {
			items = append(items, clone(a))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].PublishedDate.Equal(items[j].PublishedDate) {
			return items[i].PublishedDate.After(items[j].PublishedDate)
		}
		return strings.Compare(items[i].ID.String(), items[j].ID.String()) > 0
	})
	return items
}

// Find returns one page of articles matching the query, newest first.
func (s *MemoryStore) Find(_ context.Context, q Query) ([]models.Article, error) {
	s.mu.RLock()
	items := s.sorted(q.Filter)
	s.mu.RUnlock()

	if q.Offset > 0 {
		if q.Offset >= len(items) {
			return []models.Article{}, nil
		}
		items = items[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(items) {
		items = items[:q.Limit]
	}
	return items, nil
}

// Count returns the number of articles matching the filter.
func (s *MemoryStore) Count(_ context.Context, f Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, a := range s.articles {
		if f.Matches(a) {
			n++
		}
	}
	return n, nil
}

// FindByID retrieves an article by ID. Returns nil if not found.
func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, nil
	}
	c := clone(a)
	return &c, nil
}

// Insert stores a new article under a freshly generated ID.
func (s *MemoryStore) Insert(_ context.Context, a *models.Article) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := clone(a)
	stored.ID = uuid.New()
	s.articles[stored.ID] = &stored

	result := clone(&stored)
	return &result, nil
}

// Update applies the set fields of the patch. Returns nil if not found.
func (s *MemoryStore) Update(_ context.Context, id uuid.UUID, p models.ArticlePatch) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, nil
	}
	updated := p.Apply(clone(a))
	s.articles[id] = &updated

	result := clone(&updated)
	return &result, nil
}

// Delete removes an article and reports whether it existed.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[id]; !ok {
		return false, nil
	}
	delete(s.articles, id)
	return true, nil
}

// IncrementViews adds one to the view counter under the write lock and
// returns the updated article. Returns nil if not found.
func (s *MemoryStore) IncrementViews(_ context.Context, id uuid.UUID) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, nil
	}
	a.Views++
	c := clone(a)
	return &c, nil
}

// DistinctCategories returns every category in use, sorted ascending.
func (s *MemoryStore) DistinctCategories(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, a := range s.articles {
		if _, ok := seen[a.Category]; ok {
			continue
		}
		seen[a.Category] = struct{}{}
		categories = append(categories, a.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
