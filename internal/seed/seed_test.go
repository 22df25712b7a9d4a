package seed

import (
	"context"
	"errors"
	"testing"

	"newsdesk/internal/models"
	"newsdesk/internal/store"
)

func TestFixturesValid(t *testing.T) {
	fixtures, err := loadFixtures(fixtureYAML)
	if err != nil {
		t.Fatalf("loadFixtures: %v", err)
	}
	if len(fixtures) < 10 {
		t.Fatalf("expected at least 10 fixtures, got %d", len(fixtures))
	}

	featured := 0
	for _, f := range fixtures {
		if f.Title == "" || f.Content == "" || f.Author == "" || f.Category == "" {
			t.Errorf("fixture %q is missing a required field", f.Title)
		}
		if f.DaysAgo < 0 || f.Views < 0 {
			t.Errorf("fixture %q has negative days_ago or views", f.Title)
		}
		if f.Featured {
			featured++
		}
	}
	if featured <= 5 {
		t.Errorf("expected more than 5 featured fixtures to exercise the limit, got %d", featured)
	}
}

func TestLoadFixturesInvalid(t *testing.T) {
	if _, err := loadFixtures([]byte("articles: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestRun(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	n, err := Run(ctx, s)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	fixtures, _ := loadFixtures(fixtureYAML)
	if n != len(fixtures) {
		t.Errorf("inserted: got %d, want %d", n, len(fixtures))
	}

	items, err := s.Find(ctx, store.Query{Limit: 1})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if items[0].Title != fixtures[0].Title {
		t.Errorf("newest article: got %q, want %q", items[0].Title, fixtures[0].Title)
	}
}

func TestRunIdempotent(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	if _, err := Run(ctx, s); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	n, err := Run(ctx, s)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if n != 0 {
		t.Errorf("second Run inserted %d articles, want 0", n)
	}

	total, _ := s.Count(ctx, store.Filter{})
	fixtures, _ := loadFixtures(fixtureYAML)
	if total != len(fixtures) {
		t.Errorf("total: got %d, want %d", total, len(fixtures))
	}
}

type failingStore struct{}

func (failingStore) Count(context.Context, store.Filter) (int, error) {
	return 0, errors.New("connection refused")
}

func (failingStore) Insert(context.Context, *models.Article) (*models.Article, error) {
	return nil, errors.New("unreachable")
}

func TestRunStoreError(t *testing.T) {
	if _, err := Run(context.Background(), failingStore{}); err == nil {
		t.Error("expected error when the store is down")
	}
}
