// Package seed inserts the embedded sample articles into an empty store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"newsdesk/internal/models"
	"newsdesk/internal/store"
)

//go:embed articles.yaml
var fixtureYAML []byte

// Store is the subset of the article store needed for seeding.
type Store interface {
	Count(ctx context.Context, f store.Filter) (int, error)
	Insert(ctx context.Context, a *models.Article) (*models.Article, error)
}

// fixture is one sample article. DaysAgo places its publish date relative
// to the seeding time.
type fixture struct {
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	Author   string `yaml:"author"`
	Category string `yaml:"category"`
	Featured bool   `yaml:"featured"`
	Image    string `yaml:"image"`
	DaysAgo  int    `yaml:"days_ago"`
	Views    int64  `yaml:"views"`
}

func loadFixtures(data []byte) ([]fixture, error) {
	var doc struct {
		Articles []fixture `yaml:"articles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("seed decode fixtures: %w", err)
	}
	return doc.Articles, nil
}

// Run inserts the sample articles if s holds none. It returns the number
// of articles inserted.
func Run(ctx context.Context, s Store) (int, error) {
	count, err := s.Count(ctx, store.Filter{})
	if err != nil {
		return 0, fmt.Errorf("seed check articles: %w", err)
	}
	if count > 0 {
		slog.Info("store already seeded, skipping", "articles", count)
		return 0, nil
	}

	fixtures, err := loadFixtures(fixtureYAML)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	for i, f := range fixtures {
		a := &models.Article{
			Title:         f.Title,
			Content:       f.Content,
			Author:        f.Author,
			Category:      f.Category,
			Featured:      f.Featured,
			PublishedDate: now.AddDate(0, 0, -f.DaysAgo).Add(-time.Duration(i) * time.Minute),
			Views:         f.Views,
		}
		if f.Image != "" {
			img := f.Image
			a.Image = &img
		}
		if _, err := s.Insert(ctx, a); err != nil {
			return i, fmt.Errorf("seed insert %q: %w", f.Title, err)
		}
	}

	slog.Info("store seeded with sample articles", "articles", len(fixtures))
	return len(fixtures), nil
}
