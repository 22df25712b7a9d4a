// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"fmt"
	"strings"

	"newsdesk/internal/models"
)

// Filter is the predicate shared by Find and Count. Zero values impose no
// restriction.
type Filter struct {
	// Category restricts to an exact, case-sensitive category match.
	Category string
	// FeaturedOnly restricts to featured articles.
	FeaturedOnly bool
	// Search matches title OR content as a case-insensitive substring.
	Search string
}

// Query is a filtered, sorted page request. Results are always ordered by
// published date descending, newest first.
type Query struct {
	Filter
	Offset int
	Limit  int // 0 means no limit
}

// Matches evaluates the filter against a single article in memory.
func (f Filter) Matches(a *models.Article) bool {
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.FeaturedOnly && !a.Featured {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Title), needle) &&
			!strings.Contains(strings.ToLower(a.Content), needle) {
			return false
		}
	}
	return true
}

// whereClause renders the filter as a SQL WHERE clause (including the
// keyword) with positional $n placeholders. It returns an empty string when
// the filter matches everything.
func (f Filter) whereClause() (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.FeaturedOnly {
		conds = append(conds, "featured = TRUE")
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR content ILIKE $%d ESCAPE '\')`, n, n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// likeEscaper escapes LIKE metacharacters so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// pageClause renders LIMIT/OFFSET, continuing placeholder numbering after
// the filter arguments.
func (q Query) pageClause(args []any) (string, []any) {
	var parts []string
	if q.Limit > 0 {
		args = append(args, q.Limit)
		parts = append(parts, fmt.Sprintf("LIMIT $%d", len(args)))
	}
	if q.Offset > 0 {
		args = append(args, q.Offset)
		parts = append(parts, fmt.Sprintf("OFFSET $%d", len(args)))
	}
	return strings.Join(parts, " "), args
}

// setClause renders the SET list of an UPDATE for the fields present in
// the patch, starting placeholder numbering at $1.
func setClause(p models.ArticlePatch) (string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Title.Set {
		add("title", p.Title.Value)
	}
	if p.Content.Set {
		add("content", p.Content.Value)
	}
	if p.Author.Set {
		add("author", p.Author.Value)
	}
	if p.Category.Set {
		add("category", p.Category.Value)
	}
	if p.Featured.Set {
		add("featured", p.Featured.Value)
	}
	if p.Image.Set {
		if p.Image.Value == "" {
			add("image", nil)
		} else {
			add("image", p.Image.Value)
		}
	}
	return strings.Join(sets, ", "), args
}
