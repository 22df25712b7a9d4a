// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is a single news item. ID, PublishedDate and Views are owned by
// the store and the service; clients never set them directly.
type Article struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Author        string    `json:"author"`
	Category      string    `json:"category"`
	Featured      bool      `json:"featured"`
	Image         *string   `json:"image,omitempty"`
	PublishedDate time.Time `json:"publishedDate"`
	Views         int64     `json:"views"`
}

// HasImage reports whether an image reference is attached.
func (a *Article) HasImage() bool {
	return a.Image != nil && *a.Image != ""
}

// ArticlePatch describes a partial update. Only fields that are Set are
// applied; an unset field leaves the stored value untouched.
type ArticlePatch struct {
	Title    Optional[string] `json:"title"`
	Content  Optional[string] `json:"content"`
	Author   Optional[string] `json:"author"`
	Category Optional[string] `json:"category"`
	Featured Optional[bool]   `json:"featured"`
	// Image set to "" (or null) removes the image.
	Image Optional[string] `json:"image"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ArticlePatch) IsEmpty() bool {
	return !p.Title.Set && !p.Content.Set && !p.Author.Set &&
		!p.Category.Set && !p.Featured.Set && !p.Image.Set
}

// Apply merges the patch into a copy of a and returns it.
func (p ArticlePatch) Apply(a Article) Article {
	if p.Title.Set {
		a.Title = p.Title.Value
	}
	if p.Content.Set {
		a.Content = p.Content.Value
	}
	if p.Author.Set {
		a.Author = p.Author.Value
	}
	if p.Category.Set {
		a.Category = p.Category.Value
	}
	if p.Featured.Set {
		a.Featured = p.Featured.Value
	}
	if p.Image.Set {
		if p.Image.Value == "" {
			a.Image = nil
		} else {
			img := p.Image.Value
			a.Image = &img
		}
	}
	return a
}
