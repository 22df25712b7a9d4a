// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP handlers of the article API. Request
// bodies are bound and responses rendered with go-chi/render.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chirender "github.com/go-chi/render"

	"newsdesk/internal/articles"
	"newsdesk/internal/metrics"
	"newsdesk/internal/models"
	"newsdesk/internal/render"
)

const invalidBody = "Invalid request body."

// Articles groups the article resource handlers.
type Articles struct {
	svc *articles.Service
}

// NewArticles creates the article handler group.
func NewArticles(svc *articles.Service) *Articles {
	return &Articles{svc: svc}
}

// createRequest is the POST /articles payload.
type createRequest struct {
	articles.CreateInput
}

func (c *createRequest) Bind(r *http.Request) error { return nil }

// updateRequest is the PUT /articles/{id} payload. Keys left out of the
// body stay unset.
type updateRequest struct {
	models.ArticlePatch
}

func (u *updateRequest) Bind(r *http.Request) error { return nil }

// List handles GET /articles.
func (h *Articles) List(w http.ResponseWriter, r *http.Request) {
	params := articles.ParseListParams(r.URL.Query())

	page, err := h.svc.List(r.Context(), params)
	metrics.RecordOperation("list", err)
	if err != nil {
		writeError(w, r, err, "Failed to fetch articles.")
		return
	}

	render.Send(w, r, render.Page(page.Articles, page.Total, page.Page, page.TotalPages))
}

// Get handles GET /articles/{id}. Every successful read counts one view.
func (h *Articles) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	metrics.RecordOperation("get", err)
	if err != nil {
		writeError(w, r, err, "Failed to fetch article.")
		return
	}

	render.Send(w, r, render.OK(a))
}

// Create handles POST /articles.
func (h *Articles) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := chirender.Bind(r, &req); err != nil {
		metrics.RecordOperation("create", err)
		render.Send(w, r, render.ErrBadRequest(invalidBody))
		return
	}

	a, err := h.svc.Create(r.Context(), req.CreateInput)
	metrics.RecordOperation("create", err)
	if err != nil {
		writeError(w, r, err, "Failed to create article.")
		return
	}

	render.Send(w, r, render.Created(a))
}

// Update handles PUT /articles/{id}.
func (h *Articles) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := chirender.Bind(r, &req); err != nil {
		metrics.RecordOperation("update", err)
		render.Send(w, r, render.ErrBadRequest(invalidBody))
		return
	}

	a, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req.ArticlePatch)
	metrics.RecordOperation("update", err)
	if err != nil {
		writeError(w, r, err, "Failed to update article.")
		return
	}

	render.Send(w, r, render.OK(a))
}

// Delete handles DELETE /articles/{id}.
func (h *Articles) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	metrics.RecordOperation("delete", err)
	if err != nil {
		writeError(w, r, err, "Failed to delete article.")
		return
	}

	render.Send(w, r, render.Message("Article deleted successfully."))
}

// Categories handles GET /categories.
func (h *Articles) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	metrics.RecordOperation("categories", err)
	if err != nil {
		writeError(w, r, err, "Failed to fetch categories.")
		return
	}

	render.Send(w, r, render.OK(cats))
}

// Featured handles GET /featured.
func (h *Articles) Featured(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Featured(r.Context())
	metrics.RecordOperation("featured", err)
	if err != nil {
		writeError(w, r, err, "Failed to fetch featured articles.")
		return
	}

	render.Send(w, r, render.OK(items))
}

// writeError maps service errors to envelopes. Anything outside the client
// error taxonomy is a 500 carrying the cause.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var verr *articles.ValidationError
	switch {
	case errors.As(err, &verr):
		render.Send(w, r, render.ErrBadRequest(verr.Message))
	case errors.Is(err, articles.ErrInvalidID):
		render.Send(w, r, render.ErrBadRequest("Invalid article ID."))
	case errors.Is(err, articles.ErrNotFound):
		render.Send(w, r, render.ErrNotFound("Article not found."))
	default:
		slog.Error("article request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		render.Send(w, r, render.ErrInternal(msg, err))
	}
}
