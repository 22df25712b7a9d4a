// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides the JSON envelopes returned by every API route.
// Each envelope is a go-chi/render Renderer that sets its own status code;
// the body always carries "success" plus either "data" or "message".
package render

import (
	"log/slog"
	"net/http"

	chirender "github.com/go-chi/render"
)

// Response is a successful envelope.
type Response struct {
	HTTPStatusCode int `json:"-"`

	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Render sets the response status.
func (resp *Response) Render(w http.ResponseWriter, r *http.Request) error {
	chirender.Status(r, resp.HTTPStatusCode)
	return nil
}

// PageResponse is a successful listing envelope with pagination metadata.
type PageResponse struct {
	Success    bool `json:"success"`
	Data       any  `json:"data"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
}

func (resp *PageResponse) Render(w http.ResponseWriter, r *http.Request) error {
	chirender.Status(r, http.StatusOK)
	return nil
}

// ErrResponse is a failed envelope. ErrorText is only filled for server
// errors, where it carries the underlying cause.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorText string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	chirender.Status(r, e.HTTPStatusCode)
	return nil
}

// OK wraps data in a 200 envelope.
func OK(data any) *Response {
	return &Response{HTTPStatusCode: http.StatusOK, Success: true, Data: data}
}

// Created wraps data in a 201 envelope.
func Created(data any) *Response {
	return &Response{HTTPStatusCode: http.StatusCreated, Success: true, Data: data}
}

// Message returns a 200 envelope carrying only a message.
func Message(msg string) *Response {
	return &Response{HTTPStatusCode: http.StatusOK, Success: true, Message: msg}
}

// Page wraps one page of a listing.
func Page(data any, total, page, totalPages int) *PageResponse {
	return &PageResponse{
		Success:    true,
		Data:       data,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
}

// ErrBadRequest is a 400 envelope.
func ErrBadRequest(msg string) *ErrResponse {
	return &ErrResponse{HTTPStatusCode: http.StatusBadRequest, Message: msg}
}

// ErrNotFound is a 404 envelope.
func ErrNotFound(msg string) *ErrResponse {
	return &ErrResponse{HTTPStatusCode: http.StatusNotFound, Message: msg}
}

// ErrTooManyRequests is a 429 envelope.
func ErrTooManyRequests() *ErrResponse {
	return &ErrResponse{
		HTTPStatusCode: http.StatusTooManyRequests,
		Message:        "Too many requests. Please try again later.",
	}
}

// ErrInternal is a 500 envelope that exposes the cause of err.
func ErrInternal(msg string, err error) *ErrResponse {
	e := &ErrResponse{HTTPStatusCode: http.StatusInternalServerError, Message: msg, Err: err}
	if err != nil {
		e.ErrorText = err.Error()
	}
	return e
}

// ErrUnavailable is a 503 envelope.
func ErrUnavailable(msg string, err error) *ErrResponse {
	e := ErrInternal(msg, err)
	e.HTTPStatusCode = http.StatusServiceUnavailable
	return e
}

// Send renders v, logging any encoding failure.
func Send(w http.ResponseWriter, r *http.Request, v chirender.Renderer) {
	if err := chirender.Render(w, r, v); err != nil {
		slog.Error("render response failed", "error", err, "path", r.URL.Path)
	}
}
