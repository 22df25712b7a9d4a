// Package router sets up the HTTP routes and middleware chains of the
// newsdesk API.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	chirender "github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
	"newsdesk/internal/render"
	"newsdesk/web"
)

// New creates the chi router with all middleware and routes wired up.
// Mutating article routes go through limiter. With trustProxy set the
// client address is taken from X-Forwarded-For or X-Real-IP.
func New(arts *handlers.Articles, store handlers.Pinger, limiter middleware.Limiter, trustProxy bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	if trustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Send(w, r, render.ErrNotFound("Route not found."))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		render.Send(w, r, &render.ErrResponse{
			HTTPStatusCode: http.StatusMethodNotAllowed,
			Message:        "Method not allowed.",
		})
	})

	r.Get("/health", handlers.Health(store))
	r.Handle("/metrics", promhttp.Handler())

	// JSON API
	r.Group(func(r chi.Router) {
		r.Use(chirender.SetContentType(chirender.ContentTypeJSON))

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", arts.List)
			r.With(middleware.RateLimit(limiter)).Post("/", arts.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", arts.Get)
				r.With(middleware.RateLimit(limiter)).Put("/", arts.Update)
				r.With(middleware.RateLimit(limiter)).Delete("/", arts.Delete)
			})
		})

		r.Get("/categories", arts.Categories)
		r.Get("/featured", arts.Featured)
	})

	// Static UI
	static := staticFS()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, static, "index.html")
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	return r
}

// staticFS returns web/static rooted at its own directory.
func staticFS() fs.FS {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("router: embedded static dir missing: " + err.Error())
	}
	return sub
}
