package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chirender "github.com/go-chi/render"

	"newsdesk/internal/render"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// Health returns a handler that answers {"status":"ok"} while the store
// responds to a ping and 503 otherwise.
func Health(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			slog.Warn("health check failed", "error", err)
			render.Send(w, r, render.ErrUnavailable("Store unavailable.", err))
			return
		}

		chirender.JSON(w, r, map[string]string{"status": "ok"})
	}
}
