// Package serverapp assembles the HTTP surface of the service from injected
// collaborators. Nothing in here talks to MongoDB directly; cmd/server wires
// the production repos and tests wire memory repos.
package serverapp

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/marektacina/task-manager/internal/field"
	"github.com/marektacina/task-manager/internal/httpmw"
	"github.com/marektacina/task-manager/internal/task"
)

type Options struct {
	Tasks  task.Repo
	Fields field.Repo
	Logger zerolog.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Tasks == nil {
		return nil, errors.New("task repo is required")
	}
	if opts.Fields == nil {
		return nil, errors.New("field repo is required")
	}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "task-manager",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if _, err := opts.Tasks.Find(req.Context(), task.ListFilter{Limit: 1}); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "task storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "task-manager",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	taskHandler := task.NewHandler(opts.Tasks, opts.Fields, opts.Logger)
	fieldHandler := field.NewHandler(opts.Fields, opts.Tasks, opts.Logger)
	r.Mount("/api/tasks", taskHandler.Routes())
	r.Mount("/api/fields", fieldHandler.Routes())

	return httpmw.Chain(
		r,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
