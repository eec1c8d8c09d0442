package task

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/marektacina/task-manager/internal/model"
	"github.com/marektacina/task-manager/internal/query"
	"github.com/marektacina/task-manager/internal/validate"
)

// CreateRequest is the POST body. All three keys must be present; deadline is
// never client-settable and is defaulted by the store.
type CreateRequest struct {
	Text     *string   `json:"text" validate:"required,min=3"`
	FieldIDs *[]string `json:"fieldIDs" validate:"required"`
	IsDone   *bool     `json:"isDone" validate:"required"`
}

// FieldRefFinder resolves field ids to their id/text projection; satisfied by
// field.Repo.
type FieldRefFinder interface {
	FindRefs(ctx context.Context, ids []string) ([]model.FieldRef, error)
}

type Handler struct {
	repo   Repo
	fields FieldRefFinder
	log    zerolog.Logger
}

func NewHandler(repo Repo, fields FieldRefFinder, log zerolog.Logger) *Handler {
	return &Handler{repo: repo, fields: fields, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	params, err := query.Parse(r.URL.Query())
	if err != nil {
		// Compatibility: the task list has always reported bad queries as 404.
		writeErr(w, http.StatusNotFound, err.Error())
		return
	}

	filter := ListFilter{
		Text:    params.Text,
		FieldID: params.FieldID,
		IsDone:  params.IsDone,
	}
	if params.Limit != nil {
		filter.Limit = *params.Limit
	}

	ts, err := h.repo.Find(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("task list failed")
		writeErr(w, http.StatusBadRequest, "could not list tasks")
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.repo.FindByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeErr(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("task lookup failed")
		writeErr(w, http.StatusBadRequest, "could not load the task")
		return
	}

	refs, err := h.fields.FindRefs(r.Context(), t.FieldIDs)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("task field join failed")
		writeErr(w, http.StatusBadRequest, "could not load the task")
		return
	}
	writeJSON(w, http.StatusOK, model.TaskWithFields{Task: t, Fields: refs})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in CreateRequest
	if err := validate.DecodeBody(r.Body, &in); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(in); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.repo.Create(r.Context(), model.Task{
		Text:     *in.Text,
		FieldIDs: slices.Clone(*in.FieldIDs),
		IsDone:   *in.IsDone,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("task create failed")
		writeErr(w, http.StatusInternalServerError, "could not save the task")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var p Patch
	if err := validate.DecodeBody(r.Body, &p); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(p); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.repo.UpdateByID(r.Context(), id, p)
	if errors.Is(err, ErrNotFound) {
		writeErr(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("task update failed")
		writeErr(w, http.StatusInternalServerError, "could not save the task")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.repo.DeleteByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeErr(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("task delete failed")
		writeErr(w, http.StatusInternalServerError, "could not delete the task")
		return
	}
	writeJSON(w, http.StatusOK, t)
}
