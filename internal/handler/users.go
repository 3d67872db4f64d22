// Package handler is the presentation glue over the core: it translates
// HTTP requests into dispatched intents and reads derived views back out.
//
// Mutating endpoints are asynchronous on purpose. They dispatch an intent
// and answer 202 Accepted immediately; the orchestration layer does the
// backend work and the outcome shows up in the GET views once the store has
// reduced it. The handler never calls a repository and never mutates state
// itself.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/orderdesk/internal/action"
	"github.com/sakif/orderdesk/internal/apperror"
	"github.com/sakif/orderdesk/internal/model"
	"github.com/sakif/orderdesk/internal/store"
)

// acceptedResponse acknowledges an intent that was dispatched but not yet
// (and possibly never) applied.
type acceptedResponse struct {
	Accepted bool `json:"accepted"`
}

// UserHandler serves the users endpoints.
type UserHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler backed by the given store.
func NewUserHandler(st *store.Store, logger *slog.Logger) *UserHandler {
	return &UserHandler{store: st, logger: logger}
}

// usersView is the read model for GET /api/users.
type usersView struct {
	Users   []model.User `json:"users"`
	Total   int          `json:"total"`
	Loading bool         `json:"loading"`
}

// HandleList returns the users collection view (name order) and its
// loading flag.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	s := h.store.State()
	writeJSON(w, http.StatusOK, usersView{
		Users:   s.AllUsers(),
		Total:   s.UsersTotal(),
		Loading: s.UsersLoading(),
	})
}

// HandleLoad dispatches a users resync.
func (h *UserHandler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	h.store.Dispatch(action.LoadUsers{})
	writeJSON(w, http.StatusAccepted, acceptedResponse{Accepted: true})
}

type createUserRequest struct {
	Name string `json:"name"`
}

// HandleCreate validates the draft and dispatches AddUser.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, apperror.ValidationFailed("name", "user name is required"))
		return
	}

	h.store.Dispatch(action.AddUser{User: model.NewUser{Name: req.Name}})
	writeJSON(w, http.StatusAccepted, acceptedResponse{Accepted: true})
}

// HandleUpdate dispatches UpdateUser for the user in the URL.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, apperror.ValidationFailed("name", "user name is required"))
		return
	}

	h.store.Dispatch(action.UpdateUser{User: model.User{ID: id, Name: req.Name}})
	writeJSON(w, http.StatusAccepted, acceptedResponse{Accepted: true})
}

// HandleDelete dispatches DeleteUser (and with it, eventually, the order
// cascade) for the user in the URL.
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	h.store.Dispatch(action.DeleteUser{ID: id})
	writeJSON(w, http.StatusAccepted, acceptedResponse{Accepted: true})
}

// parseID parses a non-negative entity id from a URL segment.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, apperror.ValidationFailed("id", "id must be a non-negative integer")
	}
	return id, nil
}
