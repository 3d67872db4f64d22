package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/orderdesk/internal/action"
	"github.com/sakif/orderdesk/internal/apperror"
	"github.com/sakif/orderdesk/internal/model"
	"github.com/sakif/orderdesk/internal/store"
)

// SelectionHandler serves the current-selection endpoints.
type SelectionHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewSelectionHandler creates a SelectionHandler backed by the given store.
func NewSelectionHandler(st *store.Store, logger *slog.Logger) *SelectionHandler {
	return &SelectionHandler{store: st, logger: logger}
}

type selectRequest struct {
	ID *int64 `json:"id"` // null clears the selection
}

// HandleSet replaces the current selection. {"id": null} clears it. No
// existence check happens here; selecting an unknown id simply yields empty
// views and whatever the detail lookup says about it.
func (h *SelectionHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if req.ID != nil && *req.ID < 0 {
		writeError(w, apperror.ValidationFailed("id", "id must be a non-negative integer"))
		return
	}

	h.store.Dispatch(action.SetSelectedUser{ID: req.ID})
	writeJSON(w, http.StatusAccepted, acceptedResponse{Accepted: true})
}

// selectionView is the read model for GET /api/selection: the selected
// user (if any), their orders, the combined summary, and the detail slice.
type selectionView struct {
	SelectedUserID *int64             `json:"selectedUserId"`
	User           *model.User        `json:"user"`
	Orders         []model.Order      `json:"orders"`
	Summary        *store.UserSummary `json:"summary"`
	Details        *string            `json:"details"`
	DetailsLoading bool               `json:"detailsLoading"`
}

// HandleGet returns every selection-derived view in one response.
func (h *SelectionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s := h.store.State()
	writeJSON(w, http.StatusOK, selectionView{
		SelectedUserID: s.SelectedUserID,
		User:           s.SelectedUser(),
		Orders:         s.OrdersForSelectedUser(),
		Summary:        s.Summary(),
		Details:        s.SelectedUserDetails,
		DetailsLoading: s.SelectedUserDetailsLoading,
	})
}
