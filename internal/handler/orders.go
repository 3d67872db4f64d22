package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/orderdesk/internal/action"
	"github.com/sakif/orderdesk/internal/apperror"
	"github.com/sakif/orderdesk/internal/model"
	"github.com/sakif/orderdesk/internal/store"
)

// OrderHandler serves the orders endpoints.
type OrderHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewOrderHandler creates an OrderHandler backed by the given store.
func NewOrderHandler(st *store.Store, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{store: st, logger: logger}
}

// ordersView is the read model for GET /api/orders.
type ordersView struct {
	Orders  []model.Order `json:"orders"`
	Total   int           `json:"total"`
	Loading bool          `json:"loading"`
}

// HandleList returns the orders collection view (id order) and its loading
// flag.
func (h *OrderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	s := h.store.State()
	writeJSON(w, http.StatusOK, ordersView{
		Orders:  s.AllOrders(),
		Total:   s.OrdersTotal(),
		Loading: s.OrdersLoading(),
	})
}

// HandleLoad dispatches an orders resync.
func (h *OrderHandler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	h.store.Dispatch(action.LoadOrders{})
	writeJSON(w, http.StatusAccepted, acceptedResponse{Accepted: true})
}

type orderRequest struct {
	UserID int64   `json:"userId"`
	Total  float64 `json:"total"`
}

func (req orderRequest) validate() error {
	if req.UserID < 0 {
		return apperror.ValidationFailed("userId", "userId must be a non-negative integer")
	}
	if req.Total < 0 {
		return apperror.ValidationFailed("total", "total must not be negative")
	}
	return nil
}

// HandleCreate validates the order and dispatches AddOrder.
func (h *OrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	h.store.Dispatch(action.AddOrder{Order: model.Order{UserID: req.UserID, Total: req.Total}})
	writeJSON(w, http.StatusAccepted, acceptedResponse{Accepted: true})
}

// HandleUpdate dispatches UpdateOrder for the order in the URL.
func (h *OrderHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	h.store.Dispatch(action.UpdateOrder{Order: model.Order{ID: id, UserID: req.UserID, Total: req.Total}})
	writeJSON(w, http.StatusAccepted, acceptedResponse{Accepted: true})
}

// HandleDelete dispatches DeleteOrder for the order in the URL.
func (h *OrderHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	h.store.Dispatch(action.DeleteOrder{ID: id})
	writeJSON(w, http.StatusAccepted, acceptedResponse{Accepted: true})
}
