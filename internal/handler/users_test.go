package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/orderdesk/internal/action"
	"github.com/sakif/orderdesk/internal/model"
	"github.com/sakif/orderdesk/internal/store"
)

// newTestRouter wires the handlers onto the API routes against a store with
// no orchestration attached. Mutating endpoints therefore only dispatch;
// tests observe the dispatched intents through an action subscription and
// seed read views by dispatching result intents directly.
func newTestRouter(t *testing.T) (*chi.Mux, *store.Store) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(logger)
	st.Start()
	t.Cleanup(st.Stop)

	users := NewUserHandler(st, logger)
	orders := NewOrderHandler(st, logger)
	selection := NewSelectionHandler(st, logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/users", users.HandleList)
		r.Post("/users/load", users.HandleLoad)
		r.Post("/users", users.HandleCreate)
		r.Put("/users/{id}", users.HandleUpdate)
		r.Delete("/users/{id}", users.HandleDelete)

		r.Get("/orders", orders.HandleList)
		r.Post("/orders/load", orders.HandleLoad)
		r.Post("/orders", orders.HandleCreate)
		r.Put("/orders/{id}", orders.HandleUpdate)
		r.Delete("/orders/{id}", orders.HandleDelete)

		r.Get("/selection", selection.HandleGet)
		r.Put("/selection", selection.HandleSet)
	})
	return r, st
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// nextIntent receives dispatched intents until one matches, skipping store
// noise, and fails the test after a timeout.
func nextIntent(t *testing.T, sub <-chan action.Action, match func(action.Action) bool) action.Action {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case a := <-sub:
			if match(a) {
				return a
			}
		case <-deadline:
			t.Fatal("expected intent was never dispatched")
		}
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestUsersListView(t *testing.T) {
	r, st := newTestRouter(t)

	st.Dispatch(action.LoadUsersSuccess{Users: []model.User{
		{ID: 0, Name: "Zoe"},
		{ID: 1, Name: "Adam"},
	}})
	require.Eventually(t, func() bool {
		return st.State().UsersTotal() == 2
	}, 2*time.Second, 5*time.Millisecond)

	rec := doRequest(t, r, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Users   []model.User `json:"users"`
		Total   int          `json:"total"`
		Loading bool         `json:"loading"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 2, view.Total)
	assert.False(t, view.Loading)
	// Name order, not id order.
	require.Len(t, view.Users, 2)
	assert.Equal(t, "Adam", view.Users[0].Name)
	assert.Equal(t, "Zoe", view.Users[1].Name)
}

func TestUsersLoadDispatchesIntent(t *testing.T) {
	r, st := newTestRouter(t)
	sub := st.SubscribeActions()

	rec := doRequest(t, r, http.MethodPost, "/api/users/load", "")
	require.Equal(t, http.StatusAccepted, rec.Code)

	nextIntent(t, sub, func(a action.Action) bool {
		_, ok := a.(action.LoadUsers)
		return ok
	})
}

func TestUsersCreateValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/api/users", `{"name": "   "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Error)

	rec = doRequest(t, r, http.MethodPost, "/api/users", `{broken`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsersCreateDispatchesTrimmedName(t *testing.T) {
	r, st := newTestRouter(t)
	sub := st.SubscribeActions()

	rec := doRequest(t, r, http.MethodPost, "/api/users", `{"name": "  User 4  "}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	a := nextIntent(t, sub, func(a action.Action) bool {
		_, ok := a.(action.AddUser)
		return ok
	})
	assert.Equal(t, "User 4", a.(action.AddUser).User.Name)
}

func TestUsersUpdateDispatchesIntent(t *testing.T) {
	r, st := newTestRouter(t)
	sub := st.SubscribeActions()

	rec := doRequest(t, r, http.MethodPut, "/api/users/2", `{"name": "Renamed"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	a := nextIntent(t, sub, func(a action.Action) bool {
		_, ok := a.(action.UpdateUser)
		return ok
	})
	assert.Equal(t, model.User{ID: 2, Name: "Renamed"}, a.(action.UpdateUser).User)
}

func TestUsersBadIDRejected(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPut, "/api/users/abc", `{"name": "x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, r, http.MethodDelete, "/api/users/-1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsersDeleteDispatchesIntent(t *testing.T) {
	r, st := newTestRouter(t)
	sub := st.SubscribeActions()

	rec := doRequest(t, r, http.MethodDelete, "/api/users/1", "")
	require.Equal(t, http.StatusAccepted, rec.Code)

	a := nextIntent(t, sub, func(a action.Action) bool {
		_, ok := a.(action.DeleteUser)
		return ok
	})
	assert.Equal(t, int64(1), a.(action.DeleteUser).ID)
}
