package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hairrap/models"
	"hairrap/services/bookings"
	"hairrap/services/catalog"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type actionResult struct {
	State StateView `json:"state"`
	Error string    `json:"error"`
}

func TestStateHandler_InitialState(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/state", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[StateView](t, w)
	assert.Equal(t, models.StatusIdle, view.Services.Status)
	assert.Equal(t, models.StatusIdle, view.Bookings.Status)
	assert.Empty(t, view.Favorites.Items)
}

func TestStateHandler_Actions(t *testing.T) {
	env := newTestEnv(t)

	res := decode[actionResult](t, env.do(t, http.MethodPost, "/state/actions", Action{Type: ActionFetchServices}))
	assert.Empty(t, res.Error)
	assert.Equal(t, models.StatusSucceeded, res.State.Services.Status)
	assert.Len(t, res.State.Services.Items, 10)

	res = decode[actionResult](t, env.do(t, http.MethodPost, "/state/actions", Action{Type: ActionFetchBookings}))
	assert.Len(t, res.State.Bookings.Items, 3)
	assert.Equal(t, 1, res.State.TabCounts[bookings.TabPending])

	res = decode[actionResult](t, env.do(t, http.MethodPost, "/state/actions",
		`{"type":"createBooking","payload":{"serviceId":"4","date":"2025-06-03","time":"09:00"}}`))
	assert.Empty(t, res.Error)
	assert.Equal(t, models.StatusSucceeded, res.State.Bookings.CreateStatus)
	require.Len(t, res.State.Bookings.Items, 4)
	created := res.State.Bookings.Items[3]
	assert.Equal(t, 2, res.State.TabCounts[bookings.TabPending])

	res = decode[actionResult](t, env.do(t, http.MethodPost, "/state/actions", Action{Type: ActionResetCreateStatus}))
	assert.Equal(t, models.StatusIdle, res.State.Bookings.CreateStatus)

	res = decode[actionResult](t, env.do(t, http.MethodPost, "/state/actions",
		`{"type":"cancelBooking","payload":{"id":"`+created.ID+`"}}`))
	assert.Empty(t, res.Error)
	assert.Equal(t, models.BookingCancelled, res.State.Bookings.Items[3].Status)

	res = decode[actionResult](t, env.do(t, http.MethodPost, "/state/actions",
		`{"type":"toggleFavorite","payload":{"id":"3"}}`))
	assert.Equal(t, []string{"3"}, res.State.Favorites.Items)
}

func TestStateHandler_ActionFailuresKeepState(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/state/actions", Action{Type: ActionFetchBookings})

	w := env.do(t, http.MethodPost, "/state/actions", `{"type":"cancelBooking","payload":{"id":"nope"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[actionResult](t, w)
	assert.NotEmpty(t, res.Error)
	assert.Equal(t, models.StatusFailed, res.State.Bookings.CancelStatus)
	assert.Len(t, res.State.Bookings.Items, 3)

	res = decode[actionResult](t, env.do(t, http.MethodPost, "/state/actions",
		`{"type":"createBooking","payload":{"serviceId":"4"}}`))
	assert.Contains(t, res.Error, "date")
	assert.Equal(t, models.StatusFailed, res.State.Bookings.CreateStatus)

	w = env.do(t, http.MethodPost, "/state/actions", `{"type":"launchRocket"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/state/actions", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStateHandler_ListServices(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/state/actions", Action{Type: ActionFetchServices})
	env.do(t, http.MethodPost, "/state/actions", `{"type":"toggleFavorite","payload":{"id":"5"}}`)

	page := decode[catalog.Page](t, env.do(t, http.MethodGet, "/state/services?size=4&page=3", nil))
	assert.Equal(t, 10, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 2)

	page = decode[catalog.Page](t, env.do(t, http.MethodGet, "/state/services?favorites=true", nil))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "5", page.Items[0].ID)
	assert.True(t, page.Items[0].IsFavorite)

	page = decode[catalog.Page](t, env.do(t, http.MethodGet, "/state/services?sort=price&order=desc&size=20", nil))
	require.Len(t, page.Items, 10)
	for i := 1; i < len(page.Items); i++ {
		assert.GreaterOrEqual(t, page.Items[i-1].Price, page.Items[i].Price)
	}

	cats := decode[[]string](t, env.do(t, http.MethodGet, "/state/categories", nil))
	assert.NotEmpty(t, cats)
}

func TestStateHandler_ListBookingsByTab(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/state/actions", Action{Type: ActionFetchBookings})

	items := decode[[]models.Booking](t, env.do(t, http.MethodGet, "/state/bookings?tab=completed", nil))
	require.Len(t, items, 1)
	assert.Equal(t, "101", items[0].ID)

	items = decode[[]models.Booking](t, env.do(t, http.MethodGet, "/state/bookings", nil))
	require.Len(t, items, 3)
	assert.Equal(t, "103", items[0].ID, "newest first")

	w := env.do(t, http.MethodGet, "/state/bookings?tab=Archived", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStateHandler_Stream(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/state/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() wsMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var m wsMessage
		require.NoError(t, conn.ReadJSON(&m))
		return m
	}

	first := read()
	assert.Equal(t, "state", first.Type)
	require.NotNil(t, first.State)
	assert.Equal(t, models.StatusIdle, first.State.Services.Status)

	require.NoError(t, conn.WriteJSON(Action{Type: ActionToggleFavorite, Payload: []byte(`{"id":"7"}`)}))
	for {
		m := read()
		if m.Type == "state" && len(m.State.Favorites.Items) == 1 {
			assert.Equal(t, "7", m.State.Favorites.Items[0])
			break
		}
	}

	require.NoError(t, conn.WriteJSON(Action{Type: ActionCancelBooking, Payload: []byte(`{"id":"missing"}`)}))
	for {
		m := read()
		if m.Type == "error" {
			assert.Equal(t, ActionCancelBooking, m.Action)
			assert.NotEmpty(t, m.Error)
			break
		}
	}
}

func TestStateHandler_ListServicesHugePage(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/state/actions", Action{Type: ActionFetchServices})

	w := env.do(t, http.MethodGet, "/state/services?page=9223372036854775807&size=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[catalog.Page](t, w)
	assert.Empty(t, page.Items)
	assert.Equal(t, 10, page.Total)

	w = env.do(t, http.MethodGet, "/state/services?page=1&size=9223372036854775807", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[catalog.Page](t, w).Items, 10)
}
