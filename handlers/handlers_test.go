package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"hairrap/database/storage"
	"hairrap/services/backend"
	"hairrap/services/bookings"
	"hairrap/services/catalog"
	"hairrap/services/favorites"
	"hairrap/services/transport"
	"hairrap/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	backend *backend.Backend
	state   *StateHandler
	router  *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	b := backend.New(logger, backend.WithLatency(0), backend.WithClock(utils.NewFixedClock(fixedNow)))
	tr := transport.NewInProcess(b)
	fav, err := favorites.NewStore(context.Background(), storage.NewMemoryStorage(), logger)
	require.NoError(t, err)

	env := &testEnv{
		backend: b,
		state:   NewStateHandler(catalog.NewStore(tr, logger), bookings.NewStore(tr, logger), fav, logger),
		router:  gin.New(),
	}
	bh := NewBackendHandler(b, logger)
	env.router.GET("/api/services", bh.ListServices)
	env.router.GET("/api/bookings", bh.ListBookings)
	env.router.POST("/api/bookings", bh.CreateBooking)
	env.router.POST("/api/bookings/:id/cancel", bh.CancelBooking)
	env.router.GET("/state", env.state.GetState)
	env.router.POST("/state/actions", env.state.PostAction)
	env.router.GET("/state/ws", env.state.Stream)
	env.router.GET("/state/services", env.state.ListServices)
	env.router.GET("/state/categories", env.state.ListCategories)
	env.router.GET("/state/bookings", env.state.ListBookings)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
