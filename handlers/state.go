package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"hairrap/models"
	"hairrap/services/bookings"
	"hairrap/services/catalog"
	"hairrap/services/favorites"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Action names accepted by the state bridge.
const (
	ActionFetchServices     = "fetchServices"
	ActionFetchBookings     = "fetchBookings"
	ActionCreateBooking     = "createBooking"
	ActionCancelBooking     = "cancelBooking"
	ActionResetCreateStatus = "resetCreateStatus"
	ActionToggleFavorite    = "toggleFavorite"
)

var errUnknownAction = errors.New("unknown action")

// Action is one view-layer request. Payload depends on Type: a BookingForm
// for createBooking, an {"id": "..."} object for cancelBooking and
// toggleFavorite, nothing otherwise.
type Action struct {
	Type    string          `json:"type" binding:"required"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type idPayload struct {
	ID string `json:"id"`
}

// StateView is everything the view layer renders from.
type StateView struct {
	Services  catalog.Snapshot     `json:"services"`
	Bookings  bookings.Snapshot    `json:"bookings"`
	Favorites favorites.Snapshot   `json:"favorites"`
	TabCounts map[bookings.Tab]int `json:"tabCounts"`
}

// StateHandler exposes the client stores to a view layer over HTTP and
// websocket.
type StateHandler struct {
	Catalog   *catalog.Store
	Bookings  *bookings.Store
	Favorites *favorites.Store
	Logger    *zap.Logger

	upgrader websocket.Upgrader
}

func NewStateHandler(c *catalog.Store, b *bookings.Store, f *favorites.Store, logger *zap.Logger) *StateHandler {
	return &StateHandler{
		Catalog:   c,
		Bookings:  b,
		Favorites: f,
		Logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *StateHandler) view() StateView {
	b := h.Bookings.Snapshot()
	return StateView{
		Services:  h.Catalog.Snapshot(),
		Bookings:  b,
		Favorites: h.Favorites.Snapshot(),
		TabCounts: bookings.CountByTab(b.Items),
	}
}

// Dispatch runs a single action to completion. Failures are also recorded
// in the stores' status fields; the returned error is for the caller's
// immediate feedback.
func (h *StateHandler) Dispatch(ctx context.Context, a Action) error {
	switch a.Type {
	case ActionFetchServices:
		_, err := h.Catalog.FetchServices(ctx)
		return err
	case ActionFetchBookings:
		_, err := h.Bookings.FetchBookings(ctx)
		return err
	case ActionCreateBooking:
		var form models.BookingForm
		if err := json.Unmarshal(a.Payload, &form); err != nil {
			return fmt.Errorf("createBooking payload: %w", err)
		}
		_, err := h.Bookings.CreateBooking(ctx, form)
		return err
	case ActionCancelBooking:
		var p idPayload
		if err := json.Unmarshal(a.Payload, &p); err != nil {
			return fmt.Errorf("cancelBooking payload: %w", err)
		}
		_, err := h.Bookings.CancelBooking(ctx, p.ID)
		return err
	case ActionResetCreateStatus:
		h.Bookings.ResetCreateStatus()
		return nil
	case ActionToggleFavorite:
		var p idPayload
		if err := json.Unmarshal(a.Payload, &p); err != nil {
			return fmt.Errorf("toggleFavorite payload: %w", err)
		}
		_, err := h.Favorites.ToggleFavorite(ctx, p.ID)
		return err
	default:
		return fmt.Errorf("%w: %q", errUnknownAction, a.Type)
	}
}

// GetState handles GET /state.
func (h *StateHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.view())
}

// PostAction handles POST /state/actions. The resulting state is returned
// even when the action fails, alongside the error.
func (h *StateHandler) PostAction(c *gin.Context) {
	var a Action
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action", "details": err.Error()})
		return
	}

	err := h.Dispatch(c.Request.Context(), a)
	switch {
	case errors.Is(err, errUnknownAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		getLogger(c, h.Logger).Warn("state: action failed", zap.String("action", a.Type), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"state": h.view(), "error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"state": h.view()})
	}
}

// ListServices handles GET /state/services: the loaded catalog filtered,
// sorted and paginated by query parameters.
func (h *StateHandler) ListServices(c *gin.Context) {
	items := h.Catalog.Snapshot().Items
	fav := h.Favorites.Snapshot().Items
	favSet := make(map[string]bool, len(fav))
	for _, id := range fav {
		favSet[id] = true
	}
	for i := range items {
		items[i].IsFavorite = favSet[items[i].ID]
	}

	if c.Query("favorites") == "true" {
		items = catalog.WithFavorites(items, fav)
	}
	if cat := c.Query("category"); cat != "" {
		items = catalog.ByCategory(items, cat)
	}
	if q := c.Query("q"); q != "" {
		items = catalog.Search(items, q)
	}
	if minRating, err := strconv.ParseFloat(c.Query("minRating"), 64); err == nil {
		items = catalog.TopRated(items, minRating)
	}
	if key := c.Query("sort"); key != "" {
		items = catalog.Sort(items, catalog.SortKey(key), c.Query("order") == "desc")
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	c.JSON(http.StatusOK, catalog.Paginate(items, page, size))
}

// ListCategories handles GET /state/categories.
func (h *StateHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Categories(h.Catalog.Snapshot().Items))
}

// ListBookings handles GET /state/bookings?tab=Pending, newest first.
func (h *StateHandler) ListBookings(c *gin.Context) {
	tab := bookings.Tab(c.DefaultQuery("tab", string(bookings.TabAll)))
	valid := false
	for _, t := range bookings.Tabs {
		if strings.EqualFold(string(t), string(tab)) {
			tab, valid = t, true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown tab", "tabs": bookings.Tabs})
		return
	}
	items := bookings.NewestFirst(bookings.FilterByTab(h.Bookings.Snapshot().Items, tab))
	c.JSON(http.StatusOK, items)
}

type wsMessage struct {
	Type   string     `json:"type"`
	State  *StateView `json:"state,omitempty"`
	Action string     `json:"action,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// Stream handles GET /state/ws. The client receives the full state on
// connect and after every store change, and may send actions at any time.
func (h *StateHandler) Stream(c *gin.Context) {
	logger := getLogger(c, h.Logger)
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("state: websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Store callbacks must not block, so changes only mark the state dirty.
	out := make(chan wsMessage, 16)
	dirty := make(chan struct{}, 1)
	notify := func() {
		select {
		case dirty <- struct{}{}:
		default:
		}
	}
	unsubs := []func(){
		h.Catalog.Subscribe(func(catalog.Snapshot) { notify() }),
		h.Bookings.Subscribe(func(bookings.Snapshot) { notify() }),
		h.Favorites.Subscribe(func(favorites.Snapshot) { notify() }),
	}
	defer func() {
		for _, u := range unsubs {
			u()
		}
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.writeLoop(ctx, conn, out, dirty, logger)
	}()
	notify()

	for {
		var a Action
		if err := conn.ReadJSON(&a); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("state: websocket read ended", zap.Error(err))
			}
			break
		}
		wg.Add(1)
		go func(a Action) {
			defer wg.Done()
			if err := h.Dispatch(ctx, a); err != nil {
				select {
				case out <- wsMessage{Type: "error", Action: a.Type, Error: err.Error()}:
				case <-ctx.Done():
				}
			}
		}(a)
	}
	cancel()
	wg.Wait()
}

func (h *StateHandler) writeLoop(ctx context.Context, conn *websocket.Conn, out <-chan wsMessage, dirty <-chan struct{}, logger *zap.Logger) {
	write := func(m wsMessage) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(m); err != nil {
			logger.Debug("state: websocket write failed", zap.Error(err))
			conn.Close() // unblocks the reader
			return false
		}
		return true
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-dirty:
			v := h.view()
			if !write(wsMessage{Type: "state", State: &v}) {
				return
			}
		case m := <-out:
			if !write(m) {
				return
			}
		}
	}
}
