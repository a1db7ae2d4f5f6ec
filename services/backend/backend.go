// Package backend simulates the remote booking API. It owns its own copies
// of the catalog and bookings; nothing outside this package mutates them.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"hairrap/models"
	"hairrap/utils"

	"go.uber.org/zap"
)

// DefaultLatency matches the delay the SPA's mock adapter used.
const DefaultLatency = 800 * time.Millisecond

// Backend is the in-memory mock of the salon booking API.
type Backend struct {
	mu       sync.Mutex
	services []models.Service
	bookings []models.Booking
	lastID   int64
	nextRef  int

	latency time.Duration
	clock   utils.Clock
	logger  *zap.Logger
}

type Option func(*Backend)

// WithLatency sets the artificial delay applied to every request.
func WithLatency(d time.Duration) Option {
	return func(b *Backend) { b.latency = d }
}

func WithClock(c utils.Clock) Option {
	return func(b *Backend) { b.clock = c }
}

// WithSeed replaces the default seed data.
func WithSeed(services []models.Service, bookings []models.Booking) Option {
	return func(b *Backend) {
		b.services = append([]models.Service(nil), services...)
		b.bookings = append([]models.Booking(nil), bookings...)
	}
}

// New builds a backend populated with the default seed.
func New(logger *zap.Logger, opts ...Option) *Backend {
	b := &Backend{
		services: SeedServices(),
		bookings: SeedBookings(),
		latency:  DefaultLatency,
		clock:    utils.NewSystemClock(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.nextRef = 1
	for _, bk := range b.bookings {
		if id, err := strconv.ParseInt(bk.ID, 10, 64); err == nil && id > b.lastID {
			b.lastID = id
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(bk.BookingID, "R")); err == nil && n >= b.nextRef {
			b.nextRef = n + 1
		}
	}
	return b
}

// wait simulates network latency. A cancelled context ends the wait early.
func (b *Backend) wait(ctx context.Context) error {
	if b.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(b.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ListServices returns the full catalog.
func (b *Backend) ListServices(ctx context.Context) ([]models.Service, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Service(nil), b.services...), nil
}

// ListBookings returns every booking, including ones created this session.
func (b *Backend) ListBookings(ctx context.Context) ([]models.Booking, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Booking(nil), b.bookings...), nil
}

// flexID accepts both JSON strings and numbers, since browser clients send
// numeric service ids.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type createPayload struct {
	ServiceID flexID `json:"serviceId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Notes     string `json:"notes"`
}

// CreateBooking parses a booking form payload, assigns a new identifier and
// stores the booking as Confirmed. Besides malformed JSON it rejects payloads
// missing serviceId, date or time (ErrMissingField) and serviceIds not in the
// catalog (ErrUnknownService); all three map to status 400. Service name,
// category and price are always taken from the catalog, not the payload.
func (b *Backend) CreateBooking(ctx context.Context, payload []byte) (models.Booking, error) {
	if err := b.wait(ctx); err != nil {
		return models.Booking{}, err
	}

	var p createPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		b.logger.Debug("backend: rejecting malformed booking payload", zap.Error(err))
		return models.Booking{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	form := models.BookingForm{ServiceID: string(p.ServiceID), Date: p.Date, Time: p.Time}
	if missing := form.MissingFields(); len(missing) > 0 {
		return models.Booking{}, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	svc, ok := b.findService(string(p.ServiceID))
	if !ok {
		return models.Booking{}, fmt.Errorf("%w: %s", ErrUnknownService, p.ServiceID)
	}

	id := b.clock.Now().UnixMilli()
	if id <= b.lastID {
		id = b.lastID + 1
	}
	b.lastID = id

	booking := models.Booking{
		ID:              strconv.FormatInt(id, 10),
		BookingID:       fmt.Sprintf("R%d", b.nextRef),
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		ServiceCategory: svc.Category,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Email:           p.Email,
		Phone:           p.Phone,
		Date:            p.Date,
		Time:            p.Time,
		Notes:           p.Notes,
		Stylist:         "Not Assigned",
		Status:          models.BookingConfirmed,
		Price:           svc.Price,
	}
	b.nextRef++
	b.bookings = append(b.bookings, booking)

	b.logger.Info("backend: booking created",
		zap.String("bookingID", booking.ID),
		zap.String("reference", booking.BookingID),
		zap.String("serviceID", booking.ServiceID),
	)
	return booking, nil
}

// CancelBooking moves a Confirmed booking to Cancelled. Cancelling an
// already cancelled booking succeeds without changing it.
func (b *Backend) CancelBooking(ctx context.Context, id string) (models.Booking, error) {
	if err := b.wait(ctx); err != nil {
		return models.Booking{}, err
	}

	id = strings.TrimSpace(id)
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.bookings {
		bk := &b.bookings[i]
		if bk.ID != id {
			continue
		}
		switch {
		case bk.Status == models.BookingCancelled:
			return *bk, nil
		case !bk.Status.CanTransitionTo(models.BookingCancelled):
			return models.Booking{}, fmt.Errorf("%w: status is %s", ErrInvalidTransition, bk.Status)
		}
		bk.Status = models.BookingCancelled
		b.logger.Info("backend: booking cancelled", zap.String("bookingID", id))
		return *bk, nil
	}
	return models.Booking{}, fmt.Errorf("%w: %s", ErrBookingNotFound, id)
}

func (b *Backend) findService(id string) (models.Service, bool) {
	for _, s := range b.services {
		if s.ID == id {
			return s, true
		}
	}
	return models.Service{}, false
}
