// Package bookings owns the client-side booking list and the lifecycle of
// the list, create and cancel requests.
package bookings

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"hairrap/models"
	"hairrap/services/transport"
	"hairrap/utils"

	"go.uber.org/zap"
)

// Snapshot is an immutable view of the booking store. Each operation has its
// own status so a failed create never disturbs the list view.
type Snapshot struct {
	Items        []models.Booking     `json:"items"`
	Status       models.RequestStatus `json:"status"`
	Error        string               `json:"error,omitempty"`
	CreateStatus models.RequestStatus `json:"createStatus"`
	CreateError  string               `json:"createError,omitempty"`
	CancelStatus models.RequestStatus `json:"cancelStatus"`
	CancelError  string               `json:"cancelError,omitempty"`
}

// Store holds the bookings. The list only changes after a successful
// response; nothing is applied optimistically.
type Store struct {
	mu        sync.RWMutex
	state     Snapshot
	transport transport.Transport
	logger    *zap.Logger
	changes   utils.Broadcaster[Snapshot]
}

func NewStore(t transport.Transport, logger *zap.Logger) *Store {
	return &Store{
		state: Snapshot{
			Status:       models.StatusIdle,
			CreateStatus: models.StatusIdle,
			CancelStatus: models.StatusIdle,
		},
		transport: t,
		logger:    logger,
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := s.state
	snap.Items = append([]models.Booking(nil), s.state.Items...)
	return snap
}

// Subscribe calls fn with a fresh snapshot after every state change.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

// update applies fn under the lock and publishes the result.
func (s *Store) update(fn func(st *Snapshot)) Snapshot {
	s.mu.Lock()
	fn(&s.state)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.changes.Publish(snap)
	return snap
}

// FetchBookings always asks the transport for the current list.
func (s *Store) FetchBookings(ctx context.Context) (Snapshot, error) {
	s.update(func(st *Snapshot) {
		st.Status = models.StatusLoading
		st.Error = ""
	})

	list, err := s.transport.GetBookings(ctx)
	if err != nil {
		s.logger.Warn("bookings: fetch failed", zap.Error(err))
		return s.update(func(st *Snapshot) {
			st.Status = models.StatusFailed
			st.Error = err.Error()
		}), err
	}

	snap := s.update(func(st *Snapshot) {
		st.Status = models.StatusSucceeded
		st.Items = mergeFetched(st.Items, list)
	})
	s.logger.Debug("bookings: list loaded", zap.Int("count", len(list)))
	return snap, nil
}

// mergeFetched takes the fetched list as the new truth, except that a
// booking already seen as Cancelled locally stays Cancelled even if a
// response that left the server earlier says otherwise.
func mergeFetched(local, fetched []models.Booking) []models.Booking {
	cancelled := make(map[string]bool)
	for _, b := range local {
		if b.Status == models.BookingCancelled {
			cancelled[b.ID] = true
		}
	}
	out := make([]models.Booking, 0, len(fetched))
	for _, b := range fetched {
		if cancelled[b.ID] {
			b.Status = models.BookingCancelled
		}
		out = append(out, b)
	}
	return out
}

// CreateBooking submits form. Only the presence of serviceId, date and time
// is checked here; field validation belongs to the caller. On success the
// created booking is appended to the list.
func (s *Store) CreateBooking(ctx context.Context, form models.BookingForm) (models.Booking, error) {
	form.ServiceID = strings.TrimSpace(form.ServiceID)
	if missing := form.MissingFields(); len(missing) > 0 {
		err := fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
		s.update(func(st *Snapshot) {
			st.CreateStatus = models.StatusFailed
			st.CreateError = err.Error()
		})
		return models.Booking{}, err
	}

	s.update(func(st *Snapshot) {
		st.CreateStatus = models.StatusLoading
		st.CreateError = ""
	})

	created, err := s.transport.CreateBooking(ctx, form)
	if err != nil {
		s.logger.Warn("bookings: create failed", zap.String("serviceID", form.ServiceID), zap.Error(err))
		s.update(func(st *Snapshot) {
			st.CreateStatus = models.StatusFailed
			st.CreateError = err.Error()
		})
		return models.Booking{}, err
	}

	s.update(func(st *Snapshot) {
		st.CreateStatus = models.StatusSucceeded
		if indexOf(st.Items, created.ID) < 0 {
			st.Items = append(st.Items, created)
		}
	})
	s.logger.Info("bookings: booking created", zap.String("bookingID", created.ID), zap.String("reference", created.BookingID))
	return created, nil
}

// ResetCreateStatus clears the outcome of the last create so a one-shot
// success or error banner does not outlive the form.
func (s *Store) ResetCreateStatus() {
	s.update(func(st *Snapshot) {
		st.CreateStatus = models.StatusIdle
		st.CreateError = ""
	})
}

// CancelBooking asks the transport to cancel bookingID. On success the
// matching entry is replaced in place by the server's representation. On
// failure, including an unknown id, the list is left untouched.
func (s *Store) CancelBooking(ctx context.Context, bookingID string) (models.Booking, error) {
	bookingID = strings.TrimSpace(bookingID)
	s.update(func(st *Snapshot) {
		st.CancelStatus = models.StatusLoading
		st.CancelError = ""
	})

	updated, err := s.transport.CancelBooking(ctx, bookingID)
	if err != nil {
		s.logger.Warn("bookings: cancel failed", zap.String("bookingID", bookingID), zap.Error(err))
		s.update(func(st *Snapshot) {
			st.CancelStatus = models.StatusFailed
			st.CancelError = err.Error()
		})
		return models.Booking{}, err
	}

	s.update(func(st *Snapshot) {
		st.CancelStatus = models.StatusSucceeded
		if i := indexOf(st.Items, updated.ID); i >= 0 {
			st.Items[i] = updated
		}
	})
	s.logger.Info("bookings: booking cancelled", zap.String("bookingID", updated.ID))
	return updated, nil
}

func indexOf(items []models.Booking, id string) int {
	for i, b := range items {
		if b.ID == id {
			return i
		}
	}
	return -1
}
