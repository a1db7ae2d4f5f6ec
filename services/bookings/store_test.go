package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"hairrap/models"
	"hairrap/services/backend"
	"hairrap/services/transport"
	"hairrap/services/transport/mocks"
	"hairrap/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T, seed []models.Booking) *Store {
	t.Helper()
	b := backend.New(zap.NewNop(),
		backend.WithLatency(0),
		backend.WithClock(utils.NewFixedClock(time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC))),
		backend.WithSeed(backend.SeedServices(), seed),
	)
	return NewStore(transport.NewInProcess(b), zap.NewNop())
}

var roundTripForm = models.BookingForm{
	ServiceID: "3",
	Date:      "2025-06-01",
	Time:      "10:00",
	FirstName: "A",
	LastName:  "B",
	Email:     "a@b.com",
	Phone:     "123",
}

func TestCreateThenFetch_RoundTrip(t *testing.T) {
	store := newStore(t, nil)
	ctx := context.Background()

	created, err := store.CreateBooking(ctx, roundTripForm)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSucceeded, store.Snapshot().CreateStatus)

	snap, err := store.FetchBookings(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)

	got := snap.Items[0]
	assert.Equal(t, created.ID, got.ID)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, models.BookingConfirmed, got.Status)
	assert.Equal(t, "3", got.ServiceID)
	assert.Equal(t, "2025-06-01", got.Date)
	assert.Equal(t, "10:00", got.Time)
	assert.Equal(t, "A", got.FirstName)
	assert.Equal(t, "B", got.LastName)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Equal(t, "123", got.Phone)
}

func TestCreateBooking_AppendsWithoutFetch(t *testing.T) {
	store := newStore(t, backend.SeedBookings())
	ctx := context.Background()
	_, err := store.FetchBookings(ctx)
	require.NoError(t, err)

	created, err := store.CreateBooking(ctx, roundTripForm)
	require.NoError(t, err)

	snap := store.Snapshot()
	require.Len(t, snap.Items, 4)
	assert.Equal(t, created, snap.Items[3])
}

func TestCreateBooking_IdentifiersUnique(t *testing.T) {
	store := newStore(t, nil)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		bk, err := store.CreateBooking(context.Background(), roundTripForm)
		require.NoError(t, err)
		assert.False(t, seen[bk.ID])
		seen[bk.ID] = true
	}
	assert.Len(t, store.Snapshot().Items, 20)
}

func TestCreateBooking_MissingFields(t *testing.T) {
	tr := mocks.NewTransport(t)
	store := NewStore(tr, zap.NewNop())

	_, err := store.CreateBooking(context.Background(), models.BookingForm{ServiceID: "  ", Time: "10:00"})
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "serviceId, date")

	snap := store.Snapshot()
	assert.Equal(t, models.StatusFailed, snap.CreateStatus)
	assert.NotEmpty(t, snap.CreateError)
	assert.Equal(t, models.StatusIdle, snap.Status, "list status is independent")
	tr.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBooking_ServerRejection(t *testing.T) {
	store := newStore(t, backend.SeedBookings())
	ctx := context.Background()
	_, err := store.FetchBookings(ctx)
	require.NoError(t, err)

	form := roundTripForm
	form.ServiceID = "404"
	_, err = store.CreateBooking(ctx, form)
	assert.ErrorIs(t, err, transport.ErrBadRequest)

	snap := store.Snapshot()
	assert.Equal(t, models.StatusFailed, snap.CreateStatus)
	assert.Contains(t, snap.CreateError, "unknown service")
	assert.Equal(t, models.StatusSucceeded, snap.Status)
	assert.Len(t, snap.Items, 3)

	store.ResetCreateStatus()
	snap = store.Snapshot()
	assert.Equal(t, models.StatusIdle, snap.CreateStatus)
	assert.Empty(t, snap.CreateError)
}

func TestCancelBooking_RoundTrip(t *testing.T) {
	store := newStore(t, backend.SeedBookings())
	ctx := context.Background()
	before, err := store.FetchBookings(ctx)
	require.NoError(t, err)
	original, ok := Find(before.Items, "102")
	require.True(t, ok)
	require.Equal(t, models.BookingConfirmed, original.Status)

	_, err = store.CancelBooking(ctx, "102")
	require.NoError(t, err)
	local, _ := Find(store.Snapshot().Items, "102")
	assert.Equal(t, models.BookingCancelled, local.Status)

	after, err := store.FetchBookings(ctx)
	require.NoError(t, err)
	got, ok := Find(after.Items, "102")
	require.True(t, ok)

	want := original
	want.Status = models.BookingCancelled
	assert.Equal(t, want, got, "only the status changes")
	assert.Equal(t, models.StatusSucceeded, after.CancelStatus)
}

func TestCancelBooking_UnknownID(t *testing.T) {
	store := newStore(t, backend.SeedBookings())
	ctx := context.Background()
	before, err := store.FetchBookings(ctx)
	require.NoError(t, err)

	_, err = store.CancelBooking(ctx, "nonexistent")
	assert.ErrorIs(t, err, transport.ErrNotFound)

	snap := store.Snapshot()
	assert.Equal(t, before.Items, snap.Items)
	assert.Equal(t, models.StatusFailed, snap.CancelStatus)
	assert.Contains(t, snap.CancelError, "booking not found")
}

func TestCancelledStaysCancelled(t *testing.T) {
	store := newStore(t, backend.SeedBookings())
	ctx := context.Background()
	_, err := store.FetchBookings(ctx)
	require.NoError(t, err)

	_, err = store.CancelBooking(ctx, "103")
	require.NoError(t, err, "cancelling a cancelled booking is a no-op success")
	_, err = store.CancelBooking(ctx, "101")
	assert.ErrorIs(t, err, transport.ErrConflict, "completed bookings cannot be cancelled")

	for _, id := range []string{"102", "102"} {
		_, err = store.CancelBooking(ctx, id)
		require.NoError(t, err)
	}
	snap, err := store.FetchBookings(ctx)
	require.NoError(t, err)
	for _, id := range []string{"102", "103"} {
		b, _ := Find(snap.Items, id)
		assert.Equal(t, models.BookingCancelled, b.Status)
	}
}

func TestFetchBookings_StaleResponseDoesNotUncancel(t *testing.T) {
	tr := mocks.NewTransport(t)
	store := NewStore(tr, zap.NewNop())
	ctx := context.Background()

	confirmed := models.Booking{ID: "7", Status: models.BookingConfirmed}
	cancelled := confirmed
	cancelled.Status = models.BookingCancelled

	tr.On("GetBookings", mock.Anything).Return([]models.Booking{confirmed}, nil).Once()
	_, err := store.FetchBookings(ctx)
	require.NoError(t, err)

	tr.On("CancelBooking", mock.Anything, "7").Return(cancelled, nil).Once()
	_, err = store.CancelBooking(ctx, "7")
	require.NoError(t, err)

	// a list that was read before the cancel landed
	tr.On("GetBookings", mock.Anything).Return([]models.Booking{confirmed}, nil).Once()
	snap, err := store.FetchBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, snap.Items[0].Status)
}

func TestFetchBookings_FailureKeepsList(t *testing.T) {
	tr := mocks.NewTransport(t)
	store := NewStore(tr, zap.NewNop())
	ctx := context.Background()

	tr.On("GetBookings", mock.Anything).Return([]models.Booking{{ID: "1"}}, nil).Once()
	_, err := store.FetchBookings(ctx)
	require.NoError(t, err)

	boom := errors.New("boom")
	tr.On("GetBookings", mock.Anything).Return(nil, boom).Once()
	snap, err := store.FetchBookings(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, models.StatusFailed, snap.Status)
	assert.Equal(t, "boom", snap.Error)
	assert.Len(t, snap.Items, 1)
}

func TestSubscribe_SeesEveryTransition(t *testing.T) {
	store := newStore(t, nil)
	var creates []models.RequestStatus
	unsubscribe := store.Subscribe(func(s Snapshot) { creates = append(creates, s.CreateStatus) })

	_, err := store.CreateBooking(context.Background(), roundTripForm)
	require.NoError(t, err)
	store.ResetCreateStatus()
	unsubscribe()
	store.ResetCreateStatus()

	assert.Equal(t, []models.RequestStatus{models.StatusLoading, models.StatusSucceeded, models.StatusIdle}, creates)
}
