package transport

import (
	"context"
	"encoding/json"
	"errors"

	"hairrap/models"
	"hairrap/services/backend"
)

// InProcess talks to a backend living in the same process. Payloads still go
// through JSON so the backend sees exactly what it would over HTTP.
type InProcess struct {
	backend *backend.Backend
}

func NewInProcess(b *backend.Backend) *InProcess {
	return &InProcess{backend: b}
}

func (t *InProcess) GetServices(ctx context.Context) ([]models.Service, error) {
	services, err := t.backend.ListServices(ctx)
	return services, wrap(err)
}

func (t *InProcess) GetBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := t.backend.ListBookings(ctx)
	return bookings, wrap(err)
}

func (t *InProcess) CreateBooking(ctx context.Context, form models.BookingForm) (models.Booking, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return models.Booking{}, err
	}
	booking, err := t.backend.CreateBooking(ctx, payload)
	return booking, wrap(err)
}

func (t *InProcess) CancelBooking(ctx context.Context, bookingID string) (models.Booking, error) {
	booking, err := t.backend.CancelBooking(ctx, bookingID)
	return booking, wrap(err)
}

// wrap turns backend errors into the *Error a remote client would see.
// Context errors pass through untouched.
func wrap(err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &Error{StatusCode: backend.HTTPStatus(err), Message: err.Error()}
}
