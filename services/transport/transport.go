// Package transport is the request/response boundary between the stores and
// the booking API, whether that API runs in-process or across the network.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"hairrap/models"
)

// Transport is everything the stores need from the booking API.
type Transport interface {
	GetServices(ctx context.Context) ([]models.Service, error)
	GetBookings(ctx context.Context) ([]models.Booking, error)
	CreateBooking(ctx context.Context, form models.BookingForm) (models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (models.Booking, error)
}

var (
	ErrBadRequest  = errors.New("bad request")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrServer      = errors.New("server error")
	ErrUnavailable = errors.New("service unavailable")
)

// Error is a failure response from the API. Message is the server's
// human-readable explanation.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Unwrap lets callers match on the status class with errors.Is.
func (e *Error) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusConflict:
		return ErrConflict
	case e.StatusCode == http.StatusServiceUnavailable, e.StatusCode == http.StatusGatewayTimeout:
		return ErrUnavailable
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return ErrBadRequest
	default:
		return ErrServer
	}
}
