package backend

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidPayload    = errors.New("invalid data")
	ErrMissingField      = errors.New("missing required field")
	ErrUnknownService    = errors.New("unknown service")
	ErrInvalidTransition = errors.New("booking cannot be cancelled")
)

// HTTPStatus maps a backend error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidPayload), errors.Is(err, ErrMissingField), errors.Is(err, ErrUnknownService):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
