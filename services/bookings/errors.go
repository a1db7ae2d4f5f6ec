package bookings

import "errors"

// ErrMissingField is returned by CreateBooking when a required form field is empty.
var ErrMissingField = errors.New("missing required field")
