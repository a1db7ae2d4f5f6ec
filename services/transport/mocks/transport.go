// Package mocks holds testify mocks for the transport boundary.
package mocks

import (
	"context"

	"hairrap/models"

	"github.com/stretchr/testify/mock"
)

// Transport is a testify mock of transport.Transport.
type Transport struct {
	mock.Mock
}

// NewTransport returns a mock whose expectations are asserted at test cleanup.
func NewTransport(t interface {
	mock.TestingT
	Cleanup(func())
}) *Transport {
	m := &Transport{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Transport) GetServices(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	services, _ := args.Get(0).([]models.Service)
	return services, args.Error(1)
}

func (m *Transport) GetBookings(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	bookings, _ := args.Get(0).([]models.Booking)
	return bookings, args.Error(1)
}

func (m *Transport) CreateBooking(ctx context.Context, form models.BookingForm) (models.Booking, error) {
	args := m.Called(ctx, form)
	booking, _ := args.Get(0).(models.Booking)
	return booking, args.Error(1)
}

func (m *Transport) CancelBooking(ctx context.Context, bookingID string) (models.Booking, error) {
	args := m.Called(ctx, bookingID)
	booking, _ := args.Get(0).(models.Booking)
	return booking, args.Error(1)
}
