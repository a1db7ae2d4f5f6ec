package handlers

import (
	"io"
	"net/http"

	"hairrap/models"
	"hairrap/services/backend"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BackendHandler serves the mock booking API over HTTP.
type BackendHandler struct {
	Backend *backend.Backend
	Logger  *zap.Logger
}

func NewBackendHandler(b *backend.Backend, logger *zap.Logger) *BackendHandler {
	return &BackendHandler{Backend: b, Logger: logger}
}

// ListServices handles GET /api/services.
func (h *BackendHandler) ListServices(c *gin.Context) {
	services, err := h.Backend.ListServices(c.Request.Context())
	if err != nil {
		getLogger(c, h.Logger).Error("ListServices: failed", zap.Error(err))
		c.JSON(backend.HTTPStatus(err), models.BookingResponse{Success: false, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, services)
}

// ListBookings handles GET /api/bookings.
func (h *BackendHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Backend.ListBookings(c.Request.Context())
	if err != nil {
		getLogger(c, h.Logger).Error("ListBookings: failed", zap.Error(err))
		c.JSON(backend.HTTPStatus(err), models.BookingResponse{Success: false, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CreateBooking handles POST /api/bookings. The raw body goes to the backend
// untouched so parse failures are reported exactly as the backend sees them.
func (h *BackendHandler) CreateBooking(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.BookingResponse{Success: false, Message: "Invalid data"})
		return
	}

	booking, err := h.Backend.CreateBooking(c.Request.Context(), body)
	if err != nil {
		getLogger(c, h.Logger).Warn("CreateBooking: rejected", zap.Error(err))
		c.JSON(backend.HTTPStatus(err), models.BookingResponse{Success: false, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.BookingResponse{Success: true, Message: "Booking confirmed", Booking: &booking})
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (h *BackendHandler) CancelBooking(c *gin.Context) {
	id := c.Param("id")
	booking, err := h.Backend.CancelBooking(c.Request.Context(), id)
	if err != nil {
		getLogger(c, h.Logger).Warn("CancelBooking: failed", zap.String("bookingID", id), zap.Error(err))
		c.JSON(backend.HTTPStatus(err), models.BookingResponse{Success: false, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.BookingResponse{Success: true, Message: "Booking cancelled", Booking: &booking})
}
