package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hairrap/models"
)

// HTTPClient talks to the booking API over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient targets baseURL, e.g. "http://localhost:8080/api". A nil
// client gets a default with no timeout, so a hung request stays in flight
// until its context ends.
func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{Transport: &http.Transport{IdleConnTimeout: 90 * time.Second}}
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *HTTPClient) GetServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := c.do(ctx, http.MethodGet, "/services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *HTTPClient) GetBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *HTTPClient) CreateBooking(ctx context.Context, form models.BookingForm) (models.Booking, error) {
	body, err := json.Marshal(form)
	if err != nil {
		return models.Booking{}, err
	}
	return c.mutate(ctx, "/bookings", body)
}

func (c *HTTPClient) CancelBooking(ctx context.Context, bookingID string) (models.Booking, error) {
	return c.mutate(ctx, "/bookings/"+url.PathEscape(bookingID)+"/cancel", nil)
}

func (c *HTTPClient) mutate(ctx context.Context, path string, body []byte) (models.Booking, error) {
	var resp models.BookingResponse
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return models.Booking{}, err
	}
	if !resp.Success || resp.Booking == nil {
		return models.Booking{}, &Error{StatusCode: http.StatusBadGateway, Message: "malformed response from booking API"}
	}
	return *resp.Booking, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &Error{StatusCode: http.StatusServiceUnavailable, Message: "network error: " + err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{StatusCode: http.StatusBadGateway, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope models.BookingResponse
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(data, &envelope) == nil && envelope.Message != "" {
			msg = envelope.Message
		}
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &Error{StatusCode: http.StatusBadGateway, Message: "decode response: " + err.Error()}
	}
	return nil
}
