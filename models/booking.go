package models

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
	// BookingCompleted only appears in seed data; no operation produces it.
	BookingCompleted BookingStatus = "Completed"
)

// CanTransitionTo reports whether a booking may move from s to next.
// Confirmed -> Cancelled is the only allowed transition.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingConfirmed && next == BookingCancelled
}

// Booking represents one appointment request.
type Booking struct {
	ID              string        `json:"id"`        // server-assigned, never reused
	BookingID       string        `json:"bookingId"` // human-facing reference code, e.g. "R124"
	ServiceID       string        `json:"serviceId"`
	ServiceName     string        `json:"serviceName"`     // captured at booking time
	ServiceCategory string        `json:"serviceCategory"` // captured at booking time
	FirstName       string        `json:"firstName,omitempty"`
	LastName        string        `json:"lastName,omitempty"`
	Email           string        `json:"email,omitempty"`
	Phone           string        `json:"phone,omitempty"`
	Date            string        `json:"date"` // YYYY-MM-DD
	Time            string        `json:"time"`
	Notes           string        `json:"notes,omitempty"`
	Stylist         string        `json:"stylist,omitempty"`
	Status          BookingStatus `json:"status"`
	Price           float64       `json:"price"` // charged price, captured at booking time
}

// BookingForm is the payload submitted to create a booking.
type BookingForm struct {
	ServiceID   string `json:"serviceId"`
	ServiceName string `json:"serviceName,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Notes       string `json:"notes,omitempty"`
}

// MissingFields lists the required form fields that are empty.
func (f BookingForm) MissingFields() []string {
	var missing []string
	if f.ServiceID == "" {
		missing = append(missing, "serviceId")
	}
	if f.Date == "" {
		missing = append(missing, "date")
	}
	if f.Time == "" {
		missing = append(missing, "time")
	}
	return missing
}

// BookingResponse is the envelope returned by booking mutations.
type BookingResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Booking *Booking `json:"booking,omitempty"`
}
