package bookings

import (
	"sort"
	"strconv"

	"hairrap/models"
)

// Tab is a booking list filter as shown on the "My Bookings" page.
type Tab string

const (
	TabAll       Tab = "All"
	TabPending   Tab = "Pending" // upcoming, i.e. Confirmed
	TabCancelled Tab = "Cancelled"
	TabCompleted Tab = "Completed"
)

// Tabs in display order.
var Tabs = []Tab{TabAll, TabPending, TabCancelled, TabCompleted}

func (t Tab) matches(b models.Booking) bool {
	switch t {
	case TabAll:
		return true
	case TabPending:
		return b.Status == models.BookingConfirmed
	default:
		return string(b.Status) == string(t)
	}
}

// FilterByTab keeps the bookings shown under tab.
func FilterByTab(items []models.Booking, tab Tab) []models.Booking {
	var out []models.Booking
	for _, b := range items {
		if tab.matches(b) {
			out = append(out, b)
		}
	}
	return out
}

// CountByTab returns how many bookings each tab would show.
func CountByTab(items []models.Booking) map[Tab]int {
	counts := make(map[Tab]int, len(Tabs))
	for _, tab := range Tabs {
		counts[tab] = len(FilterByTab(items, tab))
	}
	return counts
}

// Find returns the booking with id.
func Find(items []models.Booking, id string) (models.Booking, bool) {
	if i := indexOf(items, id); i >= 0 {
		return items[i], true
	}
	return models.Booking{}, false
}

// NewestFirst orders by identifier, which grows with creation time.
// Non-numeric identifiers sort after numeric ones.
func NewestFirst(items []models.Booking) []models.Booking {
	out := append([]models.Booking(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		a, errA := strconv.ParseInt(out[i].ID, 10, 64)
		b, errB := strconv.ParseInt(out[j].ID, 10, 64)
		switch {
		case errA != nil && errB != nil:
			return out[i].ID > out[j].ID
		case errA != nil:
			return false
		case errB != nil:
			return true
		}
		return a > b
	})
	return out
}
