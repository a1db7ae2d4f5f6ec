package catalog

import (
	"math"
	"sort"
	"strings"

	"hairrap/models"
)

// TopRatedThreshold is the rating the home page highlights.
const TopRatedThreshold = 4.5

// TopRated keeps services rated at least minRating, in catalog order.
func TopRated(services []models.Service, minRating float64) []models.Service {
	var out []models.Service
	for _, s := range services {
		if s.Rating >= minRating {
			out = append(out, s)
		}
	}
	return out
}

// ByCategory matches category case-insensitively. An empty category keeps everything.
func ByCategory(services []models.Service, category string) []models.Service {
	if category == "" {
		return append([]models.Service(nil), services...)
	}
	var out []models.Service
	for _, s := range services {
		if strings.EqualFold(s.Category, category) {
			out = append(out, s)
		}
	}
	return out
}

// Categories lists distinct categories in first-seen order.
func Categories(services []models.Service) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range services {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	return out
}

// Search matches query against name, category, sub-category and location.
func Search(services []models.Service, query string) []models.Service {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]models.Service(nil), services...)
	}
	var out []models.Service
	for _, s := range services {
		for _, field := range []string{s.Name, s.Category, s.SubCategory, s.Location} {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

type SortKey string

const (
	SortByPrice    SortKey = "price"
	SortByRating   SortKey = "rating"
	SortByDuration SortKey = "duration"
	SortByName     SortKey = "name"
)

// Sort returns a sorted copy; ties keep catalog order.
func Sort(services []models.Service, key SortKey, descending bool) []models.Service {
	out := append([]models.Service(nil), services...)
	less := func(a, b models.Service) bool {
		switch key {
		case SortByPrice:
			return a.Price < b.Price
		case SortByRating:
			return a.Rating < b.Rating
		case SortByDuration:
			return a.Duration < b.Duration
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Page is one slice of a paginated list.
type Page struct {
	Items      []models.Service `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
}

// Paginate returns the 1-based page. Out of range pages come back empty.
func Paginate(services []models.Service, page, size int) Page {
	if size <= 0 {
		size = 10
	}
	if page < 1 {
		page = 1
	}
	p := Page{Page: page, PageSize: size, Total: len(services)}
	p.TotalPages = len(services) / size
	if len(services)%size != 0 {
		p.TotalPages++
	}
	// page-1 < TotalPages keeps start within len(services).
	if page-1 >= p.TotalPages {
		p.Items = []models.Service{}
		return p
	}
	start := (page - 1) * size
	end := len(services)
	if size < end-start {
		end = start + size
	}
	p.Items = append([]models.Service(nil), services[start:end]...)
	return p
}

// WithFavorites returns the favorited services, marking IsFavorite on each
// copy from the favorite set rather than the catalog's own flag.
func WithFavorites(services []models.Service, favoriteIDs []string) []models.Service {
	fav := make(map[string]bool, len(favoriteIDs))
	for _, id := range favoriteIDs {
		fav[id] = true
	}
	var out []models.Service
	for _, s := range services {
		if fav[s.ID] {
			s.IsFavorite = true
			out = append(out, s)
		}
	}
	return out
}

// Discount is the whole percentage off the original price, 0 when there is none.
func Discount(s models.Service) int {
	if s.OriginalPrice == nil || *s.OriginalPrice <= 0 || *s.OriginalPrice <= s.Price {
		return 0
	}
	return int(math.Round((*s.OriginalPrice - s.Price) / *s.OriginalPrice * 100))
}
