package models

// Service is a bookable salon offering. Services are only created by the
// mock transport seed and never mutated by the client.
type Service struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	SubCategory   string   `json:"subCategory,omitempty"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"` // pre-discount price, if any
	Duration      int      `json:"duration"`                // minutes
	Rating        float64  `json:"rating"`                  // 0..5
	Reviews       int      `json:"reviews"`
	Location      string   `json:"location"`
	Image         string   `json:"image"`
	IsFavorite    bool     `json:"isFavorite"`
}
