package backend

import "hairrap/models"

func price(v float64) *float64 { return &v }

// SeedServices is the catalog the mock transport starts with.
func SeedServices() []models.Service {
	return []models.Service{
		{ID: "1", Name: "Glow & Glam Studio", Category: "Hair", SubCategory: "Hair Color", Price: 499, OriginalPrice: price(899), Rating: 4.9, Reviews: 255, Location: "Maryland City, MD, USA", Image: "https://images.unsplash.com/photo-1560066984-138dadb4c035?auto=format&fit=crop&w=600&q=80", Duration: 120},
		{ID: "2", Name: "The Velvet Touch", Category: "Spa", SubCategory: "Hair Spa", Price: 569, OriginalPrice: price(600), Rating: 4.7, Reviews: 120, Location: "New Jersey, USA", Image: "https://images.unsplash.com/photo-1595476108010-b4d1f102b1b1?auto=format&fit=crop&w=600&q=80", Duration: 45, IsFavorite: true},
		{ID: "3", Name: "Aura Luxe Salon", Category: "Hair", SubCategory: "Hair Cut", Price: 399, OriginalPrice: price(699), Rating: 4.5, Reviews: 90, Location: "California, USA", Image: "https://images.unsplash.com/photo-1522337360788-8b13dee7a37e?auto=format&fit=crop&w=600&q=80", Duration: 30},
		{ID: "4", Name: "Opal Beauty Lounge", Category: "Makeup", SubCategory: "Bridal Makeup", Price: 749, OriginalPrice: price(999), Rating: 4.8, Reviews: 310, Location: "Maryland, USA", Image: "https://images.unsplash.com/photo-1487412947132-26c5c1b15116?auto=format&fit=crop&w=600&q=80", Duration: 90},
		{ID: "5", Name: "The Glam Society", Category: "Nails", SubCategory: "Gel Nails", Price: 459, OriginalPrice: price(600), Rating: 4.2, Reviews: 50, Location: "Texas, USA", Image: "https://images.unsplash.com/photo-1604654894610-df63bc536371?auto=format&fit=crop&w=600&q=80", Duration: 60},
		{ID: "6", Name: "Crown & Curl", Category: "Hair", SubCategory: "Hair Cut", Price: 699, OriginalPrice: price(1099), Rating: 4.9, Reviews: 420, Location: "Texas, USA", Image: "https://images.unsplash.com/photo-1562322140-8baeececf3df?auto=format&fit=crop&w=600&q=80", Duration: 45, IsFavorite: true},
		{ID: "7", Name: "Urban Blend", Category: "Hair", SubCategory: "Beard Trim", Price: 299, OriginalPrice: price(400), Rating: 4.1, Reviews: 85, Location: "Alabama, USA", Image: "https://images.unsplash.com/photo-1503951914296-3a57f4750f0e?auto=format&fit=crop&w=600&q=80", Duration: 20},
		{ID: "8", Name: "Noir Luxury Salon", Category: "Hair", SubCategory: "Keratin Treatment", Price: 1299, OriginalPrice: price(1800), Rating: 4.6, Reviews: 150, Location: "Washington, DC, USA", Image: "https://images.unsplash.com/photo-1521590832167-7bcbfaa6381f?auto=format&fit=crop&w=600&q=80", Duration: 150, IsFavorite: true},
		{ID: "9", Name: "Blush & Gold Studio", Category: "Makeup", SubCategory: "Party Makeup", Price: 399, OriginalPrice: price(600), Rating: 4.0, Reviews: 30, Location: "Montana, USA", Image: "https://images.unsplash.com/photo-1516975080664-ed2fc6a32937?auto=format&fit=crop&w=600&q=80", Duration: 60},
		{ID: "10", Name: "Élan Beauty Bar", Category: "Nails", SubCategory: "Manicure", Price: 199, OriginalPrice: price(350), Rating: 4.4, Reviews: 65, Location: "New Jersey, USA", Image: "https://images.unsplash.com/photo-1632345031635-fe515327e869?auto=format&fit=crop&w=600&q=80", Duration: 40},
	}
}

// SeedBookings is the booking history the mock transport starts with.
func SeedBookings() []models.Booking {
	return []models.Booking{
		{ID: "101", BookingID: "R123", ServiceID: "1", ServiceName: "Glow & Glam Studio", ServiceCategory: "Hair", Date: "2024-09-30", Time: "07:30 PM", Price: 499, Status: models.BookingCompleted, FirstName: "Jane", LastName: "Doe", Email: "jane.doe@example.com", Phone: "+1 234 567 8900", Stylist: "John Doe"},
		{ID: "102", BookingID: "R124", ServiceID: "3", ServiceName: "Aura Luxe Salon", ServiceCategory: "Hair", Date: "2024-10-02", Time: "10:00 AM", Price: 399, Status: models.BookingConfirmed, FirstName: "Alice", LastName: "Smith", Email: "alice.smith@example.com", Phone: "+1 987 654 3210", Stylist: "Jane Smith"},
		{ID: "103", BookingID: "R105", ServiceID: "2", ServiceName: "The Velvet Touch", ServiceCategory: "Spa", Date: "2024-08-15", Time: "04:00 PM", Price: 569, Status: models.BookingCancelled, FirstName: "Bob", LastName: "Wilson", Email: "bob.wilson@example.com", Phone: "+1 555 666 7777", Stylist: "Not Assigned"},
	}
}
