package place

import "time"

// Place is a bookable or visitable location: coworking space, hotel,
// hostel. Shared resource, writable by any authenticated user.
type Place struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	City          string    `json:"city"`
	Country       string    `json:"country"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	ImageURL      string    `json:"imageUrl"`
	Price         string    `json:"price"`
	PricePerNight *int      `json:"pricePerNight,omitempty"`
	PricePerHour  *int      `json:"pricePerHour,omitempty"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	Amenities     []string  `json:"amenities"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type SearchFilter struct {
	Query     string
	City      string
	Type      string
	PriceMin  *int
	PriceMax  *int
	Amenities []string
}
