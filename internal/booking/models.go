package booking

import "time"

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	PlaceID     string    `json:"placeId"`
	GuestName   string    `json:"guestName"`
	CheckInDate time.Time `json:"checkInDate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	PlaceName   string    `json:"placeName,omitempty"`
	PlaceCity   string    `json:"placeCity,omitempty"`
}

type CreateRequest struct {
	PlaceID     string    `json:"placeId"`
	GuestName   string    `json:"guestName"`
	CheckInDate time.Time `json:"checkInDate"`
}
