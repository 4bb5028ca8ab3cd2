package event

import "time"

const (
	RegistrationConfirmed = "confirmed"
	RegistrationCancelled = "cancelled"
	RegistrationWaitlist  = "waitlist"
)

type Event struct {
	ID          string    `json:"id"`
	HostID      string    `json:"hostId"`
	PlaceID     *string   `json:"placeId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	Type        string    `json:"type"`
	StartsAt    time.Time `json:"startsAt"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Registration struct {
	ID         string    `json:"id"`
	EventID    string    `json:"eventId"`
	UserID     string    `json:"userId"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	EventTitle string    `json:"eventTitle,omitempty"`
}

type CreateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	Type        string    `json:"type"`
	PlaceID     *string   `json:"placeId"`
	StartsAt    time.Time `json:"startsAt"`
	Capacity    int       `json:"capacity"`
}
