package subscription

import "time"

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

type Subscription struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type CreateRequest struct {
	Plan string `json:"plan"`
}

type UpdateRequest struct {
	Status string `json:"status"`
}
