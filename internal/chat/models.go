package chat

import "time"

// Group is a named community scoped to a city. Members is a
// display-only denormalized count; no membership table backs it.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Description string    `json:"description"`
	Members     int       `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Message is addressed to exactly one of a group or a single receiver.
// Storage keeps two nullable columns; the exclusivity is enforced at
// the application boundary before any insert.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	GroupID    *string   `json:"groupId,omitempty"`
	ReceiverID *string   `json:"receiverId,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	Sender     *Sender   `json:"sender,omitempty"`
}

type Sender struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

type SendRequest struct {
	Content    string  `json:"content"`
	GroupID    *string `json:"groupId"`
	ReceiverID *string `json:"receiverId"`
}
