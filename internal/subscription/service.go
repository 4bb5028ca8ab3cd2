package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lopotigo/nomadlife-app-sub000/internal/db"
)

var (
	ErrNotOwner      = errors.New("subscription belongs to another user")
	ErrInvalidStatus = errors.New("status must be active or cancelled")
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

// Active returns the caller's active subscription, or nil when there
// is none.
func (s *Service) Active(ctx context.Context, userID string) (*Subscription, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, plan, status, start_date, end_date, created_at
		FROM subscriptions
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, StatusActive)
	var sub Subscription
	err := row.Scan(&sub.ID, &sub.UserID, &sub.Plan, &sub.Status,
		&sub.StartDate, &sub.EndDate, &sub.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Subscribe creates an active subscription and flips the premium flag
// in one transaction. Any previously active subscription is cancelled
// in the same transaction, keeping at most one active per user.
func (s *Service) Subscribe(ctx context.Context, userID, plan string) (Subscription, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Subscription{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		UPDATE subscriptions SET status = $2, end_date = now()
		WHERE user_id = $1 AND status = $3
	`, userID, StatusCancelled, StatusActive); err != nil {
		return Subscription{}, err
	}

	sub := Subscription{
		ID:     uuid.NewString(),
		UserID: userID,
		Plan:   plan,
		Status: StatusActive,
	}
	row := tx.QueryRow(ctx, `
		INSERT INTO subscriptions (id, user_id, plan, status)
		VALUES ($1,$2,$3,$4)
		RETURNING start_date, created_at
	`, sub.ID, sub.UserID, sub.Plan, sub.Status)
	if err := row.Scan(&sub.StartDate, &sub.CreatedAt); err != nil {
		return Subscription{}, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE users SET is_premium = TRUE WHERE id = $1
	`, userID); err != nil {
		return Subscription{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Subscription{}, err
	}
	return sub, nil
}

// UpdateStatus transitions a subscription and keeps the premium flag
// in step, atomically.
func (s *Service) UpdateStatus(ctx context.Context, id, userID, status string) (Subscription, error) {
	if status != StatusActive && status != StatusCancelled {
		return Subscription{}, ErrInvalidStatus
	}

	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, plan, status, start_date, end_date, created_at
		FROM subscriptions WHERE id = $1
	`, id)
	var sub Subscription
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.Plan, &sub.Status,
		&sub.StartDate, &sub.EndDate, &sub.CreatedAt); err != nil {
		return Subscription{}, err
	}
	if sub.UserID != userID {
		return Subscription{}, ErrNotOwner
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Subscription{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		UPDATE subscriptions SET status = $2, end_date = CASE WHEN $2 = 'cancelled' THEN now() ELSE end_date END
		WHERE id = $1
	`, sub.ID, status); err != nil {
		return Subscription{}, err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE users SET is_premium = $2 WHERE id = $1
	`, sub.UserID, status == StatusActive); err != nil {
		return Subscription{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Subscription{}, err
	}
	sub.Status = status
	return sub, nil
}
