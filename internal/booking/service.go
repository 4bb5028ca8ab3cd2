package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lopotigo/nomadlife-app-sub000/internal/db"
)

var ErrNotOwner = errors.New("booking belongs to another user")

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Booking, error) {
	b := Booking{
		ID:          uuid.NewString(),
		UserID:      userID,
		PlaceID:     req.PlaceID,
		GuestName:   req.GuestName,
		CheckInDate: req.CheckInDate,
		Status:      StatusConfirmed,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO bookings (id, user_id, place_id, guest_name, check_in_date, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, b.ID, b.UserID, b.PlaceID, b.GuestName, b.CheckInDate, b.Status)
	if err := row.Scan(&b.CreatedAt); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// ByUser lists the caller's bookings, newest first, with place names
// joined in for display.
func (s *Service) ByUser(ctx context.Context, userID string) ([]Booking, error) {
	rows, err := s.db.Query(ctx, `
		SELECT b.id, b.user_id, b.place_id, b.guest_name, b.check_in_date, b.status, b.created_at,
		       COALESCE(p.name,''), COALESCE(p.city,'')
		FROM bookings b
		LEFT JOIN places p ON p.id = b.place_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.PlaceID, &b.GuestName, &b.CheckInDate,
			&b.Status, &b.CreatedAt, &b.PlaceName, &b.PlaceCity); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// Cancel is a status transition, never a row delete.
func (s *Service) Cancel(ctx context.Context, id, userID string) (Booking, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, place_id, guest_name, check_in_date, status, created_at
		FROM bookings WHERE id = $1
	`, id)
	var b Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.PlaceID, &b.GuestName, &b.CheckInDate,
		&b.Status, &b.CreatedAt); err != nil {
		return Booking{}, err
	}
	if b.UserID != userID {
		return Booking{}, ErrNotOwner
	}

	b.Status = StatusCancelled
	if _, err := s.db.Exec(ctx, `
		UPDATE bookings SET status = $2 WHERE id = $1
	`, b.ID, b.Status); err != nil {
		return Booking{}, err
	}
	return b, nil
}
