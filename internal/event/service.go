package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lopotigo/nomadlife-app-sub000/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

const eventColumns = `id, host_id, place_id, title, description, city, type, starts_at, capacity, created_at`

func (s *Service) Create(ctx context.Context, hostID string, req CreateRequest) (Event, error) {
	e := Event{
		ID:          uuid.NewString(),
		HostID:      hostID,
		PlaceID:     req.PlaceID,
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		Type:        req.Type,
		StartsAt:    req.StartsAt,
		Capacity:    req.Capacity,
	}
	if e.Type == "" {
		e.Type = "meetup"
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO events (id, host_id, place_id, title, description, city, type, starts_at, capacity)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at
	`, e.ID, e.HostID, e.PlaceID, e.Title, e.Description, e.City, e.Type, e.StartsAt, e.Capacity)
	if err := row.Scan(&e.CreatedAt); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM events WHERE id = $1
	`, id)
	return scanEvent(row)
}

func (s *Service) List(ctx context.Context, city, eventType string) ([]Event, error) {
	clauses := []string{"1=1"}
	var args []any
	if city != "" {
		args = append(args, city)
		clauses = append(clauses, fmt.Sprintf("city = $%d", len(args)))
	}
	if eventType != "" {
		args = append(args, eventType)
		clauses = append(clauses, fmt.Sprintf("type = $%d", len(args)))
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE `+strings.Join(clauses, " AND ")+`
		ORDER BY starts_at
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Register confirms the caller for an event, or waitlists them when a
// positive capacity is already filled. Repeat registration re-confirms
// through the upsert instead of erroring. The capacity count excludes
// the caller's own row so an already confirmed attendee keeps their
// seat on re-registration.
func (s *Service) Register(ctx context.Context, eventID, userID string) (Registration, error) {
	e, err := s.Get(ctx, eventID)
	if err != nil {
		return Registration{}, err
	}

	status := RegistrationConfirmed
	if e.Capacity > 0 {
		var confirmed int
		err := s.db.QueryRow(ctx, `
			SELECT COUNT(*) FROM event_registrations
			WHERE event_id = $1 AND status = $2 AND user_id <> $3
		`, eventID, RegistrationConfirmed, userID).Scan(&confirmed)
		if err != nil {
			return Registration{}, err
		}
		if confirmed >= e.Capacity {
			status = RegistrationWaitlist
		}
	}

	reg := Registration{
		ID:      uuid.NewString(),
		EventID: eventID,
		UserID:  userID,
		Status:  status,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO event_registrations (id, event_id, user_id, status)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (event_id, user_id) DO UPDATE SET status = EXCLUDED.status
		RETURNING id, created_at
	`, reg.ID, reg.EventID, reg.UserID, reg.Status)
	if err := row.Scan(&reg.ID, &reg.CreatedAt); err != nil {
		return Registration{}, err
	}
	return reg, nil
}

func (s *Service) Unregister(ctx context.Context, eventID, userID string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE event_registrations SET status = $3
		WHERE event_id = $1 AND user_id = $2
	`, eventID, userID, RegistrationCancelled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Service) ByUser(ctx context.Context, userID string) ([]Registration, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.event_id, r.user_id, r.status, r.created_at, e.title
		FROM event_registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []Registration
	for rows.Next() {
		var r Registration
		if err := rows.Scan(&r.ID, &r.EventID, &r.UserID, &r.Status, &r.CreatedAt, &r.EventTitle); err != nil {
			return nil, err
		}
		regs = append(regs, r)
	}
	return regs, rows.Err()
}

func scanEvent(row pgx.Row) (Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.HostID, &e.PlaceID, &e.Title, &e.Description,
		&e.City, &e.Type, &e.StartsAt, &e.Capacity, &e.CreatedAt)
	if err != nil {
		return Event{}, err
	}
	return e, nil
}
