package chat

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lopotigo/nomadlife-app-sub000/internal/db"
)

const defaultHistoryLimit = 50

// ErrBadDestination rejects messages that name both a group and a
// receiver, or neither.
var ErrBadDestination = errors.New("exactly one of groupId or receiverId required")

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

func (s *Service) CreateGroup(ctx context.Context, input Group) (Group, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO chat_groups (id, name, city, description, members)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, input.ID, input.Name, input.City, input.Description, input.Members)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Group{}, err
	}
	return input, nil
}

func (s *Service) Groups(ctx context.Context) ([]Group, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, city, description, members, created_at
		FROM chat_groups
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name, &g.City, &g.Description, &g.Members, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (s *Service) GetGroup(ctx context.Context, id string) (Group, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, city, description, members, created_at
		FROM chat_groups WHERE id = $1
	`, id)
	var g Group
	if err := row.Scan(&g.ID, &g.Name, &g.City, &g.Description, &g.Members, &g.CreatedAt); err != nil {
		return Group{}, err
	}
	return g, nil
}

func (s *Service) Send(ctx context.Context, senderID string, req SendRequest) (Message, error) {
	if (req.GroupID == nil) == (req.ReceiverID == nil) {
		return Message{}, ErrBadDestination
	}
	m := Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		GroupID:    req.GroupID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO messages (id, sender_id, group_id, receiver_id, content)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, m.ID, m.SenderID, m.GroupID, m.ReceiverID, m.Content)
	if err := row.Scan(&m.CreatedAt); err != nil {
		return Message{}, err
	}
	return m, nil
}

const messageSelect = `
		SELECT m.id, m.sender_id, m.group_id, m.receiver_id, m.content, m.created_at,
		       u.username, u.name, u.avatar_url
		FROM messages m
		JOIN users u ON u.id = m.sender_id`

// GroupHistory returns a group's messages in chronological order. The
// newest rows are fetched first, bounded by limit, then reversed.
func (s *Service) GroupHistory(ctx context.Context, groupID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := s.db.Query(ctx, messageSelect+`
		WHERE m.group_id = $1
		ORDER BY m.created_at DESC
		LIMIT $2
	`, groupID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectChronological(rows)
}

// PrivateHistory returns the thread between a and b. The filter is
// symmetric, so swapping the arguments yields the identical result.
func (s *Service) PrivateHistory(ctx context.Context, a, b string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := s.db.Query(ctx, messageSelect+`
		WHERE m.group_id IS NULL
		  AND ((m.sender_id = $1 AND m.receiver_id = $2)
		    OR (m.sender_id = $2 AND m.receiver_id = $1))
		ORDER BY m.created_at DESC
		LIMIT $3
	`, a, b, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectChronological(rows)
}

func collectChronological(rows pgx.Rows) ([]Message, error) {
	var msgs []Message
	for rows.Next() {
		var m Message
		var sender Sender
		if err := rows.Scan(&m.ID, &m.SenderID, &m.GroupID, &m.ReceiverID, &m.Content,
			&m.CreatedAt, &sender.Username, &sender.Name, &sender.AvatarURL); err != nil {
			return nil, err
		}
		sender.ID = m.SenderID
		m.Sender = &sender
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
