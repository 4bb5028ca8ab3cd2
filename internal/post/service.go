package post

import (
	"context"

	"github.com/google/uuid"
	"github.com/lopotigo/nomadlife-app-sub000/internal/db"
)

const defaultFeedLimit = 20

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Post, error) {
	p := Post{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO posts (id, user_id, content, image_url, location, latitude, longitude)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, p.ID, p.UserID, p.Content, p.ImageURL, p.Location, p.Latitude, p.Longitude)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return Post{}, err
	}
	return p, nil
}

// Feed returns posts joined with their owners, newest first.
func (s *Service) Feed(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.user_id, p.content, COALESCE(p.image_url,''), COALESCE(p.location,''),
		       p.latitude, p.longitude, p.likes, p.comments, p.created_at,
		       u.username, u.name, u.avatar_url, u.location, u.is_premium
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		var a Author
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.ImageURL, &p.Location,
			&p.Latitude, &p.Longitude, &p.Likes, &p.Comments, &p.CreatedAt,
			&a.Username, &a.Name, &a.AvatarURL, &a.Location, &a.IsPremium); err != nil {
			return nil, err
		}
		a.ID = p.UserID
		p.User = &a
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Service) ByUser(ctx context.Context, userID string) ([]Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, content, COALESCE(image_url,''), COALESCE(location,''),
		       latitude, longitude, likes, comments, created_at
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.ImageURL, &p.Location,
			&p.Latitude, &p.Longitude, &p.Likes, &p.Comments, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Like increments the counter in a single atomic statement. Repeat
// calls from the same caller keep counting; there is no per-user
// like fact to dedup against.
func (s *Service) Like(ctx context.Context, id string) (Post, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE posts SET likes = likes + 1
		WHERE id = $1
		RETURNING id, user_id, content, COALESCE(image_url,''), COALESCE(location,''),
		          latitude, longitude, likes, comments, created_at
	`, id)
	var p Post
	if err := row.Scan(&p.ID, &p.UserID, &p.Content, &p.ImageURL, &p.Location,
		&p.Latitude, &p.Longitude, &p.Likes, &p.Comments, &p.CreatedAt); err != nil {
		return Post{}, err
	}
	return p, nil
}
