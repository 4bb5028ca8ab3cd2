package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lopotigo/nomadlife-app-sub000/internal/auth"
	"github.com/lopotigo/nomadlife-app-sub000/internal/post"
)

type PostLister interface {
	ByUser(ctx context.Context, userID string) ([]post.Post, error)
}

type UserGetter interface {
	GetUser(ctx context.Context, id string) (auth.User, error)
}

type Service struct {
	github *GithubClient
	posts  PostLister
	users  UserGetter
	logger *zap.Logger
}

func NewService(github *GithubClient, posts PostLister, users UserGetter, logger *zap.Logger) *Service {
	return &Service{github: github, posts: posts, users: users, logger: logger}
}

func (s *Service) Enabled() bool {
	return s.github.Enabled()
}

type snapshot struct {
	Username   string      `json:"username"`
	ExportedAt time.Time   `json:"exportedAt"`
	Posts      []post.Post `json:"posts"`
}

// ExportPosts publishes a JSON snapshot of the user's posts as a gist
// and returns its URL.
func (s *Service) ExportPosts(ctx context.Context, userID string) (string, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	posts, err := s.posts.ByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if posts == nil {
		posts = []post.Post{}
	}

	content, err := json.MarshalIndent(snapshot{
		Username:   user.Username,
		ExportedAt: time.Now().UTC(),
		Posts:      posts,
	}, "", "  ")
	if err != nil {
		return "", err
	}

	url, err := s.github.CreateGist(ctx,
		fmt.Sprintf("NomadLife posts export for %s", user.Username),
		"posts.json", string(content))
	if err != nil {
		return "", err
	}
	s.logger.Info("exported posts to gist",
		zap.String("user_id", userID), zap.Int("posts", len(posts)))
	return url, nil
}
