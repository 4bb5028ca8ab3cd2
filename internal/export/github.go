package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lopotigo/nomadlife-app-sub000/internal/config"
)

var ErrNotConfigured = errors.New("github export is not configured")

const tokenLifetime = 50 * time.Minute

// GithubClient posts gists on behalf of the service account. The
// access token is cached process-wide with a hard expiry and refreshed
// lazily under the mutex so concurrent exports share one refresh.
type GithubClient struct {
	cfg    config.Config
	http   *http.Client
	logger *zap.Logger

	mu         sync.Mutex
	token      string
	tokenUntil time.Time
}

func NewGithubClient(cfg config.Config, logger *zap.Logger) *GithubClient {
	return &GithubClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (g *GithubClient) Enabled() bool {
	return g.cfg.GithubToken != ""
}

func (g *GithubClient) accessToken() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.token != "" && time.Now().Before(g.tokenUntil) {
		return g.token, nil
	}
	if g.cfg.GithubToken == "" {
		return "", ErrNotConfigured
	}
	g.token = g.cfg.GithubToken
	g.tokenUntil = time.Now().Add(tokenLifetime)
	return g.token, nil
}

type gistRequest struct {
	Description string              `json:"description"`
	Public      bool                `json:"public"`
	Files       map[string]gistFile `json:"files"`
}

type gistFile struct {
	Content string `json:"content"`
}

type gistResponse struct {
	ID      string `json:"id"`
	HTMLURL string `json:"html_url"`
}

// CreateGist uploads a single-file gist and returns its public URL.
func (g *GithubClient) CreateGist(ctx context.Context, description, filename, content string) (string, error) {
	token, err := g.accessToken()
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(gistRequest{
		Description: description,
		Files:       map[string]gistFile{filename: {Content: content}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.GithubAPIURL+"/gists", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		g.logger.Warn("github gist request failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		g.logger.Warn("github gist rejected", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("github responded with status %d", resp.StatusCode)
	}

	var gist gistResponse
	if err := json.NewDecoder(resp.Body).Decode(&gist); err != nil {
		return "", err
	}
	return gist.HTMLURL, nil
}
