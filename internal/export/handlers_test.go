package export

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lopotigo/nomadlife-app-sub000/internal/auth"
	"github.com/lopotigo/nomadlife-app-sub000/internal/config"
	"github.com/lopotigo/nomadlife-app-sub000/internal/post"
)

func authAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func TestExportHandler(t *testing.T) {
	srv, _ := fakeGithub(t, http.StatusCreated)

	cfg := config.Config{GithubToken: "token", GithubAPIURL: srv.URL}
	svc := NewService(NewGithubClient(cfg, zap.NewNop()),
		stubPosts{posts: []post.Post{{ID: "p1", Content: "hi"}}},
		stubUsers{user: auth.User{Username: "ana"}},
		zap.NewNop())

	app := fiber.New()
	RegisterRoutes(app.Group("/api/export"), svc, authAs("user-1"))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/export/github", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %v", err)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["url"] == "" {
		t.Fatal("expected gist url in response")
	}
}

func TestExportDisabled(t *testing.T) {
	svc := NewService(NewGithubClient(config.Config{}, zap.NewNop()),
		stubPosts{}, stubUsers{}, zap.NewNop())

	app := fiber.New()
	RegisterRoutes(app.Group("/api/export"), svc, authAs("user-1"))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/export/github", nil))
	if err != nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatal("expected service unavailable")
	}
}
