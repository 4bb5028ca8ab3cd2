package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/redis/go-redis/v9"

	"github.com/lopotigo/nomadlife-app-sub000/internal/session"
)

func testSessionStore(t *testing.T) *session.Store {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewStore(client, time.Hour)
}

func authAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func TestSignupLoginMe(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	store := testSessionStore(t)
	svc := NewService(mock)

	app := fiber.New()
	RegisterRoutes(app.Group("/api/auth"), svc, store, session.Middleware(store, svc))

	expectNoUserBy(mock, "marco")
	expectNoUserBy(mock, "marco@example.com")
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "marco", "marco@example.com", pgxmock.AnyArg(), "", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	body, _ := json.Marshal(SignupRequest{Username: "marco", Email: "marco@example.com", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status: %v", err)
	}

	raw, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(raw), "password") {
		t.Fatalf("password leaked in signup response: %s", raw)
	}
	var created User
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode signup: %v", err)
	}
	if created.Username != "marco" {
		t.Fatalf("unexpected signup user: %+v", created)
	}

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("expected session cookie on signup")
	}

	mock.ExpectQuery(`SELECT id, username, email, password_hash`).
		WithArgs("marco").
		WillReturnRows(userRow(t, "password123"))

	body, _ = json.Marshal(LoginRequest{Username: "marco", Password: "password123"})
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("login status: %v", err)
	}
	raw, _ = io.ReadAll(resp.Body)
	if strings.Contains(string(raw), "password") {
		t.Fatalf("password leaked in login response: %s", raw)
	}
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}

	// /me resolves the same user through the session cookie.
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT id, username, email, password_hash`).
		WithArgs("user-1").
		WillReturnRows(userRow(t, "password123"))

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("me status: %v", err)
	}
	var me User
	raw, _ = io.ReadAll(resp.Body)
	if strings.Contains(string(raw), "password") {
		t.Fatalf("password leaked in me response: %s", raw)
	}
	if err := json.Unmarshal(raw, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.ID != "user-1" {
		t.Fatalf("me returned wrong user: %+v", me)
	}
}

func TestSignupDuplicate(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("marco").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	app := fiber.New()
	RegisterRoutes(app.Group("/api/auth"), NewService(mock), testSessionStore(t), authAs("user-1"))

	body, _ := json.Marshal(SignupRequest{Username: "marco", Email: "m@x.co", Password: "pw"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate username")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, username, email, password_hash`).
		WithArgs("marco").
		WillReturnRows(userRow(t, "correct"))

	app := fiber.New()
	RegisterRoutes(app.Group("/api/auth"), NewService(mock), testSessionStore(t), authAs("user-1"))

	body, _ := json.Marshal(LoginRequest{Username: "marco", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	store := testSessionStore(t)

	app := fiber.New()
	RegisterRoutes(app.Group("/api/auth"), NewService(nil), store, authAs("user-1"))

	id, err := store.Issue(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: id})
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status: %v", err)
	}

	if _, err := store.Resolve(req.Context(), id); err != session.ErrNoSession {
		t.Fatalf("expected session revoked, got %v", err)
	}
}

func TestUpdateProfileWrongOwner(t *testing.T) {
	app := fiber.New()
	RegisterUserRoutes(app.Group("/api/users"), NewService(nil), authAs("user-2"))

	body := []byte(`{"name":"intruder"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/users/user-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected forbidden for non-owner update")
	}
}

func TestGetUserNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, username, email, password_hash`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "username", "email", "password_hash", "name", "bio", "avatar_url", "location",
			"is_premium", "countries_visited", "cities_visited", "coworking_visited", "created_at",
		}))

	app := fiber.New()
	RegisterUserRoutes(app.Group("/api/users"), NewService(mock), authAs("user-1"))

	req := httptest.NewRequest(http.MethodGet, "/api/users/ghost", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found")
	}
}
