package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func authAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func TestBookingHandlers(t *testing.T) {
	mock := newMock(t)

	app := fiber.New()
	RegisterRoutes(app.Group("/api/bookings"), NewService(mock), authAs("user-1"))

	mock.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(pgxmock.AnyArg(), "user-1", "place-1", "Marco", pgxmock.AnyArg(), StatusConfirmed).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	body, _ := json.Marshal(CreateRequest{
		PlaceID:     "place-1",
		GuestName:   "Marco",
		CheckInDate: time.Now().Add(24 * time.Hour),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v", err)
	}

	mock.ExpectQuery(`SELECT b.id, b.user_id, b.place_id`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "place_id", "guest_name", "check_in_date", "status", "created_at",
			"place_name", "place_city",
		}).AddRow("booking-1", "user-1", "place-1", "Marco", time.Now(), StatusConfirmed, time.Now(), "Hub", "Lisbon"))

	req = httptest.NewRequest(http.MethodGet, "/api/bookings/", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}

	mock.ExpectQuery(`SELECT id, user_id, place_id`).
		WithArgs("booking-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "place_id", "guest_name", "check_in_date", "status", "created_at",
		}).AddRow("booking-1", "user-1", "place-1", "Marco", time.Now(), StatusConfirmed, time.Now()))
	mock.ExpectExec(`UPDATE bookings SET status`).
		WithArgs("booking-1", StatusCancelled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	req = httptest.NewRequest(http.MethodDelete, "/api/bookings/booking-1", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("cancel status: %v", err)
	}
	var cancelled Booking
	if err := json.NewDecoder(resp.Body).Decode(&cancelled); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("expected cancelled booking")
	}
}

func TestCreateBookingMissingFields(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/api/bookings"), NewService(nil), authAs("user-1"))

	req := httptest.NewRequest(http.MethodPost, "/api/bookings/", bytes.NewReader([]byte(`{"placeId":"p"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestCancelForbidden(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id, user_id, place_id`).
		WithArgs("booking-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "place_id", "guest_name", "check_in_date", "status", "created_at",
		}).AddRow("booking-1", "someone-else", "place-1", "Marco", time.Now(), StatusConfirmed, time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/api/bookings"), NewService(mock), authAs("user-1"))

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/booking-1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected forbidden")
	}
}
