package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestCreateBooking(t *testing.T) {
	mock := newMock(t)

	checkIn := time.Now().Add(48 * time.Hour)
	mock.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(pgxmock.AnyArg(), "user-1", "place-1", "Marco", checkIn, StatusConfirmed).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	svc := NewService(mock)
	b, err := svc.Create(context.Background(), "user-1", CreateRequest{
		PlaceID:     "place-1",
		GuestName:   "Marco",
		CheckInDate: checkIn,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Status != StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", b.Status)
	}
}

func TestCreateBookingMissingPlace(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(pgxmock.AnyArg(), "user-1", "ghost", "Marco", pgxmock.AnyArg(), StatusConfirmed).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	svc := NewService(mock)
	if _, err := svc.Create(context.Background(), "user-1", CreateRequest{
		PlaceID:     "ghost",
		GuestName:   "Marco",
		CheckInDate: time.Now(),
	}); err == nil {
		t.Fatalf("expected foreign key error")
	}
}

func TestByUser(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT b.id, b.user_id, b.place_id`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "place_id", "guest_name", "check_in_date", "status", "created_at",
			"place_name", "place_city",
		}).AddRow("booking-1", "user-1", "place-1", "Marco", time.Now(), StatusConfirmed, time.Now(), "Hub Lisboa", "Lisbon"))

	svc := NewService(mock)
	bookings, err := svc.ByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("by user: %v", err)
	}
	if len(bookings) != 1 || bookings[0].PlaceName != "Hub Lisboa" {
		t.Fatalf("unexpected bookings: %+v", bookings)
	}
}

func TestCancel(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id, user_id, place_id`).
		WithArgs("booking-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "place_id", "guest_name", "check_in_date", "status", "created_at",
		}).AddRow("booking-1", "user-1", "place-1", "Marco", time.Now(), StatusConfirmed, time.Now()))
	mock.ExpectExec(`UPDATE bookings SET status`).
		WithArgs("booking-1", StatusCancelled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	svc := NewService(mock)
	b, err := svc.Cancel(context.Background(), "booking-1", "user-1")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if b.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %s", b.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelWrongOwner(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id, user_id, place_id`).
		WithArgs("booking-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "place_id", "guest_name", "check_in_date", "status", "created_at",
		}).AddRow("booking-1", "user-1", "place-1", "Marco", time.Now(), StatusConfirmed, time.Now()))

	svc := NewService(mock)
	if _, err := svc.Cancel(context.Background(), "booking-1", "user-2"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}
