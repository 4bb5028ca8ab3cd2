package analytics

import (
	"context"

	"github.com/lopotigo/nomadlife-app-sub000/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

// Report assembles the aggregate counts in a single round trip per
// rollup. The totals query uses scalar subselects so a fresh database
// still returns zeroes instead of no rows.
func (s *Service) Report(ctx context.Context) (Report, error) {
	var r Report

	err := s.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE is_premium),
			(SELECT COUNT(*) FROM posts),
			(SELECT COUNT(*) FROM bookings),
			(SELECT COUNT(*) FROM messages),
			(SELECT COUNT(*) FROM places)
	`).Scan(&r.Totals.Users, &r.Totals.PremiumUsers, &r.Totals.Posts,
		&r.Totals.Bookings, &r.Totals.Messages, &r.Totals.Places)
	if err != nil {
		return Report{}, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT location, COUNT(*) AS count
		FROM posts
		WHERE location <> ''
		GROUP BY location
		ORDER BY count DESC
		LIMIT 10
	`)
	if err != nil {
		return Report{}, err
	}
	for rows.Next() {
		var lc LocationCount
		if err := rows.Scan(&lc.Location, &lc.Count); err != nil {
			rows.Close()
			return Report{}, err
		}
		r.PostsByLocation = append(r.PostsByLocation, lc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Report{}, err
	}

	rows, err = s.db.Query(ctx, `
		SELECT status, COUNT(*) AS count
		FROM bookings
		GROUP BY status
		ORDER BY count DESC
	`)
	if err != nil {
		return Report{}, err
	}
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			rows.Close()
			return Report{}, err
		}
		r.BookingsByStatus = append(r.BookingsByStatus, sc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Report{}, err
	}

	rows, err = s.db.Query(ctx, `
		SELECT to_char(day, 'YYYY-MM-DD') AS day, COUNT(*) AS count
		FROM (
			SELECT date_trunc('day', created_at) AS day FROM posts
			WHERE created_at >= now() - interval '7 days'
			UNION ALL
			SELECT date_trunc('day', created_at) AS day FROM messages
			WHERE created_at >= now() - interval '7 days'
		) activity
		GROUP BY day
		ORDER BY day
	`)
	if err != nil {
		return Report{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return Report{}, err
		}
		r.DailyActivity = append(r.DailyActivity, dc)
	}
	if err := rows.Err(); err != nil {
		return Report{}, err
	}

	if r.PostsByLocation == nil {
		r.PostsByLocation = []LocationCount{}
	}
	if r.BookingsByStatus == nil {
		r.BookingsByStatus = []StatusCount{}
	}
	if r.DailyActivity == nil {
		r.DailyActivity = []DayCount{}
	}
	return r, nil
}
