package place

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

const placeColumns = `id, name, type, city, country, description, address, image_url, price,
	       price_per_night, price_per_hour, rating, review_count, amenities,
	       latitude, longitude, created_at`

func (s *Service) Create(ctx context.Context, input Place) (Place, error) {
	input.ID = uuid.NewString()
	if input.Amenities == nil {
		input.Amenities = []string{}
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO places (id, name, type, city, country, description, address, image_url,
		                    price, price_per_night, price_per_hour, amenities, latitude, longitude)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING created_at
	`, input.ID, input.Name, input.Type, input.City, input.Country, input.Description,
		input.Address, input.ImageURL, input.Price, input.PricePerNight, input.PricePerHour,
		input.Amenities, input.Latitude, input.Longitude)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Place{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Place, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+placeColumns+`
		FROM places WHERE id = $1
	`, id)
	return scanPlace(row)
}

func (s *Service) List(ctx context.Context, city, placeType string) ([]Place, error) {
	return s.Search(ctx, SearchFilter{City: city, Type: placeType})
}

// Search builds the WHERE clause from whichever filters are set.
func (s *Service) Search(ctx context.Context, f SearchFilter) ([]Place, error) {
	clauses := []string{"1=1"}
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.Query != "" {
		add(`(name ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%[1]d || '%%')`, f.Query)
	}
	if f.City != "" {
		add(`city = $%d`, f.City)
	}
	if f.Type != "" {
		add(`type = $%d`, f.Type)
	}
	if f.PriceMin != nil {
		add(`price_per_night >= $%d`, *f.PriceMin)
	}
	if f.PriceMax != nil {
		add(`price_per_night <= $%d`, *f.PriceMax)
	}
	if len(f.Amenities) > 0 {
		add(`amenities @> $%d`, f.Amenities)
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+placeColumns+`
		FROM places
		WHERE `+strings.Join(clauses, " AND ")+`
		ORDER BY created_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

func scanPlace(row pgx.Row) (Place, error) {
	var p Place
	err := row.Scan(&p.ID, &p.Name, &p.Type, &p.City, &p.Country, &p.Description,
		&p.Address, &p.ImageURL, &p.Price, &p.PricePerNight, &p.PricePerHour,
		&p.Rating, &p.ReviewCount, &p.Amenities, &p.Latitude, &p.Longitude, &p.CreatedAt)
	if err != nil {
		return Place{}, err
	}
	return p, nil
}
