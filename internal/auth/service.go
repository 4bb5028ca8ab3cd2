package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lopotigo/nomadlife-app-sub000/internal/db"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

const userColumns = `id, username, email, password_hash, name, bio, avatar_url, location,
	       is_premium, countries_visited, cities_visited, coworking_visited, created_at`

func (s *Service) Signup(ctx context.Context, req SignupRequest) (User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return User{}, errors.New("username, email, password required")
	}

	taken, err := s.exists(ctx, "username", req.Username)
	if err != nil {
		return User{}, err
	}
	if taken {
		return User{}, ErrUsernameTaken
	}
	taken, err = s.exists(ctx, "email", req.Email)
	if err != nil {
		return User{}, err
	}
	if taken {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Bio:          req.Bio,
		Location:     req.Location,
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, username, email, password_hash, name, bio, location)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, user.ID, user.Username, user.Email, user.PasswordHash, user.Name, user.Bio, user.Location)
	if err := row.Scan(&user.CreatedAt); err != nil {
		// The pre-checks can race with a concurrent signup; the unique
		// index still holds and the duplicate surfaces here.
		if db.IsUniqueViolation(err) {
			if strings.Contains(db.UniqueConstraint(err), "email") {
				return User{}, ErrEmailTaken
			}
			return User{}, ErrUsernameTaken
		}
		return User{}, err
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE username = $1
	`, req.Username)

	user, err := scanUser(row)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

// UserExists satisfies session.UserLookup.
func (s *Service) UserExists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id=$1)`, id).Scan(&ok)
	return ok, err
}

func (s *Service) UpdateProfile(ctx context.Context, id string, patch ProfileUpdate) (User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = *patch.AvatarURL
	}
	if patch.Location != nil {
		user.Location = *patch.Location
	}
	if patch.CountriesVisited != nil {
		user.CountriesVisited = *patch.CountriesVisited
	}
	if patch.CitiesVisited != nil {
		user.CitiesVisited = *patch.CitiesVisited
	}
	if patch.CoworkingVisited != nil {
		user.CoworkingVisited = *patch.CoworkingVisited
	}

	_, err = s.db.Exec(ctx, `
		UPDATE users
		SET name=$2, bio=$3, avatar_url=$4, location=$5,
		    countries_visited=$6, cities_visited=$7, coworking_visited=$8
		WHERE id=$1
	`, user.ID, user.Name, user.Bio, user.AvatarURL, user.Location,
		user.CountriesVisited, user.CitiesVisited, user.CoworkingVisited)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Service) exists(ctx context.Context, column, value string) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE `+column+`=$1)`, value).Scan(&ok)
	return ok, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Name, &u.Bio,
		&u.AvatarURL, &u.Location, &u.IsPremium,
		&u.CountriesVisited, &u.CitiesVisited, &u.CoworkingVisited, &u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}
