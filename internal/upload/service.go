package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lopotigo/nomadlife-app-sub000/internal/config"
	"github.com/lopotigo/nomadlife-app-sub000/internal/db"
)

var (
	ErrTooLarge     = errors.New("object exceeds the upload size limit")
	ErrInvalidToken = errors.New("upload token is invalid or expired")
	ErrNotFound     = errors.New("object not found")
)

const tokenTTL = 15 * time.Minute

type Service struct {
	db  db.Querier
	cfg config.Config
}

func NewService(q db.Querier, cfg config.Config) *Service {
	return &Service{db: q, cfg: cfg}
}

type RequestURLRequest struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

type Grant struct {
	UploadURL string    `json:"uploadUrl"`
	ReadPath  string    `json:"readPath"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type tokenClaims struct {
	Path        string `json:"path"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	jwt.RegisteredClaims
}

// RequestURL mints an object path and a short-lived signed token
// binding it. The caller PUTs the bytes to the returned URL; the read
// path is stable immediately even though the object lands later.
func (s *Service) RequestURL(userID string, req RequestURLRequest) (Grant, error) {
	if req.Name == "" || req.Size <= 0 {
		return Grant{}, errors.New("name and a positive size are required")
	}
	if req.Size > s.cfg.MaxUploadMB*1024*1024 {
		return Grant{}, ErrTooLarge
	}

	path := "uploads/" + uuid.NewString()
	expires := time.Now().Add(tokenTTL)

	claims := tokenClaims{
		Path:        path,
		ContentType: req.ContentType,
		Size:        req.Size,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return Grant{}, err
	}

	return Grant{
		UploadURL: fmt.Sprintf("%s/objects/upload?token=%s", s.cfg.PublicBaseURL, url.QueryEscape(token)),
		ReadPath:  "/objects/" + path,
		ExpiresAt: expires,
	}, nil
}

// Receive validates the token, stages the body in a temp file and
// records the object, then moves it onto its final path. The unique
// path constraint rejects a replayed token before the rename, so a
// committed object is never truncated or removed.
func (s *Service) Receive(ctx context.Context, tokenString string, body io.Reader) (string, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil || !token.Valid || !strings.HasPrefix(claims.Path, "uploads/") {
		return "", ErrInvalidToken
	}

	dest := filepath.Join(s.cfg.UploadDir, filepath.FromSlash(claims.Path))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".incoming-*")
	if err != nil {
		return "", err
	}
	size, err := io.Copy(tmp, io.LimitReader(body, claims.Size+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil && size > claims.Size {
		err = ErrTooLarge
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO storage_objects (id, user_id, path, content_type, size_bytes)
		VALUES ($1,$2,$3,$4,$5)
	`, uuid.NewString(), claims.Subject, claims.Path, claims.ContentType, size)
	if err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", err
	}
	return claims.Path, nil
}

// Open returns a reader for a stored object plus its recorded content
// type. Objects missing on disk map to ErrNotFound regardless of what
// the database says.
func (s *Service) Open(ctx context.Context, path string) (io.ReadCloser, string, error) {
	if !strings.HasPrefix(path, "uploads/") || strings.Contains(path, "..") {
		return nil, "", ErrNotFound
	}

	var contentType string
	err := s.db.QueryRow(ctx, `
		SELECT content_type FROM storage_objects WHERE path = $1
	`, path).Scan(&contentType)
	if err != nil {
		return nil, "", ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.cfg.UploadDir, filepath.FromSlash(path)))
	if os.IsNotExist(err) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return f, contentType, nil
}
