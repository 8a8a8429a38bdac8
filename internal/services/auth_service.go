package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/isdelr/contactos-api/internal/auth"
	"github.com/isdelr/contactos-api/internal/database"
	"github.com/isdelr/contactos-api/internal/models"
)

// DefaultTokenTTL is how long an issued bearer token stays valid.
const DefaultTokenTTL = time.Minute

// AuthServiceProvider defines the interface for registration and tokens.
type AuthServiceProvider interface {
	Register(ctx context.Context, username, password string) error
	IssueToken(ctx context.Context, username, password string) (string, error)
	ValidateToken(ctx context.Context, token string) error
}

// AuthService keeps users and their single active token in the usuarios table.
type AuthService struct {
	db       *database.DB
	hasher   auth.PasswordHasher
	ttl      time.Duration
	now      func() time.Time
	newToken func() string
}

// NewAuthService creates a new AuthService. A non-positive ttl falls back to
// DefaultTokenTTL.
func NewAuthService(db *database.DB, hasher auth.PasswordHasher, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{
		db:       db,
		hasher:   hasher,
		ttl:      ttl,
		now:      time.Now,
		newToken: auth.NewToken,
	}
}

// Register creates a user with a hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		s.db.Rebind("INSERT INTO usuarios (username, password) VALUES (?, ?)"),
		username, hash)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("user %s: %w", username, ErrConflict)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// IssueToken checks the credentials and replaces the user's token with a
// fresh one that expires after the configured TTL.
func (s *AuthService) IssueToken(ctx context.Context, username, password string) (string, error) {
	user, err := s.getUser(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", fmt.Errorf("unknown user %s: %w", username, ErrUnauthenticated)
		}
		return "", err
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return "", fmt.Errorf("invalid password for %s: %w", username, ErrUnauthenticated)
	}

	token := s.newToken()
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	_, err = s.db.ExecContext(ctx,
		s.db.Rebind("UPDATE usuarios SET token = ?, timestamp = ?, expiration_timestamp = ? WHERE username = ?"),
		token, issuedAt.Unix(), epochSeconds(expiresAt), username)
	if err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// ValidateToken succeeds when some user currently holds token and it has not
// expired. It does not say which user that is.
func (s *AuthService) ValidateToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("empty token: %w", ErrUnauthenticated)
	}

	var expiresAt sql.NullFloat64
	row := s.db.QueryRowContext(ctx, s.db.Rebind("SELECT expiration_timestamp FROM usuarios WHERE token = ?"), token)
	if err := row.Scan(&expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("unknown token: %w", ErrUnauthenticated)
		}
		return fmt.Errorf("failed to look up token: %w", err)
	}
	if !expiresAt.Valid || epochSeconds(s.now()) >= expiresAt.Float64 {
		return fmt.Errorf("token expired: %w", ErrUnauthenticated)
	}
	return nil
}

func (s *AuthService) getUser(ctx context.Context, username string) (models.User, error) {
	var (
		user      models.User
		token     sql.NullString
		issuedAt  sql.NullInt64
		expiresAt sql.NullFloat64
	)
	row := s.db.QueryRowContext(ctx,
		s.db.Rebind("SELECT username, password, token, timestamp, expiration_timestamp FROM usuarios WHERE username = ?"),
		username)
	if err := row.Scan(&user.Username, &user.PasswordHash, &token, &issuedAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	if token.Valid {
		user.Token = &token.String
	}
	if issuedAt.Valid {
		t := time.Unix(issuedAt.Int64, 0)
		user.TokenIssuedAt = &t
	}
	if expiresAt.Valid {
		t := fromEpochSeconds(expiresAt.Float64)
		user.TokenExpiresAt = &t
	}
	return user, nil
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromEpochSeconds(f float64) time.Time {
	return time.Unix(0, int64(f*float64(time.Second)))
}
