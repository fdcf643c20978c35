package localjwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"myvet/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrNotConfigured = errors.New("jwt secret not configured")
)

// Config del firmador local (sandbox).
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type tokenClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Signer emite y verifica tokens HS256. Implementa auth.AuthVerifier y
// auth.TokenIssuer.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func New(cfg Config) *Signer {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Signer{
		secret: []byte(cfg.Secret),
		issuer: strings.TrimSpace(cfg.Issuer),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Signer) Issue(_ context.Context, c auth.Claims) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNotConfigured
	}
	now := s.now().UTC()
	claims := tokenClaims{
		ID:    c.UserID,
		Email: c.Email,
		Role:  c.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Signer) Verify(_ context.Context, token string) (auth.Claims, error) {
	if len(s.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}
	tc, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, jwt.ErrTokenInvalidClaims
	}

	uid := strings.TrimSpace(tc.ID)
	if uid == "" {
		uid = strings.TrimSpace(tc.Subject)
	}
	if uid == "" {
		return auth.Claims{}, errors.New("jwt claims missing user id")
	}
	return auth.Claims{UserID: uid, Email: tc.Email, Role: tc.Role}, nil
}
