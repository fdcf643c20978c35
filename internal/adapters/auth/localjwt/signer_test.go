package localjwt

import (
	"context"
	"testing"
	"time"

	"myvet/internal/ports/auth"
	"myvet/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueThenVerify(t *testing.T) {
	s := New(Config{Secret: "s3cret", Issuer: "myvet-sandbox", TTL: time.Hour})
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	tok, err := s.Issue(context.Background(), auth.Claims{UserID: "u1", Email: "a@b.com", Role: "owner"})
	require.NoError(t, err)

	c, err := s.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "u1", Email: "a@b.com", Role: "owner"}, c)

	// el cliente lee exp y role del mismo token
	v := token.NewValidator(token.WithClock(func() time.Time { return now }))
	tc, err := v.Inspect(tok)
	require.NoError(t, err)
	assert.Equal(t, "owner", tc.Role)
	assert.False(t, v.IsExpired(tok))
}

func TestVerify_Rejects(t *testing.T) {
	s := New(Config{Secret: "s3cret", Issuer: "myvet-sandbox", TTL: time.Hour})
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	tok, err := s.Issue(context.Background(), auth.Claims{UserID: "u1", Role: "owner"})
	require.NoError(t, err)

	other := New(Config{Secret: "otro", Issuer: "myvet-sandbox"})
	other.now = s.now
	_, err = other.Verify(context.Background(), tok)
	assert.Error(t, err, "bad signature")

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = s.Verify(context.Background(), tok)
	assert.Error(t, err, "expired")

	_, err = s.Verify(context.Background(), " ")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = New(Config{}).Issue(context.Background(), auth.Claims{UserID: "u1"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
