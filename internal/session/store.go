// Package session guarda la credencial actual (token + identidad + rol).
// Se inyecta por referencia en quien la necesite; no hay estado global.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"myvet/internal/platform/kvstore"
	"myvet/internal/platform/logger"
	"myvet/internal/token"
)

const storageKey = "session"

const (
	RoleOwner = "owner"
	RoleVet   = "veterinario"
)

var (
	ErrEmptyToken = errors.New("session: empty token")
)

func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleVet
}

// Session es el documento persistido. Todos los campos se escriben juntos.
type Session struct {
	Token       string `json:"token"`
	Role        string `json:"role,omitempty"`
	UserID      string `json:"userId,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"nombre,omitempty"`
}

func (s Session) Empty() bool {
	return strings.TrimSpace(s.Token) == ""
}

// User es el bloque "user" de la respuesta de login/register.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Nombre string `json:"nombre,omitempty"`
	Role   string `json:"role"`
}

// AuthResponse es el body de /auth/login y /auth/register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (r AuthResponse) Session() Session {
	return Session{
		Token:       strings.TrimSpace(r.Token),
		Role:        strings.TrimSpace(r.User.Role),
		UserID:      strings.TrimSpace(r.User.ID),
		Email:       strings.TrimSpace(r.User.Email),
		DisplayName: strings.TrimSpace(r.User.Nombre),
	}
}

// Validator es lo que Store necesita del paquete token.
type Validator interface {
	IsExpired(raw string) bool
}

type Store struct {
	kv        kvstore.Store
	validator Validator
	log       logger.Logger
}

func NewStore(kv kvstore.Store, v Validator, log logger.Logger) *Store {
	if v == nil {
		v = token.NewValidator()
	}
	return &Store{
		kv:        kv,
		validator: v,
		log:       logger.OrNop(log).With(map[string]any{"component": "session"}),
	}
}

// Save escribe token, rol, id, email y nombre en un único documento.
func (s *Store) Save(ctx context.Context, resp AuthResponse) (Session, error) {
	sess := resp.Session()
	if sess.Empty() {
		return Session{}, ErrEmptyToken
	}

	b, err := json.Marshal(sess)
	if err != nil {
		return Session{}, err
	}
	if err := s.kv.Set(ctx, storageKey, b); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Get devuelve la sesión guardada sin validar expiración.
// Un documento corrupto se trata como "sin sesión".
func (s *Store) Get(ctx context.Context) (Session, bool) {
	raw, ok, err := s.kv.Get(ctx, storageKey)
	if err != nil {
		s.log.Warn("session read failed", map[string]any{"error": err})
		return Session{}, false
	}
	if !ok {
		return Session{}, false
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.log.Warn("session document corrupt", map[string]any{"error": err})
		return Session{}, false
	}
	if sess.Empty() {
		return Session{}, false
	}
	return sess, true
}

// IsLoggedIn: sin token => false; token vencido o inválido => Clear() y false.
func (s *Store) IsLoggedIn(ctx context.Context) bool {
	sess, ok := s.Get(ctx)
	if !ok {
		return false
	}
	if s.validator.IsExpired(sess.Token) {
		s.log.Info("stored token expired, clearing session", map[string]any{"user_id": sess.UserID})
		if err := s.Clear(ctx); err != nil {
			s.log.Warn("session clear failed", map[string]any{"error": err})
		}
		return false
	}
	return true
}

// Clear borra todos los campos de sesión.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, storageKey)
}

func (s *Store) field(ctx context.Context, pick func(Session) string) (string, bool) {
	sess, ok := s.Get(ctx)
	if !ok {
		return "", false
	}
	v := pick(sess)
	return v, v != ""
}

// Token implementa httpclient.TokenSource.
func (s *Store) Token(ctx context.Context) (string, bool) {
	return s.field(ctx, func(x Session) string { return x.Token })
}

func (s *Store) Role(ctx context.Context) (string, bool) {
	return s.field(ctx, func(x Session) string { return x.Role })
}

func (s *Store) UserID(ctx context.Context) (string, bool) {
	return s.field(ctx, func(x Session) string { return x.UserID })
}

func (s *Store) Email(ctx context.Context) (string, bool) {
	return s.field(ctx, func(x Session) string { return x.Email })
}

func (s *Store) DisplayName(ctx context.Context) (string, bool) {
	return s.field(ctx, func(x Session) string { return x.DisplayName })
}
