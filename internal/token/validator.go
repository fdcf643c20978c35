// Package token decodifica el payload de un JWT y decide si sigue vigente.
// No verifica firma: eso es responsabilidad del backend.
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformed: menos de 2 segmentos, base64 inválido o claims que no son un objeto JSON.
	ErrMalformed = errors.New("token: malformed")
	// ErrMissingExp: claims válidos pero sin "exp" (o exp=0).
	ErrMissingExp = errors.New("token: missing exp claim")
	ErrExpired    = errors.New("token: expired")
)

// MissingExpPolicy decide qué hacer con un token sin "exp".
// El historial del backend tuvo ambas conductas; por defecto se trata como vencido.
type MissingExpPolicy int

const (
	MissingExpExpired MissingExpPolicy = iota
	MissingExpValid
)

func ParseMissingExpPolicy(s string) (MissingExpPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "expired":
		return MissingExpExpired, nil
	case "valid":
		return MissingExpValid, nil
	default:
		return MissingExpExpired, fmt.Errorf("token: unknown missing-exp policy %q", s)
	}
}

// Claims tipados del payload que emite el backend.
type Claims struct {
	jwt.RegisteredClaims

	UserID string `json:"id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	Name   string `json:"nombre,omitempty"`
}

// Expiry devuelve exp o zero time si no viene.
func (c Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

type Validator struct {
	now        func() time.Time
	missingExp MissingExpPolicy
	parser     *jwt.Parser
}

type Option func(*Validator)

func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

func WithMissingExp(p MissingExpPolicy) Option {
	return func(v *Validator) { v.missingExp = p }
}

func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		now:        time.Now,
		missingExp: MissingExpExpired,
		parser:     jwt.NewParser(jwt.WithPaddingAllowed()),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Inspect decodifica solo el segundo segmento (claims). Header y firma se ignoran.
func (v *Validator) Inspect(raw string) (Claims, error) {
	parts := strings.Split(strings.TrimSpace(raw), ".")
	if len(parts) < 2 {
		return Claims{}, fmt.Errorf("%w: %d segment(s)", ErrMalformed, len(parts))
	}

	payload, err := v.parser.DecodeSegment(parts[1])
	if err != nil {
		return Claims{}, fmt.Errorf("%w: decode claims: %v", ErrMalformed, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil || fields == nil {
		return Claims{}, fmt.Errorf("%w: claims are not a json object", ErrMalformed)
	}
	return claimsFrom(fields), nil
}

// claimsFrom lee cada claim por separado. Solo exp decide la vigencia; un
// tipo inesperado en otro claim deja ese campo vacío.
func claimsFrom(fields map[string]json.RawMessage) Claims {
	var c Claims
	if raw, ok := fields["exp"]; ok {
		var exp jwt.NumericDate
		if json.Unmarshal(raw, &exp) == nil {
			c.ExpiresAt = &exp
		}
	}
	if raw, ok := fields["iat"]; ok {
		var iat jwt.NumericDate
		if json.Unmarshal(raw, &iat) == nil {
			c.IssuedAt = &iat
		}
	}
	if raw, ok := fields["aud"]; ok {
		var aud jwt.ClaimStrings
		if json.Unmarshal(raw, &aud) == nil {
			c.Audience = aud
		}
	}
	c.Subject = stringClaim(fields["sub"])
	c.Issuer = stringClaim(fields["iss"])
	c.UserID = stringClaim(fields["id"])
	c.Email = stringClaim(fields["email"])
	c.Role = stringClaim(fields["role"])
	c.Name = stringClaim(fields["nombre"])
	return c
}

// stringClaim acepta string o número ("id": 42 => "42"); cualquier otra cosa es "".
func stringClaim(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// Check aplica la regla de expiración: now >= exp => vencido.
func (v *Validator) Check(raw string) (Claims, error) {
	c, err := v.Inspect(raw)
	if err != nil {
		return Claims{}, err
	}

	if c.ExpiresAt == nil || c.ExpiresAt.Unix() == 0 {
		if v.missingExp == MissingExpValid {
			return c, nil
		}
		return c, ErrMissingExp
	}

	if v.now().Unix() >= c.ExpiresAt.Unix() {
		return c, ErrExpired
	}
	return c, nil
}

// IsExpired es true para tokens vencidos, mal formados o (según política) sin exp.
func (v *Validator) IsExpired(raw string) bool {
	_, err := v.Check(raw)
	return err != nil
}

var defaultValidator = NewValidator()

// IsExpired con reloj real y política por defecto (sin exp => vencido).
func IsExpired(raw string) bool {
	return defaultValidator.IsExpired(raw)
}
