// Package auth orquesta login/registro/logout sobre el Session Store y
// publica el estado de autenticación para que el shell reaccione.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"myvet/internal/apiclient"
	"myvet/internal/platform/httpclient"
	"myvet/internal/platform/logger"
	"myvet/internal/result"
	"myvet/internal/session"
)

const (
	loginPath    = "/api/auth/login"
	registerPath = "/api/auth/register"
)

var (
	ErrEmptyResponse = errors.New("empty response")
)

// StatusError es la falla de login/registro: "HTTP <code> <body>".
// Envuelve el HTTPError para que apiclient.Classify siga funcionando.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return strings.TrimSpace(fmt.Sprintf("HTTP %d %s", e.Code, strings.TrimSpace(e.Body)))
}

func (e *StatusError) Unwrap() error {
	return &httpclient.HTTPError{StatusCode: e.Code, Body: strings.TrimSpace(e.Body)}
}

// State es lo que observa el shell. Se re-emite en cada cambio; los
// consumidores deben ser idempotentes (nivel, no flanco).
type State struct {
	LoggedIn bool
	Role     string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Nombre   string `json:"nombre,omitempty"`
}

type RegisterInput struct {
	Email       string
	Password    string
	Role        string
	DisplayName string
}

type Controller struct {
	client *httpclient.Client
	store  *session.Store
	log    logger.Logger

	mu      sync.Mutex
	current State
	subs    map[int]chan State
	nextID  int
}

// NewController recibe el cliente ANÓNIMO; login/registro no llevan token.
func NewController(client *httpclient.Client, store *session.Store, log logger.Logger) *Controller {
	return &Controller{
		client: client,
		store:  store,
		log:    logger.OrNop(log).With(map[string]any{"component": "auth"}),
		subs:   make(map[int]chan State),
	}
}

func (c *Controller) Login(ctx context.Context, email, password string) result.Result[session.Session] {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return result.Fail[session.Session](apiclient.Invalid("email y contraseña son obligatorios"))
	}
	return c.authenticate(ctx, "login", loginPath, loginRequest{Email: email, Password: password})
}

func (c *Controller) Register(ctx context.Context, in RegisterInput) result.Result[session.Session] {
	email := strings.TrimSpace(in.Email)
	role := strings.TrimSpace(in.Role)
	if email == "" || in.Password == "" {
		return result.Fail[session.Session](apiclient.Invalid("email y contraseña son obligatorios"))
	}
	if !session.ValidRole(role) {
		return result.Fail[session.Session](apiclient.Invalid(fmt.Sprintf("rol inválido %q (owner|veterinario)", role)))
	}
	return c.authenticate(ctx, "register", registerPath, registerRequest{
		Email:    email,
		Password: in.Password,
		Role:     role,
		Nombre:   strings.TrimSpace(in.DisplayName),
	})
}

func (c *Controller) authenticate(ctx context.Context, op, path string, body any) result.Result[session.Session] {
	resp, err := c.client.Do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		c.log.Warn("auth request failed", map[string]any{"op": op, "error": err})
		return result.Fail[session.Session](err)
	}
	if !resp.OK() {
		c.log.Info("auth rejected", map[string]any{"op": op, "status": resp.StatusCode})
		return result.Fail[session.Session](&StatusError{Code: resp.StatusCode, Body: string(resp.Body)})
	}

	raw := strings.TrimSpace(string(resp.Body))
	if raw == "" || raw == "null" {
		return result.Fail[session.Session](ErrEmptyResponse)
	}

	var ar session.AuthResponse
	if err := json.Unmarshal(resp.Body, &ar); err != nil {
		return result.Fail[session.Session](fmt.Errorf("%w: auth response: %v", httpclient.ErrDecode, err))
	}

	sess, err := c.store.Save(ctx, ar)
	if err != nil {
		if errors.Is(err, session.ErrEmptyToken) {
			return result.Fail[session.Session](ErrEmptyResponse)
		}
		return result.Fail[session.Session](fmt.Errorf("auth: save session: %w", err))
	}

	c.log.Info("authenticated", map[string]any{"op": op, "user_id": sess.UserID, "role": sess.Role})
	c.publish(State{LoggedIn: true, Role: sess.Role})
	return result.Ok(sess)
}

// Logout es local: no llama al backend.
func (c *Controller) Logout(ctx context.Context) {
	c.clear(ctx, "logout")
}

// ForceLogout lo dispara el cliente autenticado ante un 401.
func (c *Controller) ForceLogout(ctx context.Context, reason string) {
	c.clear(ctx, reason)
}

func (c *Controller) clear(ctx context.Context, reason string) {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn("session clear failed", map[string]any{"reason": reason, "error": err})
	}
	c.log.Info("logged out", map[string]any{"reason": reason})
	c.publish(State{LoggedIn: false})
}

// ValidateSession se corre al iniciar: evita tokens "fantasma" (reinstalación,
// cambio de reloj). IsLoggedIn limpia la sesión si el token no sirve.
func (c *Controller) ValidateSession(ctx context.Context) State {
	st := State{}
	if c.store.IsLoggedIn(ctx) {
		role, _ := c.store.Role(ctx)
		st = State{LoggedIn: true, Role: role}
	}
	c.publish(st)
	return st
}

func (c *Controller) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Subscribe entrega el estado actual de inmediato y luego cada publicación.
// Si el consumidor se atrasa, se conserva solo el último estado.
func (c *Controller) Subscribe(buffer int) (<-chan State, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan State, buffer)

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = ch
	ch <- c.current
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (c *Controller) publish(st State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = st
	for _, ch := range c.subs {
		select {
		case ch <- st:
		default:
			// latest wins
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
}
