// Package shell traduce el estado de autenticación en navegación.
// Es un reductor: no dibuja pantallas, solo decide a cuál ir.
package shell

import (
	"context"
	"sync"

	"myvet/internal/auth"
	"myvet/internal/session"
)

type Screen string

const (
	ScreenNone      Screen = ""
	ScreenLogin     Screen = "login"
	ScreenOwnerHome Screen = "owner_home"
	ScreenVetHome   Screen = "vet_home"
)

// Action es un reemplazo de raíz: ClearHistory siempre va en true para
// que "atrás" no vuelva a una pantalla autenticada.
type Action struct {
	To           Screen
	ClearHistory bool
}

// Target decide la pantalla para un estado. Un rol desconocido con sesión
// válida va al home de dueño.
func Target(st auth.State) Screen {
	if !st.LoggedIn {
		return ScreenLogin
	}
	if st.Role == session.RoleVet {
		return ScreenVetHome
	}
	return ScreenOwnerHome
}

type Navigator struct {
	mu      sync.Mutex
	current Screen
}

func NewNavigator() *Navigator {
	return &Navigator{}
}

func (n *Navigator) Current() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Apply devuelve una acción solo si la pantalla destino cambia.
// El mismo estado publicado dos veces produce a lo más una navegación.
func (n *Navigator) Apply(st auth.State) (Action, bool) {
	to := Target(st)

	n.mu.Lock()
	defer n.mu.Unlock()

	if to == n.current {
		return Action{}, false
	}
	n.current = to
	return Action{To: to, ClearHistory: true}, true
}

// Run consume estados hasta que ctx termine o el canal se cierre.
func (n *Navigator) Run(ctx context.Context, states <-chan auth.State, navigate func(Action)) {
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-states:
			if !ok {
				return
			}
			if a, changed := n.Apply(st); changed && navigate != nil {
				navigate(a)
			}
		}
	}
}
