package shell

import (
	"context"
	"testing"

	"myvet/internal/auth"

	"github.com/stretchr/testify/assert"
)

func TestTarget(t *testing.T) {
	assert.Equal(t, ScreenLogin, Target(auth.State{}))
	assert.Equal(t, ScreenLogin, Target(auth.State{Role: "veterinario"}))
	assert.Equal(t, ScreenOwnerHome, Target(auth.State{LoggedIn: true, Role: "owner"}))
	assert.Equal(t, ScreenVetHome, Target(auth.State{LoggedIn: true, Role: "veterinario"}))
	assert.Equal(t, ScreenOwnerHome, Target(auth.State{LoggedIn: true}))
}

func TestApply_SameStateTwiceNavigatesOnce(t *testing.T) {
	n := NewNavigator()
	owner := auth.State{LoggedIn: true, Role: "owner"}

	a, ok := n.Apply(owner)
	assert.True(t, ok)
	assert.Equal(t, Action{To: ScreenOwnerHome, ClearHistory: true}, a)

	_, ok = n.Apply(owner)
	assert.False(t, ok)
	assert.Equal(t, ScreenOwnerHome, n.Current())
}

func TestRun_EmitsOnlyTransitions(t *testing.T) {
	states := make(chan auth.State, 6)
	states <- auth.State{}
	states <- auth.State{}
	states <- auth.State{LoggedIn: true, Role: "owner"}
	states <- auth.State{LoggedIn: true, Role: "owner"}
	states <- auth.State{LoggedIn: false}
	states <- auth.State{LoggedIn: true, Role: "veterinario"}
	close(states)

	var got []Screen
	NewNavigator().Run(context.Background(), states, func(a Action) {
		assert.True(t, a.ClearHistory)
		got = append(got, a.To)
	})

	assert.Equal(t, []Screen{ScreenLogin, ScreenOwnerHome, ScreenLogin, ScreenVetHome}, got)
}

func TestRun_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		NewNavigator().Run(ctx, make(chan auth.State), nil)
		close(done)
	}()
	<-done
}
