package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	ok := Ok(3)
	assert.True(t, ok.IsOk())
	assert.Equal(t, 3, ok.ValueOr(0))

	boom := errors.New("boom")
	bad := Fail[int](boom)
	assert.False(t, bad.IsOk())
	assert.Equal(t, 7, bad.ValueOr(7))
	_, err := bad.Unwrap()
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, Fail[string](nil).Err(), ErrUnknown)

	doubled := Map(ok, func(v int) string { return "x" + string(rune('0'+v*2)) })
	assert.Equal(t, "x6", doubled.ValueOr(""))
	assert.ErrorIs(t, Map(bad, func(int) int { return 1 }).Err(), boom)

	assert.True(t, From("a", nil).IsOk())
	assert.False(t, From("a", boom).IsOk())
}
