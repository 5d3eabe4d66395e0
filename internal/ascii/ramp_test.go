package ascii

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRamp(t *testing.T) {
	_, err := NewRamp("")
	assert.ErrorIs(t, err, ErrInvalidRamp)

	r, err := NewRamp("█▓▒░ ")
	require.NoError(t, err)
	assert.Len(t, r, 5)
	assert.Equal(t, "█▓▒░ ", r.String())
}

func TestRamp_Index(t *testing.T) {
	r := Ramp(DefaultRamp)
	assert.Equal(t, 0, r.Index(0))
	assert.Equal(t, 1, r.Index(1))
	assert.Equal(t, 5, r.Index(128))
	assert.Equal(t, 9, r.Index(255))
	assert.Equal(t, 0, r.Index(-20))
	assert.Equal(t, 9, r.Index(300))

	assert.Equal(t, '@', r.Char(0))
	assert.Equal(t, ' ', r.Char(255))
}

func TestRamp_SingleCharacter(t *testing.T) {
	r := Ramp("#")
	for l := 0; l <= 255; l++ {
		require.Equal(t, '#', r.Char(l))
	}
}

func TestRamp_Monotonic(t *testing.T) {
	for n := 1; n <= 70; n++ {
		r := make(Ramp, n)
		prev := 0
		for l := 0; l <= 255; l++ {
			i := r.Index(l)
			require.GreaterOrEqual(t, i, prev, "n=%d l=%d", n, l)
			require.Less(t, i, n)
			prev = i
		}
		assert.Equal(t, 0, r.Index(0))
		assert.Equal(t, n-1, r.Index(255))
	}
}
