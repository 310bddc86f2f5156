package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededSource_Reproducible(t *testing.T) {
	a := NewSeededSource("server", "client", 1)
	b := NewSeededSource("server", "client", 1)

	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestSeededSource_DifferentNonceDiverges(t *testing.T) {
	a := NewSeededSource("server", "client", 1)
	b := NewSeededSource("server", "client", 2)

	same := true
	for i := 0; i < 16; i++ {
		if a.Float64() != b.Float64() {
			same = false
			break
		}
	}
	assert.False(t, same, "distinct nonces should produce distinct draw sequences")
}

func TestSeededSource_Float64Range(t *testing.T) {
	src := NewSeededSource("server", "client", 7)
	for i := 0; i < 10000; i++ {
		f := src.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
	}
}

func TestCryptoSource_Ranges(t *testing.T) {
	src := NewCryptoSource()
	for i := 0; i < 1000; i++ {
		f := src.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)

		n := src.Intn(6)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 6)
	}
}

func TestFixedSource_ReplaysAndCycles(t *testing.T) {
	src := NewFixedSource(0.1, 0.9)

	assert.Equal(t, 0.1, src.Float64())
	assert.Equal(t, 0.9, src.Float64())
	assert.Equal(t, 0.1, src.Float64())

	assert.Equal(t, 5, src.Intn(6)) // 0.9 * 6
}

func TestIntn_PanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() { NewFixedSource(0.5).Intn(0) })
	assert.Panics(t, func() { NewCryptoSource().Intn(-1) })
}
