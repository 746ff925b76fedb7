package numeric_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/grexie/iris/pkg/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	v, err := numeric.Dot([]float64{1, 2, 3}, []float64{4, -5, 6})
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)

	v, err = numeric.Dot(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestDotDimensionMismatch(t *testing.T) {
	_, err := numeric.Dot([]float64{1, 2}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, numeric.ErrDimensionMismatch)
}

func TestSoftmaxIsDistribution(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		scores := make([]float64, 1+rng.IntN(6))
		for i := range scores {
			scores[i] = (rng.Float64()*2 - 1) * 50
		}
		probs, err := numeric.Softmax(scores)
		require.NoError(t, err)

		sum := 0.0
		for _, p := range probs {
			assert.GreaterOrEqual(t, p, 0.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestSoftmaxShiftInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for range 100 {
		scores := make([]float64, 3)
		shifted := make([]float64, 3)
		c := (rng.Float64()*2 - 1) * 100
		for i := range scores {
			scores[i] = rng.Float64() * 10
			shifted[i] = scores[i] + c
		}
		a, err := numeric.Softmax(scores)
		require.NoError(t, err)
		b, err := numeric.Softmax(shifted)
		require.NoError(t, err)
		assert.InDeltaSlice(t, a, b, 1e-9)
	}
}

func TestSoftmaxLargeScores(t *testing.T) {
	probs, err := numeric.Softmax([]float64{1000, 1001, 999})
	require.NoError(t, err)
	for _, p := range probs {
		assert.False(t, math.IsNaN(p) || math.IsInf(p, 0))
	}
	assert.InDelta(t, 0.6652409557748218, probs[1], 1e-12)

	probs, err = numeric.Softmax([]float64{-1e308, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, probs)
}

func TestSoftmaxUniform(t *testing.T) {
	probs, err := numeric.Softmax([]float64{0, 0, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, probs, 1e-15)
}

func TestSoftmaxEmpty(t *testing.T) {
	_, err := numeric.Softmax(nil)
	assert.ErrorIs(t, err, numeric.ErrDimensionMismatch)
}

func TestSoftmaxToAliases(t *testing.T) {
	scores := []float64{1, 2, 3}
	out := numeric.SoftmaxTo(scores, scores)
	assert.InDelta(t, 1.0, out[0]+out[1]+out[2], 1e-12)
	assert.Same(t, &scores[0], &out[0])
}

func TestArgmax(t *testing.T) {
	assert.Equal(t, 2, numeric.Argmax([]float64{0.1, 0.2, 0.7}))
	assert.Equal(t, 0, numeric.Argmax([]float64{0.5, 0.5}))
	assert.Equal(t, 1, numeric.Argmax([]float64{0.2, 0.4, 0.4}))
	assert.Equal(t, -1, numeric.Argmax(nil))
}
