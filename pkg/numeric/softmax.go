package numeric

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Softmax normalizes scores into a probability distribution. The maximum
// score is subtracted before exponentiating so large inputs cannot overflow.
func Softmax(scores []float64) ([]float64, error) {
	if len(scores) == 0 {
		return nil, errors.Wrap(ErrDimensionMismatch, "softmax of empty vector")
	}
	return SoftmaxTo(make([]float64, len(scores)), scores), nil
}

// SoftmaxTo writes the softmax of scores into dst and returns it. dst and
// scores may alias. It panics if the lengths differ or scores is empty.
func SoftmaxTo(dst, scores []float64) []float64 {
	if len(dst) != len(scores) {
		panic("numeric: softmax length mismatch")
	}
	max := floats.Max(scores)
	for i, s := range scores {
		dst[i] = math.Exp(s - max)
	}
	floats.Scale(1/floats.Sum(dst), dst)
	return dst
}
