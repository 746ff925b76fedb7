package numeric

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.Wrapf(ErrDimensionMismatch, "dot of vectors with lengths %d and %d", len(a), len(b))
	}
	return floats.Dot(a, b), nil
}
