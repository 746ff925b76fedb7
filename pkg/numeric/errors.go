package numeric

import "github.com/pkg/errors"

var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrEmptyDataset      = errors.New("empty dataset")
)
