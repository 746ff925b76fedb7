package model

import "github.com/grexie/iris/pkg/numeric"

var (
	ErrDimensionMismatch = numeric.ErrDimensionMismatch
	ErrInvalidParameter  = numeric.ErrInvalidParameter
	ErrEmptyDataset      = numeric.ErrEmptyDataset
)
