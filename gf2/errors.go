package gf2

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInput    = errors.New("malformed input")
	ErrRankDeficient     = errors.New("rank deficient")
	ErrInvalidShift      = errors.New("invalid shift")
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

//RankDeficientError is returned when the parity columns of a check matrix can not be
// reduced to an identity block. Column is the first target column that had no pivot
// and Pivots is the number of pivots found.
type RankDeficientError struct {
	Column int
	Pivots int
	Rows   int
}

func (e *RankDeficientError) Error() string {
	return fmt.Sprintf("rank deficient: no pivot for target column %v (found %v of %v pivots)", e.Column, e.Pivots, e.Rows)
}

func (e *RankDeficientError) Is(target error) bool {
	return target == ErrRankDeficient
}

func dimensionErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %v", ErrDimensionMismatch, fmt.Sprintf(format, args...))
}
