package distance

import "errors"

var (
	// ErrShape is returned when array shapes disagree with each other or with
	// the redshift grid. It is always detected before any output is written.
	ErrShape = errors.New("distance: shape mismatch")
	// ErrGrid is returned for an evolution whose redshift grid is empty,
	// does not start at z = 0, or is not strictly increasing.
	ErrGrid = errors.New("distance: invalid redshift grid")
	// ErrCurvature is returned for a curvature parameter which is NaN or
	// infinite.
	ErrCurvature = errors.New("distance: invalid curvature")
)
