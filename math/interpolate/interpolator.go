package interpolate

// Interpolator is a 1D interpolator. Interpolators are not safe for
// concurrent use.
type Interpolator interface {
	// Eval evaluates the interpolator at x.
	Eval(x float64) float64
	// EvalAll evaluates a sequeunce of values and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs []float64, out ...[]float64) []float64
}

var _ Interpolator = &Spline{}
