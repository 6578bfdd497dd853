// Package evol provides redshift grids for tabulating expansion histories,
// along with the integrals needed to turn Hubble distances on those grids into
// comoving distances.
//
// Two grids are available: Linear, which is uniform in z, and LogScale, which is
// uniform in s = ln(1 + z) and so places more points at low redshift.
package evol

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/gphist/math/interpolate"
)

var (
	// ErrParams is returned for grids that cannot be constructed.
	ErrParams = errors.New("evol: invalid grid parameters")
	// ErrShape is returned when a DH array does not match the grid.
	ErrShape = errors.New("evol: shape mismatch")
)

// grid holds a redshift grid together with the uniformly spaced variable u
// used for integration and the Jacobian dz/du at each point.
type grid struct {
	zs, us, dzdu []float64
}

// Linear is a grid uniform in redshift.
type Linear struct{ grid }

// LogScale is a grid uniform in s = ln(1 + z).
type LogScale struct{ grid }

// NewLinear returns a grid of nSteps redshifts uniformly spaced on
// [0, zMax].
func NewLinear(zMax float64, nSteps int) (*Linear, error) {
	if err := checkParams(zMax, nSteps); err != nil {
		return nil, err
	}
	zs := floats.Span(make([]float64, nSteps), 0, zMax)
	dzdu := make([]float64, nSteps)
	for i := range dzdu {
		dzdu[i] = 1
	}
	return &Linear{grid{zs: zs, us: zs, dzdu: dzdu}}, nil
}

// NewLogScale returns a grid of nSteps redshifts uniformly spaced in
// ln(1 + z) on [0, ln(1 + zMax)].
func NewLogScale(zMax float64, nSteps int) (*LogScale, error) {
	if err := checkParams(zMax, nSteps); err != nil {
		return nil, err
	}
	ss := floats.Span(make([]float64, nSteps), 0, math.Log1p(zMax))
	zs, dzds := make([]float64, nSteps), make([]float64, nSteps)
	for i, s := range ss {
		zs[i] = math.Expm1(s)
		dzds[i] = 1 + zs[i]
	}
	zs[nSteps-1] = zMax
	return &LogScale{grid{zs: zs, us: ss, dzdu: dzds}}, nil
}

func checkParams(zMax float64, nSteps int) error {
	if nSteps < 2 {
		return fmt.Errorf("%w: need at least 2 steps, got %d",
			ErrParams, nSteps)
	} else if !(zMax > 0) || math.IsInf(zMax, 0) {
		return fmt.Errorf("%w: zMax = %g must be positive and finite",
			ErrParams, zMax)
	}
	return nil
}

// ZValues returns the redshift grid. The first element is exactly 0.
func (g *grid) ZValues() []float64 { return g.zs }

// DC integrates each row of dh, shape (samples, steps), to give the comoving
// distance DC(z) = int_0^z DH(z') dz' on the grid. The integrand is
// interpolated with a natural cubic spline in the grid's uniform variable;
// two point grids use the trapezoid rule.
func (g *grid) DC(dh *mat.Dense) (*mat.Dense, error) {
	r, c := dh.Dims()
	if c != len(g.zs) {
		return nil, fmt.Errorf("%w: DH has %d steps but the grid has %d",
			ErrShape, c, len(g.zs))
	}

	dc := mat.NewDense(r, c, nil)
	integrand := make([]float64, c)
	var sp *interpolate.Spline
	for i := 0; i < r; i++ {
		floats.MulTo(integrand, dh.RawRowView(i), g.dzdu)
		out := dc.RawRowView(i)

		if c == 2 {
			out[1] = integrate.Trapezoidal(g.us, integrand)
			continue
		}

		if sp == nil {
			sp = interpolate.NewSpline(g.us, integrand)
		} else {
			sp.Init(g.us, integrand)
		}
		for j := 1; j < c; j++ {
			out[j] = out[j-1] + sp.Integrate(g.us[j-1], g.us[j])
		}
	}
	return dc, nil
}
