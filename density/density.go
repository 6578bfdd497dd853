// Package density decomposes reconstructed expansion histories into matter,
// radiation and dark energy densities.
//
// Every function takes a redshift grid z and an ensemble of Hubble distances DH
// with shape (samples, len(z)): each row is one expansion history tabulated on
// z. The decomposition assumes that only matter and radiation contribute to
// H(z) at the last (highest) redshift of the grid. The physical matter density
// inferred there is held fixed, radiation comes from the reference cosmology,
// and dark energy is whatever is left over. Left over densities can be
// negative; they are returned as-is.
package density

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/gphist/cosmo"
	"github.com/phil-mansfield/gphist/distance"
	"github.com/phil-mansfield/gphist/logging"
)

var (
	// ErrShape is returned when DH does not have one column per redshift.
	ErrShape = errors.New("density: shape mismatch")
	// ErrGrid is returned for redshift grids which are empty, do not start
	// at z = 0 or are not strictly increasing.
	ErrGrid = distance.ErrGrid
)

// Normalization selects how a dark energy density is expressed.
type Normalization int

const (
	// CriticalToday gives Omega_phi(z) h0^2 / h0^2, the dark energy density
	// relative to the critical density at z = 0.
	CriticalToday Normalization = iota
	// CriticalAtZ gives Omega_phi(z) h0^2 / h(z)^2, the dark energy density
	// relative to the critical density at z.
	CriticalAtZ
	// DarkEnergyToday gives Omega_phi(z) / Omega_phi(0).
	DarkEnergyToday
)

func (n Normalization) String() string {
	switch n {
	case CriticalToday:
		return "CriticalToday"
	case CriticalAtZ:
		return "CriticalAtZ"
	case DarkEnergyToday:
		return "DarkEnergyToday"
	}
	return fmt.Sprintf("Normalization(%d)", int(n))
}

type params struct {
	model cosmo.Model
}

// Option configures a decomposition.
type Option func(*params)

// WithModel sets the cosmology radiation densities are taken from. The
// default is cosmo.Fiducial().
func WithModel(m cosmo.Model) Option {
	return func(p *params) { p.model = m }
}

func loadOptions(opts []Option) *params {
	p := &params{model: cosmo.Fiducial()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HubbleFrac calculates h(z) = H(z) / (100 km/s/Mpc) = c / DH / 100 for every
// element of dh.
func HubbleFrac(dh mat.Matrix) *mat.Dense {
	r, c := dh.Dims()
	h := mat.NewDense(r, c, nil)
	h.Apply(func(_, _ int, v float64) float64 {
		return cosmo.CKms / v / 100
	}, dh)
	return h
}

// Acceleration calculates the cosmic acceleration H(z)/(1+z) in km/s/Mpc.
func Acceleration(z []float64, dh mat.Matrix) (*mat.Dense, error) {
	if err := checkShapes(z, dh); err != nil {
		return nil, err
	}
	r, c := dh.Dims()
	acc := mat.NewDense(r, c, nil)
	acc.Apply(func(_, j int, v float64) float64 {
		return cosmo.CKms / v / (1 + z[j])
	}, dh)
	return acc, nil
}

// RadiationDensity returns the physical radiation density omega_r(z) from
// the reference cosmology. It does not depend on the samples.
func RadiationDensity(z []float64, opts ...Option) []float64 {
	return loadOptions(opts).model.RadiationFraction(z)
}

// MatterDensity infers the physical matter density Omega_m h0^2 of each
// sample, assuming only matter and radiation contribute at the last redshift
// of the grid.
func MatterDensity(
	z []float64, dh mat.Matrix, opts ...Option,
) ([]float64, error) {
	if err := checkShapes(z, dh); err != nil {
		return nil, err
	}
	omegaR := RadiationDensity(z, opts...)
	return inferMatter(z, HubbleFrac(dh), omegaR), nil
}

// MatterDensityEvolution calculates Omega_m(z) = (Omega_m h0^2) (1+z)^3 /
// h(z)^2, the matter density relative to the critical density at z.
func MatterDensityEvolution(
	z []float64, dh mat.Matrix, opts ...Option,
) (*mat.Dense, error) {
	if err := checkShapes(z, dh); err != nil {
		return nil, err
	}
	h := HubbleFrac(dh)
	omegaM := inferMatter(z, h, RadiationDensity(z, opts...))

	r, c := h.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, hz float64) float64 {
		return omegaM[i] * cube(1+z[j]) / (hz * hz)
	}, h)
	return out, nil
}

// RadiationDensityEvolution calculates Omega_r(z) = omega_r(z) / h(z)^2, the
// radiation density relative to the critical density at z, for each sample.
func RadiationDensityEvolution(
	z []float64, dh mat.Matrix, opts ...Option,
) (*mat.Dense, error) {
	if err := checkShapes(z, dh); err != nil {
		return nil, err
	}
	h := HubbleFrac(dh)
	omegaR := RadiationDensity(z, opts...)

	r, c := h.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, j int, hz float64) float64 {
		return omegaR[j] / (hz * hz)
	}, h)
	return out, nil
}

// DarkEnergyEvolution calculates the dark energy density evolution. Element
// [0] gives Omega_phi(z) h0^2 / h0^2 for each entry in dh and element [1]
// gives Omega_phi(z) h0^2 / h(z)^2: the CriticalToday and CriticalAtZ
// normalizations of DarkEnergyDensity.
func DarkEnergyEvolution(
	z []float64, dh mat.Matrix, opts ...Option,
) ([2]*mat.Dense, error) {
	if err := checkShapes(z, dh); err != nil {
		return [2]*mat.Dense{}, err
	}
	h, omegaPhi := decompose(z, dh, opts)
	return [2]*mat.Dense{
		normalize(omegaPhi, h, CriticalToday),
		normalize(omegaPhi, h, CriticalAtZ),
	}, nil
}

// DarkEnergyDensity returns the dark energy density of every sample at every
// redshift in the requested normalization.
func DarkEnergyDensity(
	z []float64, dh mat.Matrix, norm Normalization, opts ...Option,
) (*mat.Dense, error) {
	switch norm {
	case CriticalToday, CriticalAtZ, DarkEnergyToday:
	default:
		return nil, fmt.Errorf("density: unknown normalization %v", norm)
	}
	if err := checkShapes(z, dh); err != nil {
		return nil, err
	}
	h, omegaPhi := decompose(z, dh, opts)
	return normalize(omegaPhi, h, norm), nil
}

// decompose returns h(z) and the physical dark energy density
// omega_phi(z) = h(z)^2 - omega_r(z) - omega_m (1+z)^3.
func decompose(
	z []float64, dh mat.Matrix, opts []Option,
) (h, omegaPhi *mat.Dense) {
	h = HubbleFrac(dh)
	omegaR := RadiationDensity(z, opts...)
	omegaM := inferMatter(z, h, omegaR)
	return h, physicalDarkEnergy(z, h, omegaR, omegaM)
}

// inferMatter evaluates omega_m = (h(zmax)^2 - omega_r(zmax)) / (1+zmax)^3
// for each row of h.
func inferMatter(z []float64, h *mat.Dense, omegaR []float64) []float64 {
	r, c := h.Dims()
	last := c - 1
	zp1Cubed := cube(1 + z[last])

	omegaM := make([]float64, r)
	for i := range omegaM {
		hz := h.At(i, last)
		omegaM[i] = (hz*hz - omegaR[last]) / zp1Cubed
	}

	logging.Logger().Debug("inferred matter density",
		zap.Int("samples", r),
		zap.Float64("zmax", z[last]),
		zap.Float64("omega_m[0]", omegaM[0]),
	)
	return omegaM
}

func physicalDarkEnergy(
	z []float64, h *mat.Dense, omegaR, omegaM []float64,
) *mat.Dense {
	r, c := h.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, hz float64) float64 {
		return (hz*hz - omegaR[j]) - omegaM[i]*cube(1+z[j])
	}, h)
	return out
}

func normalize(omegaPhi, h *mat.Dense, norm Normalization) *mat.Dense {
	r, c := omegaPhi.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, v float64) float64 {
		switch norm {
		case CriticalToday:
			h0 := h.At(i, 0)
			return v / (h0 * h0)
		case CriticalAtZ:
			hz := h.At(i, j)
			return v / (hz * hz)
		default:
			return v / omegaPhi.At(i, 0)
		}
	}, omegaPhi)
	return out
}

func checkShapes(z []float64, dh mat.Matrix) error {
	if err := distance.CheckGrid(z); err != nil {
		return err
	}
	if _, c := dh.Dims(); c != len(z) {
		return fmt.Errorf("%w: DH has %d redshifts but the grid has %d",
			ErrShape, c, len(z))
	}
	return nil
}

func cube(x float64) float64 { return x * x * x }
