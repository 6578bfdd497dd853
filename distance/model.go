package distance

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/gphist/cosmo"
	"github.com/phil-mansfield/gphist/logging"
)

// Evolution supplies the redshift grid that expansion-history samples are
// tabulated on, and integrates Hubble distances into comoving distances on
// that grid.
type Evolution interface {
	// ZValues returns the redshift grid. It starts at z = 0, is strictly
	// increasing, and must not be modified by the caller.
	ZValues() []float64
	// DC returns the comoving distances for each row of dh, which has shape
	// (samples, len(ZValues())).
	DC(dh *mat.Dense) (*mat.Dense, error)
}

type modelParams struct {
	model cosmo.Model
}

// Option configures a HubbleDistanceModel.
type Option func(*modelParams)

// WithModel sets the reference cosmology. The default is cosmo.Fiducial().
func WithModel(m cosmo.Model) Option {
	return func(p *modelParams) { p.model = m }
}

// HubbleDistanceModel models expansion histories as multiplicative
// corrections to a reference DH(z).
type HubbleDistanceModel struct {
	evol Evolution
	zs   []float64
	// DH0 and DC0 are the reference Hubble and comoving distances on the
	// evolution's grid.
	DH0, DC0 []float64
}

// NewHubbleDistanceModel tabulates the reference DH(z) on the evolution's
// grid and integrates it once to find the reference DC(z).
func NewHubbleDistanceModel(
	evol Evolution, opts ...Option,
) (*HubbleDistanceModel, error) {
	p := &modelParams{model: cosmo.Fiducial()}
	for _, opt := range opts {
		opt(p)
	}

	zs := evol.ZValues()
	if err := CheckGrid(zs); err != nil {
		return nil, err
	}

	dh0 := p.model.HubbleDistance(zs)
	dc, err := evol.DC(mat.NewDense(1, len(zs), dh0))
	if err != nil {
		return nil, fmt.Errorf("reference comoving distance: %w", err)
	}
	if r, c := dc.Dims(); r != 1 || c != len(zs) {
		return nil, fmt.Errorf("%w: evolution returned DC with shape "+
			"(%d, %d) for a single DH of length %d", ErrShape, r, c, len(zs))
	}
	dc0 := mat.Row(nil, 0, dc)

	logging.Logger().Debug("built Hubble distance model",
		zap.Int("steps", len(zs)),
		zap.Float64("zmax", zs[len(zs)-1]),
		zap.Float64("DH0(0)", dh0[0]),
		zap.Float64("DC0(zmax)", dc0[len(dc0)-1]),
	)

	return &HubbleDistanceModel{evol: evol, zs: zs, DH0: dh0, DC0: dc0}, nil
}

// ZValues returns the redshift grid of the underlying evolution.
func (m *HubbleDistanceModel) ZValues() []float64 { return m.zs }

// DH builds expansion histories from Gaussian process samples. Each row
// gamma(z) of samples, shape (samples, steps), generates the Hubble distance
// function DH(z) = DH0(z) exp(gamma(z)).
func (m *HubbleDistanceModel) DH(samples mat.Matrix) (*mat.Dense, error) {
	r, c := samples.Dims()
	if r == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrShape)
	} else if c != len(m.DH0) {
		return nil, fmt.Errorf("%w: samples have %d steps but the redshift "+
			"grid has %d", ErrShape, c, len(m.DH0))
	}

	dh := mat.NewDense(r, c, nil)
	dh.Apply(func(i, j int, gamma float64) float64 {
		return m.DH0[j] * math.Exp(gamma)
	}, samples)
	return dh, nil
}

// DistanceFunctions reconstructs DH(z) for every sample, integrates it into
// DC(z) with the evolution, and applies curvature omegaK to get DA(z).
func (m *HubbleDistanceModel) DistanceFunctions(
	samples mat.Matrix, omegaK float64,
) (dh, da *mat.Dense, err error) {
	dh, err = m.DH(samples)
	if err != nil {
		return nil, nil, err
	}
	dc, err := m.evol.DC(dh)
	if err != nil {
		return nil, nil, fmt.Errorf("comoving distance: %w", err)
	}
	da, err = ApplyCurvature(dh, dc, omegaK)
	if err != nil {
		return nil, nil, err
	}
	return dh, da, nil
}

// CheckGrid reports whether zs is a usable redshift grid: non-empty,
// starting at exactly z = 0 and strictly increasing.
func CheckGrid(zs []float64) error {
	if len(zs) == 0 {
		return fmt.Errorf("%w: empty", ErrGrid)
	} else if zs[0] != 0 {
		return fmt.Errorf("%w: first redshift is %g, not 0", ErrGrid, zs[0])
	}
	for i := 1; i < len(zs); i++ {
		if !(zs[i] > zs[i-1]) {
			return fmt.Errorf("%w: z[%d] = %g does not exceed z[%d] = %g",
				ErrGrid, i, zs[i], i-1, zs[i-1])
		}
	}
	return nil
}
