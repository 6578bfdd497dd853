// Package gphist turns Gaussian process samples of the cosmic expansion
// history into distances, density histories and a dark energy equation of
// state.
//
// Samples are log-space perturbations gamma(z) of a reference Hubble distance,
// tabulated on the redshift grid of an Evolution. Analyze runs the full chain:
//
//	grid, _ := evol.NewLogScale(1100, 500)
//	res, err := gphist.Analyze(grid, gammas, 0)
//
// after which res.DH and res.DA hold the reconstructed distances and res.W the
// equation of state of the median dark energy trajectory.
package gphist

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/gphist/cosmo"
	"github.com/phil-mansfield/gphist/density"
	"github.com/phil-mansfield/gphist/distance"
	"github.com/phil-mansfield/gphist/ensemble"
	"github.com/phil-mansfield/gphist/logging"
)

type config struct {
	model  cosmo.Model
	norm   density.Normalization
	levels []float64
}

// Option configures Analyze.
type Option func(*config)

// WithModel sets the reference cosmology used both for the fiducial DH(z)
// and for radiation densities. The default is cosmo.Fiducial().
func WithModel(m cosmo.Model) Option {
	return func(c *config) { c.model = m }
}

// WithNormalization chooses the dark energy normalization whose median is
// handed to the equation of state estimator. The default is
// density.CriticalToday. The choice does not change w(z) except through the
// median, since w only depends on logarithmic derivatives.
func WithNormalization(n density.Normalization) Option {
	return func(c *config) { c.norm = n }
}

// WithLevels requests confidence bands on the dark energy density at the
// given levels, e.g. 0.68 and 0.95.
func WithLevels(levels ...float64) Option {
	return func(c *config) { c.levels = levels }
}

// Result holds every product of Analyze. Matrices have one row per sample
// and one column per redshift in Z.
type Result struct {
	Z []float64
	// DH and DA are the Hubble and angular diameter distances in Mpc.
	DH, DA *mat.Dense
	// Matter is Omega_m(z) relative to the critical density at z.
	Matter *mat.Dense
	// DarkEnergy[0] is Omega_phi(z) h0^2 / h0^2 and DarkEnergy[1] is
	// Omega_phi(z) h0^2 / h(z)^2.
	DarkEnergy [2]*mat.Dense

	// DarkEnergySummary is the median and requested bands of the dark
	// energy density in the chosen normalization.
	DarkEnergySummary *ensemble.Summary
	// W is the equation of state of the median dark energy trajectory.
	W []float64
}

// Analyze reconstructs DH(z) = DH0(z) exp(gamma(z)) for every row of
// samples, computes DA(z) for curvature omegaK, decomposes the expansion
// histories into matter, radiation and dark energy, and estimates w(z) from
// the median dark energy trajectory.
func Analyze(
	evol distance.Evolution, samples mat.Matrix, omegaK float64,
	opts ...Option,
) (*Result, error) {
	c := &config{model: cosmo.Fiducial(), norm: density.CriticalToday}
	for _, opt := range opts {
		opt(c)
	}
	densityOpts := []density.Option{density.WithModel(c.model)}

	var t time.Time
	if logging.Mode == logging.Performance {
		t = time.Now()
	}
	log := logging.Logger()

	model, err := distance.NewHubbleDistanceModel(
		evol, distance.WithModel(c.model),
	)
	if err != nil {
		return nil, fmt.Errorf("building distance model: %w", err)
	}
	res := &Result{Z: model.ZValues()}

	res.DH, res.DA, err = model.DistanceFunctions(samples, omegaK)
	if err != nil {
		return nil, fmt.Errorf("reconstructing distances: %w", err)
	}
	nSamples, _ := res.DH.Dims()
	log.Debug("reconstructed distances",
		zap.Int("samples", nSamples), zap.Float64("omega_k", omegaK))
	logging.Perf("distances")

	res.Matter, err = density.MatterDensityEvolution(res.Z, res.DH, densityOpts...)
	if err != nil {
		return nil, fmt.Errorf("matter density: %w", err)
	}
	res.DarkEnergy, err = density.DarkEnergyEvolution(res.Z, res.DH, densityOpts...)
	if err != nil {
		return nil, fmt.Errorf("dark energy density: %w", err)
	}

	de := res.DarkEnergy[0]
	switch c.norm {
	case density.CriticalToday:
	case density.CriticalAtZ:
		de = res.DarkEnergy[1]
	default:
		de, err = density.DarkEnergyDensity(res.Z, res.DH, c.norm, densityOpts...)
		if err != nil {
			return nil, fmt.Errorf("dark energy density: %w", err)
		}
	}
	logging.Perf("densities")

	res.DarkEnergySummary, err = ensemble.Summarize(de, c.levels...)
	if err != nil {
		return nil, err
	}
	median := res.DarkEnergySummary.Median
	w, err := density.EquationOfState(res.Z, mat.NewDense(1, len(median), median))
	if err != nil {
		return nil, fmt.Errorf("equation of state: %w", err)
	}
	res.W = w.RawRowView(0)
	log.Debug("estimated equation of state",
		zap.Stringer("normalization", c.norm),
		zap.Float64("w(0)", res.W[0]))

	if logging.Mode == logging.Performance {
		log.Info("analysis finished", zap.Duration("time", time.Since(t)))
	}
	logging.Perf("equation of state")

	return res, nil
}
