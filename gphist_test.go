package gphist

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/gphist/cosmo"
	"github.com/phil-mansfield/gphist/density"
	"github.com/phil-mansfield/gphist/distance"
	"github.com/phil-mansfield/gphist/evol"
	"github.com/phil-mansfield/gphist/logging"
	"github.com/phil-mansfield/gphist/math/rand"
)

func TestAnalyzeFiducial(t *testing.T) {
	const zMax = 3.0
	grid, err := evol.NewLinear(zMax, 301)
	require.NoError(t, err)
	zs := grid.ZValues()

	res, err := Analyze(grid, mat.NewDense(4, len(zs), nil), 0,
		WithLevels(0.68))
	require.NoError(t, err)

	fid := cosmo.Fiducial()
	assert.Equal(t, zs, res.Z)
	assert.Equal(t, fid.HubbleDistance(zs), res.DH.RawRowView(3))
	assert.InEpsilon(t, 4471.844540572792, res.DH.At(0, 0), 1e-9)

	// Flat, so DA is the comoving distance.
	ref, err := distance.NewHubbleDistanceModel(grid)
	require.NoError(t, err)
	assert.InDeltaSlice(t, ref.DC0, res.DA.RawRowView(0), 1e-9)

	// Identical samples give a degenerate band.
	band := res.DarkEnergySummary.Bands[0]
	assert.Equal(t, res.DarkEnergySummary.Median, band.Lo)
	assert.Equal(t, res.DarkEnergySummary.Median, band.Hi)

	// With matter inferred at zMax the left over dark energy is
	// rho ~ 1 - x^3/C for x = 1 + z and C = (1 + zMax)^3, so
	// w = -1 - x^3 / (C - x^3).
	c := math.Pow(1+zMax, 3)
	for j := 1; j < len(zs)/2; j++ {
		x3 := math.Pow(1+zs[j], 3)
		assert.InDelta(t, -1-x3/(c-x3), res.W[j], 1e-3, "z = %g", zs[j])
	}

	m := res.Matter.At(0, 0)
	assert.InEpsilon(t, fid.OmegaM0()+fid.OmegaL0()/c, m, 1e-9)
}

func TestAnalyzeCurvedEnsemble(t *testing.T) {
	grid, err := evol.NewLogScale(5, 60)
	require.NoError(t, err)
	n := len(grid.ZValues())
	gamma := rand.New(rand.Xorshift, 7).NormalDense(50, n, 0, 0.02)

	flat, err := Analyze(grid, gamma, 0)
	require.NoError(t, err)
	closed, err := Analyze(grid, gamma, -0.1)
	require.NoError(t, err)

	r, c := closed.DA.Dims()
	assert.Equal(t, 50, r)
	assert.Equal(t, n, c)
	for i := 0; i < r; i++ {
		assert.Less(t, closed.DA.At(i, n-1), flat.DA.At(i, n-1))
	}
	// Curvature only touches DA.
	assert.True(t, mat.Equal(flat.DH, closed.DH))
	// Dark energy vanishes at the last redshift, so w can be NaN there.
	assert.Len(t, flat.W, n)
	if diff := cmp.Diff(flat.W, closed.W, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("w(z) depends on curvature (-flat +closed):\n%s", diff)
	}
	assert.Empty(t, flat.DarkEnergySummary.Bands)
}

func TestAnalyzeNormalizationsAgree(t *testing.T) {
	grid, err := evol.NewLinear(2, 50)
	require.NoError(t, err)
	gamma := mat.NewDense(1, 50, nil)

	a, err := Analyze(grid, gamma, 0)
	require.NoError(t, err)
	b, err := Analyze(grid, gamma, 0,
		WithNormalization(density.DarkEnergyToday))
	require.NoError(t, err)

	// A single sample has no median ambiguity, and w ignores constant
	// factors.
	for j := 0; j < len(a.W)-2; j++ {
		assert.InDelta(t, a.W[j], b.W[j], 1e-9)
	}
	assert.InDelta(t, 1, b.DarkEnergySummary.Median[0], 1e-14)
}

func TestAnalyzeErrors(t *testing.T) {
	grid, err := evol.NewLinear(1, 10)
	require.NoError(t, err)

	_, err = Analyze(grid, mat.NewDense(3, 9, nil), 0)
	assert.ErrorIs(t, err, distance.ErrShape)

	_, err = Analyze(grid, mat.NewDense(3, 10, nil), 0, WithLevels(1.5))
	assert.Error(t, err)

	_, err = Analyze(grid, mat.NewDense(3, 10, nil), 0,
		WithNormalization(density.Normalization(-1)))
	assert.Error(t, err)
}

func TestAnalyzeWithModel(t *testing.T) {
	m, err := cosmo.NewModel(cosmo.Params{
		H100: 0.7, OmegaM: 0.3, TCMB: 2.7255, NEff: 3.046,
	})
	require.NoError(t, err)
	grid, err := evol.NewLinear(2, 20)
	require.NoError(t, err)

	res, err := Analyze(grid, mat.NewDense(1, 20, nil), 0, WithModel(m))
	require.NoError(t, err)
	assert.InEpsilon(t, cosmo.CKms/70, res.DH.At(0, 0), 1e-12)
}

func TestAnalyzeLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logging.SetLogger(zap.New(core))
	defer logging.SetLogger(nil)

	grid, err := evol.NewLinear(1, 5)
	require.NoError(t, err)
	_, err = Analyze(grid, mat.NewDense(2, 5, nil), 0)
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("reconstructed distances").Len())
	assert.Equal(t, 1, logs.FilterMessage("estimated equation of state").Len())
}
