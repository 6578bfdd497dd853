package cosmo

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func almostEq(x, y, eps float64) bool {
	return math.Abs(x-y) <= eps*math.Max(math.Abs(x), math.Abs(y))
}

var testZs = []float64{0, 0.1, 0.5, 1, 2, 3, 10, 1100}

func TestFiducialIsDeterministic(t *testing.T) {
	m1, m2 := Fiducial(), Fiducial()
	assert.True(t, m1 == m2)

	dh1, dh2 := m1.HubbleDistance(testZs), m2.HubbleDistance(testZs)
	assert.Equal(t, dh1, dh2)
	assert.Equal(t, m1.RadiationFraction(testZs), m2.RadiationFraction(testZs))
}

func TestFiducialParams(t *testing.T) {
	p := FiducialParams()
	assert.Equal(t, 0.6704, p.H100)
	assert.Equal(t, 2.7255, p.TCMB)
	assert.Equal(t, 3.046, p.NEff)
	assert.Equal(t, [3]float64{0, 0, 0.06}, p.MNu)
	assert.InDelta(t, 0.3183-0.06/93.04/(0.6704*0.6704), p.OmegaM, 1e-15)
}

func TestFlatness(t *testing.T) {
	m := Fiducial()
	sum := m.OmegaM0() + m.OmegaGamma0() + m.OmegaNu0() + m.OmegaL0()
	assert.InDelta(t, 1.0, sum, 1e-14)
	assert.InDelta(t, 1.0, m.E(0), 1e-14)
}

func TestPresentDayDensities(t *testing.T) {
	m := Fiducial()
	h2 := m.H100() * m.H100()

	// a_B T^4 / rho_crit for T = 2.7255 K.
	if og := m.OmegaGamma0() * h2; !almostEq(og, 2.472975e-5, 1e-5) {
		t.Errorf("Expected Omega_gamma h^2 = 2.472975e-5, got %g.", og)
	}
	// A non-relativistic neutrino has omega_nu ~ m_nu / 93 eV.
	if on := m.OmegaNu0() * h2; !almostEq(on, 0.06/93.04, 0.05) {
		t.Errorf("Expected Omega_nu h^2 near %g, got %g.", 0.06/93.04, on)
	}
}

func TestNuRelativeDensityLimits(t *testing.T) {
	m := Fiducial()
	// Every species is relativistic at very high redshift.
	assert.InDelta(t, nuPrefactor*3.046, m.NuRelativeDensity(1e9), 1e-6)

	massless, err := NewModel(Params{H100: 0.7, OmegaM: 0.3, TCMB: 2.7255,
		NEff: 3.046})
	require.NoError(t, err)
	for _, z := range testZs {
		assert.InEpsilon(t, nuPrefactor*3.046, massless.NuRelativeDensity(z), 1e-14)
	}
}

func TestHubbleDistance(t *testing.T) {
	m := Fiducial()
	dh := m.HubbleDistance(testZs)
	require.Len(t, dh, len(testZs))

	if !almostEq(dh[0], 4471.844540572792, 1e-12) {
		t.Errorf("Expected DH(0) = c/H0 = 4471.8445 Mpc, got %g.", dh[0])
	}
	for i := 1; i < len(dh); i++ {
		if dh[i] >= dh[i-1] {
			t.Errorf("DH(z) not decreasing: DH(%g) = %g, DH(%g) = %g.",
				testZs[i-1], dh[i-1], testZs[i], dh[i])
		}
	}

	out := make([]float64, len(testZs))
	res := m.HubbleDistance(testZs, out)
	assert.Equal(t, dh, res)
	assert.Same(t, &out[0], &res[0], "output buffer must be used")

	assert.Panics(t, func() { m.HubbleDistance(testZs, make([]float64, 2)) })
}

func TestHubbleDistanceMatchesMatterLambda(t *testing.T) {
	p := Params{H100: 0.7, OmegaM: 0.3, TCMB: 0, NEff: 3.046}
	m, err := NewModel(p)
	require.NoError(t, err)

	dh := m.HubbleDistance(testZs)
	for i, z := range testZs {
		want := CKms / 70 / HubbleFrac(0.3, 0.7, z)
		assert.InEpsilon(t, want, dh[i], 1e-12, "z = %g", z)
	}
}

func TestRadiationFraction(t *testing.T) {
	m := Fiducial()
	h2 := m.H100() * m.H100()
	got := m.RadiationFraction(testZs)

	want := make([]float64, len(testZs))
	for i, z := range testZs {
		zp1 := 1 + z
		want[i] = m.OmegaGamma0() * zp1 * zp1 * zp1 * zp1 *
			(1 + m.NuRelativeDensity(z)) * h2
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(1e-12, 0)); diff != "" {
		t.Errorf("RadiationFraction mismatch (-want +got):\n%s", diff)
	}

	noCMB, err := NewModel(Params{H100: 0.7, OmegaM: 0.3})
	require.NoError(t, err)
	for _, r := range noCMB.RadiationFraction(testZs) {
		assert.Zero(t, r)
	}
}

func TestCriticalDensity(t *testing.T) {
	m := Fiducial()
	h := m.H100()
	// rho_crit,0 = 2.775e11 h^2 M_sun / Mpc^3.
	assert.InEpsilon(t, 2.775e11*h*h, m.CriticalDensity(0), 1e-3)
	for _, z := range testZs {
		e := m.E(z)
		assert.InEpsilon(t, e*e, m.CriticalDensity(z)/m.CriticalDensity(0),
			1e-12)
	}
}

func TestNewModelErrors(t *testing.T) {
	good := FiducialParams()
	table := []struct {
		name string
		edit func(p *Params)
	}{
		{"zero h", func(p *Params) { p.H100 = 0 }},
		{"nan h", func(p *Params) { p.H100 = math.NaN() }},
		{"negative OmegaM", func(p *Params) { p.OmegaM = -0.1 }},
		{"OmegaM above one", func(p *Params) { p.OmegaM = 1.5 }},
		{"negative TCMB", func(p *Params) { p.TCMB = -1 }},
		{"negative NEff", func(p *Params) { p.NEff = -3 }},
		{"negative mass", func(p *Params) { p.MNu[1] = -0.01 }},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			p := good
			tc.edit(&p)
			_, err := NewModel(p)
			assert.ErrorIs(t, err, ErrParams)
		})
	}
}

func TestModelIsValue(t *testing.T) {
	m := Fiducial()
	p := m.Params()
	p.H100 = 1
	assert.Equal(t, 0.6704, m.H100(), "Params must return a copy")
}
