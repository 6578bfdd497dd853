// Package cosmo contains the homogeneous background cosmology used as the
// reference expansion history for the rest of gphist.
package cosmo

import (
	"fmt"
	"math"
)

// Params is a flat LCDM parameter set. OmegaM is baryons plus cold dark
// matter only: massive neutrinos are tracked separately through MNu.
type Params struct {
	H100   float64    // H0 / (100 km/s/Mpc)
	OmegaM float64    // Omega_cdm + Omega_b at z = 0
	TCMB   float64    // K
	NEff   float64    // effective number of neutrino species
	MNu    [3]float64 // eV
}

// FiducialParams returns the Planck+WP flat LCDM best fit (Ade et al. 2013,
// Table 2, column 6). Planck counts the massive neutrino in Om0 = 0.3183, so
// its density is removed from OmegaM here.
func FiducialParams() Params {
	h, mnu := 0.6704, 0.06
	omegaNu := (mnu / 93.04) / (h * h)
	return Params{
		H100:   h,
		OmegaM: 0.3183 - omegaNu,
		TCMB:   2.7255,
		NEff:   3.046,
		MNu:    [3]float64{0, 0, mnu},
	}
}

// Model is an immutable flat FLRW cosmology. The zero value is not usable;
// construct one with NewModel or Fiducial. Models are comparable with == and
// safe for concurrent use.
type Model struct {
	p Params

	omegaGamma0, omegaNu0, omegaL0 float64
	// nuY[:nMassive] holds m_nu / (k_B Tnu0) for every massive species.
	nuY       [3]float64
	nMassive  int
	nMassless int
	neffPerNu float64
}

// Fiducial returns the reference model built from FiducialParams. Every call
// returns an identical value.
func Fiducial() Model {
	m, err := NewModel(FiducialParams())
	if err != nil {
		panic(fmt.Sprintf("fiducial parameters rejected: %s", err.Error()))
	}
	return m
}

// NewModel validates p and caches the derived present-day densities.
func NewModel(p Params) (Model, error) {
	switch {
	case !(p.H100 > 0):
		return Model{}, fmt.Errorf("%w: H100 = %g must be positive",
			ErrParams, p.H100)
	case p.OmegaM < 0 || p.OmegaM > 1:
		return Model{}, fmt.Errorf("%w: OmegaM = %g is outside [0, 1]",
			ErrParams, p.OmegaM)
	case p.TCMB < 0:
		return Model{}, fmt.Errorf("%w: TCMB = %g is negative",
			ErrParams, p.TCMB)
	case p.NEff < 0:
		return Model{}, fmt.Errorf("%w: NEff = %g is negative",
			ErrParams, p.NEff)
	}
	for i, m := range p.MNu {
		if m < 0 {
			return Model{}, fmt.Errorf("%w: MNu[%d] = %g is negative",
				ErrParams, i, m)
		}
	}

	m := Model{p: p, neffPerNu: p.NEff / float64(len(p.MNu))}

	if p.TCMB > 0 {
		// a_B T^4 / c^2 over rho_crit,0.
		aBc2 := 4 * StefanBoltzmannMks / (CMks * CMks * CMks)
		m.omegaGamma0 = aBc2 * math.Pow(p.TCMB, 4) / rhoCriticalMks(p.H100)

		tnu0 := tnuRatio * p.TCMB
		for _, mass := range p.MNu {
			if mass > 0 {
				m.nuY[m.nMassive] = mass / (BoltzmannEV * tnu0)
				m.nMassive++
			} else {
				m.nMassless++
			}
		}
		m.omegaNu0 = m.omegaGamma0 * m.NuRelativeDensity(0)
	}

	m.omegaL0 = 1 - p.OmegaM - m.omegaGamma0 - m.omegaNu0
	return m, nil
}

// Params returns a copy of the parameters the model was built from.
func (m Model) Params() Params { return m.p }

// H100 returns h = H0 / (100 km/s/Mpc).
func (m Model) H100() float64 { return m.p.H100 }

// H0 returns the Hubble constant in km/s/Mpc.
func (m Model) H0() float64 { return 100 * m.p.H100 }

func (m Model) OmegaM0() float64     { return m.p.OmegaM }
func (m Model) OmegaGamma0() float64 { return m.omegaGamma0 }
func (m Model) OmegaNu0() float64    { return m.omegaNu0 }
func (m Model) OmegaL0() float64     { return m.omegaL0 }

// NuRelativeDensity returns the neutrino energy density relative to the
// photon density at z, treating massive species with the WMAP7 fitting
// function.
func (m Model) NuRelativeDensity(z float64) float64 {
	if m.nMassive == 0 {
		return nuPrefactor * m.p.NEff
	}
	rel := float64(m.nMassless)
	for _, y := range m.nuY[:m.nMassive] {
		curr := nuK * y / (1 + z)
		rel += math.Pow(1+math.Pow(curr, nuP), nuInvP)
	}
	return nuPrefactor * m.neffPerNu * rel
}

// E returns H(z)/H0.
func (m Model) E(z float64) float64 {
	zp1 := 1 + z
	omegaR := m.omegaGamma0 * (1 + m.NuRelativeDensity(z))
	return math.Sqrt(zp1*zp1*zp1*(omegaR*zp1+m.p.OmegaM) + m.omegaL0)
}

// OmegaGamma returns the photon density relative to the critical density at z.
func (m Model) OmegaGamma(z float64) float64 {
	zp1, e := 1+z, m.E(z)
	return m.omegaGamma0 * zp1 * zp1 * zp1 * zp1 / (e * e)
}

// OmegaNu returns the neutrino density relative to the critical density at z.
func (m Model) OmegaNu(z float64) float64 {
	return m.OmegaGamma(z) * m.NuRelativeDensity(z)
}

// HubbleDistance evaluates DH(z) = c/H(z) in Mpc at every redshift in zs. An
// optional output slice of the same length can be supplied.
func (m Model) HubbleDistance(zs []float64, out ...[]float64) []float64 {
	res := outBuffer(len(zs), out)
	dh0 := CKms / m.H0()
	for i, z := range zs {
		res[i] = dh0 / m.E(z)
	}
	return res
}

// RadiationFraction evaluates the physical photon plus neutrino density
// omega_r(z) = (Omega_gamma(z) + Omega_nu(z)) h0^2, rescaled from the
// critical density at z to the critical density today.
func (m Model) RadiationFraction(zs []float64, out ...[]float64) []float64 {
	res := outBuffer(len(zs), out)
	rho0 := m.CriticalDensity(0)
	h2 := m.p.H100 * m.p.H100
	for i, z := range zs {
		rescale := m.CriticalDensity(z) / rho0
		res[i] = rescale * (m.OmegaGamma(z) + m.OmegaNu(z)) * h2
	}
	return res
}

// CriticalDensity returns the critical density at z in M_sun / Mpc^3.
func (m Model) CriticalDensity(z float64) float64 {
	e := m.E(z)
	return rhoCriticalMks(m.p.H100) * e * e * math.Pow(MpcMks, 3) / MSunMks
}

// HubbleFrac calculates h(z) = H(z)/H0 for a matter plus cosmological
// constant universe, ignoring radiation and curvature.
func HubbleFrac(omegaM, omegaL, z float64) float64 {
	return math.Sqrt(omegaM*math.Pow(1.0+z, 3.0) + omegaL)
}

// rhoCriticalMks is 3 H0^2 / (8 pi G) in kg/m^3.
func rhoCriticalMks(h100 float64) float64 {
	H0Mks := (100 * h100 * 1000) / MpcMks
	return 3.0 * H0Mks * H0Mks / (8.0 * math.Pi * GMks)
}

func outBuffer(n int, out [][]float64) []float64 {
	if len(out) == 0 {
		return make([]float64, n)
	}
	if len(out[0]) != n {
		panic(fmt.Sprintf("Output buffer has length %d, expected %d.",
			len(out[0]), n))
	}
	return out[0]
}
