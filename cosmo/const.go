package cosmo

// Physical constants, CODATA 2018 and IAU 2015 nominal values.
const (
	// CMks is the speed of light in m/s.
	CMks = 299792458.0
	// CKms is the speed of light in km/s.
	CKms = CMks / 1000
	GMks = 6.67430e-11
	// StefanBoltzmannMks is sigma_SB in W m^-2 K^-4.
	StefanBoltzmannMks = 5.670374419e-8
	// BoltzmannEV is k_B in eV/K.
	BoltzmannEV = 8.617333262e-5
	MpcMks      = 3.0856775814913673e22
	MSunMks     = 1.988409870698051e30

	// Tnu0 = (4/11)^(1/3) Tcmb0 for instantaneous neutrino decoupling.
	tnuRatio = 0.7137658555036082
	// 7/8 (4/11)^(4/3): per-species neutrino to photon density ratio.
	nuPrefactor = 0.22710731766

	// Fitting function for massive neutrinos (Komatsu et al. 2011, §3.3).
	nuP    = 1.83
	nuInvP = 0.54644808743
	nuK    = 0.3173
)
