package cosmo

import (
	"fmt"

	"github.com/phil-mansfield/gphist/parse"
	"github.com/phil-mansfield/gphist/version"
)

// ExampleConfig returns the text of a config file which reproduces the
// fiducial model.
func ExampleConfig() string {
	p := FiducialParams()
	return fmt.Sprintf(`[cosmology]

# Version of gphist this file was written for.
Version = %s

# H0 / (100 km/s/Mpc).
H100 = %.4f

# Omega_cdm + Omega_b today. Massive neutrinos are not included.
OmegaM = %.10f

# CMB temperature today in K.
TCMB = %.4f

# Effective number of neutrino species.
NEff = %.3f

# Masses of the three neutrino species in eV.
MNu = %g, %g, %g
`, version.SourceVersion, p.H100, p.OmegaM, p.TCMB, p.NEff,
		p.MNu[0], p.MNu[1], p.MNu[2])
}

// ReadConfig reads a [cosmology] config file. Variables which are not set
// keep their fiducial values.
func ReadConfig(fname string) (Model, error) {
	p, vars, ver, mnu := configVars()
	if err := parse.ReadConfig(fname, vars); err != nil {
		return Model{}, err
	}
	return configModel(fname, p, *ver, *mnu)
}

// ReadConfigString is ReadConfig for config text already in memory.
func ReadConfigString(text string) (Model, error) {
	p, vars, ver, mnu := configVars()
	if err := parse.ReadConfigString("<string>", text, vars); err != nil {
		return Model{}, err
	}
	return configModel("<string>", p, *ver, *mnu)
}

func configVars() (*Params, *parse.ConfigVars, *string, *[]float64) {
	def := FiducialParams()
	p := &Params{}
	ver, mnu := new(string), new([]float64)

	vars := parse.NewConfigVars("cosmology")
	vars.String(ver, "Version", version.SourceVersion)
	vars.Float(&p.H100, "H100", def.H100)
	vars.Float(&p.OmegaM, "OmegaM", def.OmegaM)
	vars.Float(&p.TCMB, "TCMB", def.TCMB)
	vars.Float(&p.NEff, "NEff", def.NEff)
	vars.Floats(mnu, "MNu", def.MNu[:])
	return p, vars, ver, mnu
}

func configModel(
	source string, p *Params, ver string, mnu []float64,
) (Model, error) {
	if err := version.Compatible(ver); err != nil {
		return Model{}, fmt.Errorf("I couldn't use the 'Version' variable "+
			"in %s: %w", source, err)
	}
	if len(mnu) != len(p.MNu) {
		return Model{}, fmt.Errorf("%w: the 'MNu' variable in %s has %d "+
			"masses, but %d neutrino species are modeled", ErrParams,
			source, len(mnu), len(p.MNu))
	}
	copy(p.MNu[:], mnu)
	return NewModel(*p)
}
