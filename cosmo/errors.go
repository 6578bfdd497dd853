package cosmo

import "errors"

// ErrParams is returned when a parameter set cannot describe a physical
// flat FLRW model.
var ErrParams = errors.New("cosmo: invalid cosmological parameters")
