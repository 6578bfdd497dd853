// Package calc provides some basic calculus routines.
package calc

type derivParams struct {
	out       []float64
	edgeOrder int
}
type internalDerivOption func(*derivParams)
type DerivOption internalDerivOption

// Out supplies a call to Gradient with a slice to write derivatives to.
func Out(out []float64) DerivOption {
	return func(p *derivParams) { p.out = out }
}

// EdgeOrder sets the accuracy of the one-sided differences used at the two
// endpoints. Only 1 (the default) and 2 are supported.
func EdgeOrder(order int) DerivOption {
	return func(p *derivParams) { p.edgeOrder = order }
}

func (p *derivParams) loadOptions(opts []DerivOption) {
	p.edgeOrder = 1
	for _, opt := range opts {
		opt(p)
	}
}

// Gradient computes the numerical derivative dy/dx of a sequence of (x, y)
// points. The points do not need to be uniformly spaced, but xs must be
// strictly monotonic.
//
// Interior points use second order central differences for non-uniform
// spacing. The endpoints use one-sided differences of the order given by
// EdgeOrder. Derivatives of linear data are exact everywhere.
func Gradient(xs, ys []float64, opts ...DerivOption) []float64 {
	n := len(xs)

	p := new(derivParams)
	p.loadOptions(opts)
	out := p.out
	if out == nil {
		out = make([]float64, n)
	}

	if len(ys) != n {
		panic("Length of ys and xs are not the same.")
	} else if len(out) != n {
		panic("Length of out and xs are not the same.")
	} else if n < p.edgeOrder+1 {
		panic("Too few points for the requested edge order.")
	}

	for i := 1; i < n-1; i++ {
		hs, hd := xs[i]-xs[i-1], xs[i+1]-xs[i]
		out[i] = (hs*hs*ys[i+1] + (hd*hd-hs*hs)*ys[i] - hd*hd*ys[i-1]) /
			(hs * hd * (hd + hs))
	}

	switch p.edgeOrder {
	case 1:
		out[0] = (ys[1] - ys[0]) / (xs[1] - xs[0])
		out[n-1] = (ys[n-1] - ys[n-2]) / (xs[n-1] - xs[n-2])
	case 2:
		dx1, dx2 := xs[1]-xs[0], xs[2]-xs[1]
		a := -(2*dx1 + dx2) / (dx1 * (dx1 + dx2))
		b := (dx1 + dx2) / (dx1 * dx2)
		c := -dx1 / (dx2 * (dx1 + dx2))
		out[0] = a*ys[0] + b*ys[1] + c*ys[2]

		dx1, dx2 = xs[n-2]-xs[n-3], xs[n-1]-xs[n-2]
		a = dx2 / (dx1 * (dx1 + dx2))
		b = -(dx2 + dx1) / (dx1 * dx2)
		c = (2*dx2 + dx1) / (dx2 * (dx1 + dx2))
		out[n-1] = a*ys[n-3] + b*ys[n-2] + c*ys[n-1]
	default:
		panic("Invalid edge order.")
	}
	return out
}
