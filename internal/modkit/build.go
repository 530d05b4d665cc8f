package modkit

import "labelit/internal/modkit/httpkit"

// Built is the resolved option set a module constructor reads from
type Built struct {
	Name     string
	Prefix   string
	Mw       Middlewares
	Ports    any
	Register func(httpkit.Router)
}

// Build applies opts in order, later options win
// Mw is copied so callers may reuse their slice
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		if o != nil {
			o(&b)
		}
	}
	b.Mw = append(Middlewares(nil), b.Mw...)
	return b
}

// Chain returns a MountFunc running own then the optional extra registration
func (b Built) Chain(own MountFunc) MountFunc {
	extra := b.Register
	return func(r httpkit.Router) {
		own(r)
		if extra != nil {
			extra(r)
		}
	}
}
