package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type chiRouter struct{ r chi.Router }

// AdaptChi exposes a chi mux through the Router seam
func AdaptChi(m *chi.Mux) Router { return chiRouter{r: m} }

func (c chiRouter) Get(p string, h Handler)  { c.r.Get(p, h) }
func (c chiRouter) Post(p string, h Handler) { c.r.Post(p, h) }

func (c chiRouter) Handle(p string, h http.Handler) { c.r.Handle(p, h) }

func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(g chi.Router) { fn(chiRouter{r: g}) })
}

func (c chiRouter) Route(prefix string, fn func(Router)) {
	c.r.Route(prefix, func(s chi.Router) { fn(chiRouter{r: s}) })
}

func (c chiRouter) Mux() http.Handler { return c.r }
