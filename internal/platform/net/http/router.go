package http

import "net/http"

// Handler is the function shape every route takes
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing seam services mount on, chi sits behind it
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(pattern string, h http.Handler)

	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(prefix string, fn func(Router))

	Mux() http.Handler
}
