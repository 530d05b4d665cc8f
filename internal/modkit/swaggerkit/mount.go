// Package swaggerkit serves the api document and the swagger ui
package swaggerkit

import (
	"net/http"

	phttp "labelit/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const docsRoot = "/api/docs"

// Mount serves the ui under /api/docs and the document at /api/docs/doc.json
// nothing is mounted when enabled is false
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(docsRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsRoot+"/", http.StatusPermanentRedirect)
	})
	r.Get(docsRoot+"/doc.json", serveDocJSON())
	r.Handle(docsRoot+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("labelit"),
		httpSwagger.URL(docsRoot+"/doc.json"),
	))
}
