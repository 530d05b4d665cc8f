// Package module wires labeling into the API using modkit
package module

import (
	"context"
	"net/http"

	"labelit/internal/adapters/corpus"
	modkit "labelit/internal/modkit"
	"labelit/internal/modkit/httpkit"
	str "labelit/internal/platform/strings"
	"labelit/internal/services/api/labeling/domain"
	labelhttp "labelit/internal/services/api/labeling/http"
	labelrepo "labelit/internal/services/api/labeling/repo"
	labelsvc "labelit/internal/services/api/labeling/service"
)

// Module implements the labeling module
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	mount  modkit.MountFunc
	ports  any

	svc *labelsvc.Svc
}

// New constructs the labeling module, Start must run before serving
func New(deps modkit.Deps, opts Options, mopts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("labeling"), modkit.WithPrefix("/labeling")}, mopts...)...)

	var src domain.CorpusPort
	if p, ok := b.Ports.(Ports); ok && p.Corpus != nil {
		src = p.Corpus
	} else {
		f := corpus.NewCachedFetcher(opts.BaseURL, opts.CacheDir, corpus.WithTimeout(opts.HTTPTimeout))
		src = corpus.NewLoader(f)
	}

	svc := labelsvc.New(deps.SQL, labelrepo.NewSQLite(), src, labelsvc.Options{
		SampleFile:    opts.SampleFile,
		LabelFile:     opts.LabelFile,
		ExportDir:     opts.ExportDir,
		ExportTimeout: opts.ExportTimeout,
	})

	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		mount:  b.Chain(func(r httpkit.Router) { labelhttp.Register(r, svc) }),
		ports:  adaptLabelingPort{svc: svc},
		svc:    svc,
	}
}

// Start loads the corpus and opens the session
func (m *Module) Start(ctx context.Context) error { return m.svc.Start(ctx) }

// SessionID returns the running session id for the session middleware
func (m *Module) SessionID() string { return m.svc.SessionID() }

// MountRoutes mounts the module JSON routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) { httpkit.MountUnder(r, m.prefix, m.mws, m.mount) }

// MountPages mounts the annotator pages at the router root
func (m *Module) MountPages(r httpkit.Router) {
	r.Group(func(rr httpkit.Router) {
		if len(m.mws) > 0 {
			rr.Use(m.mws...)
		}
		labelhttp.RegisterPages(rr, m.svc)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
