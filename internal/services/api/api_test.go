package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"labelit/internal/adapters/corpus"
	"labelit/internal/core/annotate"
	"labelit/internal/modkit/module"
	"labelit/internal/platform/config"
	"labelit/internal/platform/net/middleware"
	phttp "labelit/internal/platform/net/http"
	"labelit/internal/platform/store"
	"labelit/internal/platform/testkit"
)

type stubCorpus struct{ err error }

func (s stubCorpus) Load(context.Context, string, string) (corpus.Corpus, error) {
	return corpus.Corpus{
		Paragraphs: []annotate.Paragraph{{"1: hello"}, {"2: world"}},
		Labels:     annotate.LabelSet{"neg", "pos"},
	}, s.err
}

func (stubCorpus) Cleanup(string, string) error { return nil }

func mount(t *testing.T, c stubCorpus) (http.Handler, error) {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{SQLite: store.SQLiteConfig{
		Enabled: true,
		Path:    filepath.Join(t.TempDir(), "labelit.db"),
	}})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })

	t.Setenv("APIT_EXPORT_DIR", t.TempDir())
	cfg := config.New().Prefix("APIT_")
	srv := phttp.NewServer(cfg)
	err = Mount(ctx, srv.Router(), Options{Config: cfg, Store: st, EnableSwagger: true, Corpus: c})
	return srv.Router().Mux(), err
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMount_ServesPagesAPIAndMeta(t *testing.T) {
	module.Reset()
	t.Cleanup(module.Reset)

	h, err := mount(t, stubCorpus{})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}

	for _, path := range []string{"/", "/api/v1/labeling/session", "/api/v1/meta/version", "/api/docs/doc.json", "/health"} {
		if rec := get(h, path); rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d", path, rec.Code)
		}
	}

	rec := get(h, "/api/v1/labeling/session")
	if rec.Header().Get(middleware.SessionHeader) == "" {
		t.Fatalf("session header missing")
	}
	testkit.MustContain(t, rec.Body.String(), `"phase":"ACTIVE"`)

	rec = get(h, "/api/v1/meta/ready")
	var env struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode ready: %v", err)
	}
	if env.Data.Status != "ok" {
		t.Fatalf("ready = %s", rec.Body)
	}
}

func TestMount_CorpusFailureMountsNothing(t *testing.T) {
	module.Reset()
	t.Cleanup(module.Reset)

	h, err := mount(t, stubCorpus{err: context.DeadlineExceeded})
	if err == nil {
		t.Fatalf("expected corpus error")
	}
	if rec := get(h, "/"); rec.Code != http.StatusNotFound {
		t.Fatalf("pages mounted after failure: %d", rec.Code)
	}
}
