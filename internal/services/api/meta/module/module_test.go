package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"labelit/internal/core/annotate"
	modkit "labelit/internal/modkit"
	"labelit/internal/modkit/module"
	phttp "labelit/internal/platform/net/http"
	labelingdom "labelit/internal/services/api/labeling/domain"

	"github.com/go-chi/chi/v5"
)

type phaseSvc struct{ phase string }

func (s phaseSvc) SessionID() string { return "s1" }
func (s phaseSvc) Session(context.Context) (labelingdom.SessionView, error) {
	return labelingdom.SessionView{Phase: s.phase}, nil
}
func (s phaseSvc) Submit(context.Context, labelingdom.SubmitInput) (labelingdom.SessionView, error) {
	return labelingdom.SessionView{}, nil
}
func (s phaseSvc) Done(context.Context) (labelingdom.SessionView, error) {
	return labelingdom.SessionView{}, nil
}
func (s phaseSvc) Annotations(context.Context) ([]annotate.Annotation, error) { return nil, nil }
func (s phaseSvc) Artifact(context.Context, string) (labelingdom.Artifact, error) {
	return labelingdom.Artifact{}, nil
}

func readyStatus(t *testing.T, m modkit.Module) map[string]string {
	t.Helper()
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ready = %d %s", rec.Code, rec.Body)
	}
	var env struct {
		Data struct {
			Checks []struct{ Name, Status string } `json:"checks"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	out := map[string]string{}
	for _, c := range env.Data.Checks {
		out[c.Name] = c.Status
	}
	return out
}

// the registry is process wide so these cases run in sequence
func TestModule_SessionCheckFollowsRegistry(t *testing.T) {
	module.Reset()
	t.Cleanup(module.Reset)

	m := New(modkit.Deps{})
	if m.Name() != "meta" || m.Prefix() != "/meta" || m.Ports() != nil {
		t.Fatalf("module = %s %s", m.Name(), m.Prefix())
	}

	if got := readyStatus(t, m)["session"]; got != "skipped" {
		t.Fatalf("unregistered session = %s", got)
	}

	module.Register("labeling", phaseSvc{phase: "ACTIVE"})
	if got := readyStatus(t, m)["session"]; got != "ok" {
		t.Fatalf("active session = %s", got)
	}

	module.Register("labeling", phaseSvc{phase: "FAILED"})
	if got := readyStatus(t, m)["session"]; got != "fail" {
		t.Fatalf("failed session = %s", got)
	}
}

func TestModule_PrefixOption(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{}, modkit.WithPrefix("/status"))
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status/version", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("version under custom prefix = %d", rec.Code)
	}
}
