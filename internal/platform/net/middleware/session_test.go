package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"labelit/internal/platform/net"
	"labelit/internal/platform/net/middleware"
)

type fixedSession string

func (f fixedSession) SessionID() string { return string(f) }

func TestSession_NilPortPassesThrough(t *testing.T) {
	var nextCalled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(200)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	middleware.Session(nil)(next).ServeHTTP(rr, req)

	if !nextCalled {
		t.Fatal("expected next to be called")
	}
	if rr.Header().Get(middleware.SessionHeader) != "" {
		t.Fatalf("unexpected session header %q", rr.Header().Get(middleware.SessionHeader))
	}
}

func TestSession_EmptyIDPassesThrough(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = net.SessionID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	middleware.Session(fixedSession(""))(next).ServeHTTP(rr, req)

	if seen != "" || rr.Header().Get(middleware.SessionHeader) != "" {
		t.Fatalf("empty id should not be stamped, ctx=%q header=%q", seen, rr.Header().Get(middleware.SessionHeader))
	}
}

func TestSession_StampsContextAndHeader(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = net.SessionID(r.Context())
		w.WriteHeader(200)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	middleware.Session(fixedSession("s1"))(next).ServeHTTP(rr, req)

	if seen != "s1" {
		t.Fatalf("expected session s1 on context got %q", seen)
	}
	if got := rr.Header().Get(middleware.SessionHeader); got != "s1" {
		t.Fatalf("expected header s1 got %q", got)
	}
}
