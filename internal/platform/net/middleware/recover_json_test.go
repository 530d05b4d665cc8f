package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "labelit/internal/platform/errors"
	"labelit/internal/platform/net/middleware"
	"labelit/internal/platform/testkit"
)

func TestRecoverJSON_WritesEnvelope(t *testing.T) {
	h := middleware.RequestID()(middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	rr := serve(h, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["request_id"] != "rid-1" || body["error"] != "panic recovered" {
		t.Fatalf("body = %v", body)
	}
	if int(body["code"].(float64)) != int(perr.ErrorCodePanic) {
		t.Fatalf("code field = %v", body["code"])
	}
}

func TestRecoverJSON_NoPanic(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	if rr := serve(h, httptest.NewRequest(http.MethodGet, "/", nil)); rr.Code != http.StatusAccepted {
		t.Fatalf("code = %d", rr.Code)
	}
}

func TestRecoverJSON_RepanicsAbort(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	testkit.MustPanic(t, func() { serve(h, httptest.NewRequest(http.MethodGet, "/", nil)) })
}
