package http

import (
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "labelit/internal/platform/errors"
)

type submitBody struct {
	Item   int      `json:"item"   validate:"gte=0"`
	Labels []string `json:"labels" validate:"dive,required"`
}

func post(body string) *stdhttp.Request {
	req := httptest.NewRequest(stdhttp.MethodPost, "/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestJSONHandler(t *testing.T) {
	t.Parallel()

	h := JSONHandler(func(_ *stdhttp.Request, in submitBody) (any, error) {
		if in.Item == 9 {
			return nil, perr.Conflictf("stale")
		}
		if in.Item == 7 {
			return Response{Status: stdhttp.StatusAccepted, Body: in.Labels}, nil
		}
		return in.Item + len(in.Labels), nil
	})

	cases := []struct {
		body string
		code int
	}{
		{`{"item":1,"labels":["a","b"]}`, stdhttp.StatusOK},
		{`{"item":7,"labels":["a"]}`, stdhttp.StatusAccepted},
		{`{"item":9}`, stdhttp.StatusConflict},
		{`{"item":-1}`, stdhttp.StatusBadRequest},
		{`{"item":1,"labels":[""]}`, stdhttp.StatusBadRequest},
		{`{"item":`, stdhttp.StatusBadRequest},
	}
	for _, tc := range cases {
		rr, env := run(t, h, post(tc.body))
		if rr.Code != tc.code {
			t.Fatalf("%s: code = %d body=%s", tc.body, rr.Code, rr.Body.String())
		}
		if tc.code == stdhttp.StatusOK && env.Data.(float64) != 3 {
			t.Fatalf("data = %v", env.Data)
		}
	}
}

func TestNoBodyHandler(t *testing.T) {
	t.Parallel()

	ok := NoBodyHandler(func(*stdhttp.Request) (any, error) { return "done", nil })
	if rr, env := run(t, ok, post("ignored")); rr.Code != stdhttp.StatusOK || env.Data != "done" {
		t.Fatalf("ok = %d %+v", rr.Code, env)
	}

	bad := NoBodyHandler(func(*stdhttp.Request) (any, error) { return nil, errors.New("plain") })
	if rr, env := run(t, bad, post("")); rr.Code != stdhttp.StatusInternalServerError || env.Error != "plain" {
		t.Fatalf("plain error = %d %+v", rr.Code, env)
	}
}
