package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"labelit/internal/platform/config"
	perr "labelit/internal/platform/errors"
)

//go:embed openapi.json
var openapiDoc string

// SpecMutator adjusts the parsed spec before it is served
type SpecMutator func(map[string]any)

var (
	mutators  []SpecMutator
	docReader = func() string { return openapiDoc }
)

// Register adds a spec mutator, nil is ignored
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// stdError is a response every operation of the listed methods documents unless it declares its own
type stdError struct {
	status  int
	code    perr.ErrorCode
	message string
	methods string
}

var stdErrors = []stdError{
	{http.StatusBadRequest, perr.ErrorCodeValidation, "labels[0] is required", "post"},
	{http.StatusConflict, perr.ErrorCodeConflict, "labeling: session is not active", "post"},
	{http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered", "get post"},
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, "/api/v1")
		if suffix := config.New().Prefix("LABELIT_API_").MayString("DOCS_TITLE_SUFFIX", ""); suffix != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				info["title"] = strings.TrimSpace(asString(info["title"]) + " " + suffix)
			}
		}
		schemas := child(child(spec, "components"), "schemas")
		if _, ok := schemas["ErrorResponse"]; !ok {
			schemas["ErrorResponse"] = errorSchema
		}
		addStdErrors(spec)

		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers pins the document to OAS 3.0.3, the newest the bundled ui renders,
// and adds a servers entry when there is none
func ensureServers(spec map[string]any, url string) {
	delete(spec, "swagger")
	spec["openapi"] = "3.0.3"
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

var errorSchema = map[string]any{
	"type":        "object",
	"description": "Standard error envelope",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer", "format": "int32"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer", "format": "int32"},
		"error":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
	"required": []any{"status_code", "status"},
}

func addStdErrors(spec map[string]any) {
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		item, _ := p.(map[string]any)
		for method, o := range item {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for _, e := range stdErrors {
				key := strconv.Itoa(e.status)
				if _, ok := resps[key]; ok || !strings.Contains(e.methods, method) {
					continue
				}
				resps[key] = e.response()
			}
		}
	}
}

func (e stdError) response() map[string]any {
	return map[string]any{
		"description": http.StatusText(e.status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": e.status,
					"status":      http.StatusText(e.status),
					"code":        int(e.code),
					"error":       e.message,
					"request_id":  "labelit/abc-000001",
				},
			},
		},
	}
}

// child returns m[key] as an object, creating it when absent
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
