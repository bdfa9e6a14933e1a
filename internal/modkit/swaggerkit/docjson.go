//go:build swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	perr "reviewsentry/internal/platform/errors"

	docs "reviewsentry/internal/services/api/docs"
)

const oasVersion = "3.0.3"

var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// serveDocJSON serves the generated spec as OAS 3.0 with the error envelope filled in
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		normalize(spec)
		addErrorResponses(spec)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// normalize lifts swagger 2 and OAS 3.1 to 3.0.3, which the bundled UI renders
func normalize(spec map[string]any) {
	if _, ok := spec["swagger"]; ok {
		delete(spec, "swagger")
		spec["openapi"] = oasVersion
	}
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = oasVersion
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": BasePath}}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func errorExample(status int, code perr.ErrorCode, msg string) map[string]any {
	return map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      http.StatusText(status),
					"code":        int(code),
					"error":       msg,
				},
			},
		},
	}
}

// addErrorResponses documents the error envelope and gives every operation a 500,
// and every POST a 400, unless the handler annotations already declare one
func addErrorResponses(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"status_code": map[string]any{"type": "integer"},
				"status":      map[string]any{"type": "string"},
				"code":        map[string]any{"type": "integer"},
				"error":       map[string]any{"type": "string"},
				"request_id":  map[string]any{"type": "string"},
			},
			"required": []any{"status_code", "status"},
		}
	}

	internal := errorExample(http.StatusInternalServerError, perr.ErrorCodeModelUnavailable, "Model not loaded")
	badReq := errorExample(http.StatusBadRequest, perr.ErrorCodeValidation, "No review text provided.")

	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for method, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			if _, ok := resps["500"]; !ok {
				resps["500"] = internal
			}
			if _, ok := resps["400"]; !ok && method == "post" {
				resps["400"] = badReq
			}
		}
	}
}
