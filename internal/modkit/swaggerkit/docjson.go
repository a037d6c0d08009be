package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"
)

//go:embed openapi.json
var embedded []byte

// DocMutator edits the parsed document before it is served
type DocMutator func(doc map[string]any)

var (
	mutators []DocMutator

	// docReader is a seam over the embedded document
	docReader = func() []byte { return embedded }
)

// Register queues m to run on every doc.json request. Call it before Mount
func Register(m DocMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// fallback error responses added to operations that do not declare their own
var fallbacks = []struct {
	code, desc string
	example    map[string]any
}{
	{"400", "Bad Request", map[string]any{
		"status_code": 400, "status": "Bad Request", "code": 3,
		"error": "text is required", "field": "text", "request_id": "579f33bf50b1/abc-000001",
	}},
	{"500", "Internal Server Error", map[string]any{
		"status_code": 500, "status": "Internal Server Error", "code": 1,
		"error": "panic recovered", "request_id": "579f33bf50b1/abc-000001",
	}},
}

var errorSchema = map[string]any{
	"type":        "object",
	"description": "Error envelope shared by every endpoint",
	"required":    []any{"status_code", "status"},
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer", "format": "int32"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer", "format": "int32"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
}

// serveDocJSON parses the embedded document per request and fills in what the UI needs
func serveDocJSON(base, titleSuffix string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var doc map[string]any
		if err := json.Unmarshal(docReader(), &doc); err != nil {
			http.Error(w, "openapi document is not valid JSON", http.StatusInternalServerError)
			return
		}

		pinVersion(doc)
		if _, ok := doc["servers"]; !ok {
			doc["servers"] = []any{map[string]any{"url": base}}
		}
		if titleSuffix != "" {
			info := child(doc, "info")
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + titleSuffix
			}
		}
		schemas := child(child(doc, "components"), "schemas")
		if _, ok := schemas["ErrorResponse"]; !ok {
			schemas["ErrorResponse"] = errorSchema
		}
		for _, f := range fallbacks {
			eachOperation(doc, func(op map[string]any) {
				responses := child(op, "responses")
				if _, ok := responses[f.code]; !ok {
					responses[f.code] = errorResponse(f.desc, f.example)
				}
			})
		}
		for _, m := range mutators {
			m(doc)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// pinVersion rewrites swagger 2 and OAS 3.1 headers to 3.0.3, the newest the UI renders
func pinVersion(doc map[string]any) {
	delete(doc, "swagger")
	if v, _ := doc["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		doc["openapi"] = "3.0.3"
	}
}

func errorResponse(desc string, example map[string]any) map[string]any {
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": example,
			},
		},
	}
}

// eachOperation calls fn for every method object under paths
func eachOperation(doc map[string]any, fn func(op map[string]any)) {
	paths, _ := doc["paths"].(map[string]any)
	for _, item := range paths {
		methods, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, v := range methods {
			if op, ok := v.(map[string]any); ok {
				fn(op)
			}
		}
	}
}

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
