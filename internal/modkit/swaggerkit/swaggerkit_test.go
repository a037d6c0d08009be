package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatstats/internal/platform/config"
	phttp "chatstats/internal/platform/net/http"
	kit "chatstats/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func serve(t *testing.T, enabled bool, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, config.New().Prefix("SWAGGERKIT_TEST_"), enabled)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMount_Disabled(t *testing.T) {
	if rec := serve(t, false, "/api/docs/doc.json"); rec.Code != http.StatusNotFound {
		t.Fatalf("disabled docs served: %d", rec.Code)
	}
}

func TestMount_Redirect(t *testing.T) {
	rec := serve(t, true, "/api/docs")
	if rec.Code != http.StatusPermanentRedirect || rec.Header().Get("Location") != "/api/docs/" {
		t.Fatalf("redirect = %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestDocJSON_Defaults(t *testing.T) {
	t.Setenv("SWAGGERKIT_TEST_DOCS_TITLE_SUFFIX", "(staging)")
	rec := serve(t, true, "/api/docs/doc.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("doc must not be cached")
	}

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", doc["openapi"])
	}
	servers := doc["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", servers)
	}
	title := doc["info"].(map[string]any)["title"].(string)
	kit.MustContain(t, title, "(staging)")

	schemas := doc["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatalf("ErrorResponse schema missing")
	}
	post := doc["paths"].(map[string]any)["/analyze"].(map[string]any)["post"].(map[string]any)
	responses := post["responses"].(map[string]any)
	for _, code := range []string{"200", "400", "500"} {
		if _, ok := responses[code]; !ok {
			t.Fatalf("POST /analyze lacks %s response", code)
		}
	}
}

func TestDocJSON_SwaggerTwoAndMutators(t *testing.T) {
	kit.Swap(t, &docReader, func() []byte {
		return []byte(`{"swagger":"2.0","info":{"title":"t"},"paths":{"/x":{"get":{}}}}`)
	})
	kit.Swap(t, &mutators, nil)
	Register(func(doc map[string]any) { doc["x-test"] = true })
	Register(nil)
	if len(mutators) != 1 {
		t.Fatalf("nil mutator registered")
	}

	rec := httptest.NewRecorder()
	serveDocJSON("/base", "")(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := doc["swagger"]; ok || doc["openapi"] != "3.0.3" {
		t.Fatalf("swagger 2 not rewritten: %v", doc)
	}
	if doc["x-test"] != true {
		t.Fatalf("mutator not applied")
	}
	get := doc["paths"].(map[string]any)["/x"].(map[string]any)["get"].(map[string]any)
	if _, ok := get["responses"].(map[string]any)["400"]; !ok {
		t.Fatalf("default 400 missing")
	}
}

func TestDocJSON_InvalidDocument(t *testing.T) {
	kit.Swap(t, &docReader, func() []byte { return []byte("{") })
	rec := httptest.NewRecorder()
	serveDocJSON("/api/v1", "")(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
