// Package swaggerkit serves the embedded OpenAPI document and the Swagger UI
package swaggerkit

import (
	"net/http"

	"chatstats/internal/platform/config"
	phttp "chatstats/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	docsRoot = "/api/docs"
	docPath  = docsRoot + "/doc.json"
	apiBase  = "/api/v1"
)

// Mount is a no-op unless enabled. The UI lives under /api/docs/ and reads doc.json next to it.
// DOCS_TITLE_SUFFIX in cfg is appended to the document title
func Mount(r phttp.Router, cfg config.Conf, enabled bool) {
	if !enabled {
		return
	}
	ui := httpSwagger.Handler(httpSwagger.InstanceName("api"), httpSwagger.URL(docPath))

	r.Get(docsRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsRoot+"/", http.StatusPermanentRedirect)
	})
	r.Get(docPath, serveDocJSON(apiBase, cfg.MayString("DOCS_TITLE_SUFFIX", "")))
	r.Handle(docsRoot+"/*", ui)
}
