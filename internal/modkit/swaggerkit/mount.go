// Package swaggerkit serves the OpenAPI spec and Swagger UI under the API router.
package swaggerkit

import (
	"net/http"

	phttp "reviewsentry/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// BasePath is where the API router is mounted; the UI is served under BasePath/docs
const BasePath = "/api"

// Mount the Swagger UI and JSON spec on the API router if enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, BasePath+"/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/docs/doc.json", serveDocJSON())
	r.Handle("/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(BasePath+"/docs/doc.json"),
	))
}
