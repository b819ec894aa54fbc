package v1

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	openapi "github.com/BootforgeIO/bootforge/api/openapi"
)

// Router returns the chi.Router for REST API v1.
func Router() chi.Router {
	r := chi.NewRouter()

	// Docs (Swagger UI) and spec under the versioned prefix
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api/v1/openapi.yaml"),
	))
	r.Get("/openapi.yaml", serveOpenAPIStaticAsset)

	// Platform table
	r.Get("/platforms", listPlatforms)

	// Bootstrap endpoints
	r.Post("/nodes/{nodeId}/bootstrap", enqueueBootstrap)
	r.Get("/tasks/{taskId}", getTaskStatus)
	r.Get("/history", listHistory)

	// Enrollment endpoints
	r.Post("/enroll/token", createEnrollToken)

	return r
}

func serveOpenAPIStaticAsset(w http.ResponseWriter, r *http.Request) {
	data, err := openapi.FS.ReadFile("v1/bootforge.yaml")
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read spec: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(data)
}
