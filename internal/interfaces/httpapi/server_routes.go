package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/roster", handler.GetRoster)
	// Drops the cached roster and reads the source again.
	mux.HandleFunc("POST /v1/roster/reload", handler.ReloadRoster)
}

func registerDrawRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/draws", handler.CreateDraw)
	mux.HandleFunc("POST /v1/draws/options", handler.CreateDrawOptions)
}
