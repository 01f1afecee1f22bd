package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pdfvault/internal/handlers"
	"pdfvault/internal/vault"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Vault        vault.Service
	Report       *vault.BootstrapReport
	DefaultLimit int
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(CORS)

	healthHandler := handlers.NewHealthHandler(deps.Vault)
	listFilesHandler := handlers.NewListFilesHandler(deps.Vault)
	ingestHandler := handlers.NewIngestHandler(deps.Vault)
	removeFileHandler := handlers.NewRemoveFileHandler(deps.Vault)
	searchPagesHandler := handlers.NewSearchPagesHandler(deps.Vault, deps.DefaultLimit)
	searchFilesHandler := handlers.NewSearchFilesHandler(deps.Vault, deps.DefaultLimit)
	statusHandler := handlers.NewStatusHandler(deps.Vault, deps.Report)
	nukeHandler := handlers.NewNukeHandler(deps.Vault)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Method(http.MethodGet, "/files", listFilesHandler)
		r.Method(http.MethodPost, "/files", ingestHandler)
		r.Method(http.MethodDelete, "/files/{fileID}", removeFileHandler)
		r.Method(http.MethodGet, "/search/pages", searchPagesHandler)
		r.Method(http.MethodGet, "/search/files", searchFilesHandler)
		r.Method(http.MethodGet, "/vault/status", statusHandler)
		r.Method(http.MethodDelete, "/vault", nukeHandler)
	})

	return r
}
