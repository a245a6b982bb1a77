package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"

	catalogadmin "github.com/prodcat/catalog-admin"
	"github.com/prodcat/catalog-admin/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Catalog      *service.CatalogService
	Auth         *service.AuthService
	CookieDomain string
	IsDev        bool         // Development mode flag for serving assets from disk
	Logger       *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	var authSvc AuthServiceInterface
	var authHandlers *AuthHandlers
	if services.Auth != nil {
		authSvc = services.Auth
		authHandlers = &AuthHandlers{Svc: authSvc, CookieDomain: services.CookieDomain, Logger: services.Logger}
	}

	productHandlers := &ProductHandlers{Svc: services.Catalog, Auth: authSvc, Logger: services.Logger}

	registerProductRoutes(mux, productHandlers, authSvc)
	if authHandlers != nil {
		registerAuthRoutes(mux, authHandlers)
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	// Static single-page frontend.
	// Dev mode: serve from disk for quick iteration.
	// Prod mode: serve from embedded FS.
	mux.Handle("GET /", staticHandler(services.IsDev))

	return mux
}

// registerProductRoutes wires the catalog proxy endpoints. Sessions are
// attached opportunistically; the upstream owns authorization decisions.
func registerProductRoutes(mux *http.ServeMux, h *ProductHandlers, authSvc AuthServiceInterface) {
	withSession := func(handler http.HandlerFunc) http.Handler {
		if authSvc == nil {
			return handler
		}
		return OptionalAuth(authSvc)(handler)
	}

	mux.Handle("GET /api/products", withSession(h.List))
	mux.Handle("GET /api/product", withSession(h.Get))
	mux.Handle("POST /api/product", withSession(h.Create))
	mux.Handle("PUT /api/product", withSession(h.Update))
	mux.Handle("DELETE /api/product", withSession(h.Delete))
}

// registerAuthRoutes wires the session endpoints.
func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.Handle("POST /auth/login", http.HandlerFunc(h.Login))
	mux.Handle("POST /auth/logout", http.HandlerFunc(h.Logout))
	mux.Handle("GET /auth/status", http.HandlerFunc(h.Status))
	mux.Handle("GET /auth/token", http.HandlerFunc(h.Token))
}

// staticHandler serves the frontend from disk in dev mode and from the
// embedded filesystem otherwise.
func staticHandler(isDev bool) http.Handler {
	if isDev {
		return http.FileServer(http.Dir("web/static"))
	}

	sub, err := fs.Sub(catalogadmin.StaticFS, "web/static")
	if err != nil {
		// Embedded layout is fixed at build time; fall back to disk.
		return http.FileServer(http.Dir("web/static"))
	}
	return http.FileServerFS(sub)
}
