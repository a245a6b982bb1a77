package httpx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/prodcat/catalog-admin/internal/adapters/upstream"
	"github.com/prodcat/catalog-admin/internal/domain/catalog"
	apperrors "github.com/prodcat/catalog-admin/internal/errors"
)

// CatalogServiceInterface defines the interface for catalog proxy operations.
type CatalogServiceInterface interface {
	List(ctx context.Context, authorization string, q catalog.ListQuery) (upstream.Envelope, error)
	Get(ctx context.Context, authorization, productID string) (upstream.Result, error)
	Create(ctx context.Context, authorization string, body []byte) (upstream.Result, error)
	Update(ctx context.Context, authorization string, body []byte) (upstream.Result, error)
	Delete(ctx context.Context, authorization, productID string) (upstream.Result, error)
}

// ProductHandlers provides the stateless proxy handlers for catalog operations.
// Each request is handled independently; no catalog state is kept here.
type ProductHandlers struct {
	Svc    CatalogServiceInterface
	Auth   AuthServiceInterface // Optional; used to mint tokens for session-only callers
	Logger *slog.Logger
}

func (h *ProductHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// List proxies the paginated product listing.
// GET /api/products?page=&limit=&search=.
func (h *ProductHandlers) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := catalog.NewListQuery(query.Get("page"), query.Get("limit"), query.Get("search"))

	env, err := h.Svc.List(r.Context(), h.authorizationFor(r), q)
	if err != nil {
		h.writeProxyError(w, r, "Failed to fetch products", err)
		return
	}
	WriteJSON(w, http.StatusOK, env)
}

// Get proxies a single product fetch.
// GET /api/product?product_id=.
func (h *ProductHandlers) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.Get(r.Context(), h.authorizationFor(r), r.URL.Query().Get("product_id"))
	if err != nil {
		h.writeProxyError(w, r, "Failed to fetch product", err)
		return
	}
	Relay(w, res.Status, res.Body)
}

// Create proxies product creation, forwarding the body verbatim.
// POST /api/product.
func (h *ProductHandlers) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	res, err := h.Svc.Create(r.Context(), h.authorizationFor(r), body)
	if err != nil {
		h.writeProxyError(w, r, "Failed to create product", err)
		return
	}
	Relay(w, res.Status, res.Body)
}

// Update proxies product updates, forwarding the body verbatim.
// PUT /api/product.
func (h *ProductHandlers) Update(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	res, err := h.Svc.Update(r.Context(), h.authorizationFor(r), body)
	if err != nil {
		h.writeProxyError(w, r, "Failed to update product", err)
		return
	}
	Relay(w, res.Status, res.Body)
}

// deleteRequest accepts both identifier spellings; snake_case wins when both
// are present.
type deleteRequest struct {
	ProductID      string `json:"product_id"`
	ProductIDCamel string `json:"productId"`
}

func (d deleteRequest) id() string {
	if d.ProductID != "" {
		return d.ProductID
	}
	return d.ProductIDCamel
}

// Delete proxies product deletion. The product identifier travels in the
// request body.
// DELETE /api/product.
func (h *ProductHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	// Lenient decode: clients may send extra fields alongside the id.
	var req deleteRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return
	}

	res, err := h.Svc.Delete(r.Context(), h.authorizationFor(r), req.id())
	if err != nil {
		h.writeProxyError(w, r, "Failed to delete product", err)
		return
	}
	Relay(w, res.Status, res.Body)
}

// authorizationFor resolves the Authorization value forwarded upstream:
// an inbound Authorization header passes through verbatim; otherwise a
// bearer token is minted for the caller's session when one is active.
func (h *ProductHandlers) authorizationFor(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return header
	}

	if h.Auth == nil {
		return ""
	}
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		return ""
	}
	if token := h.Auth.Token(r.Context(), session.ID); token != "" {
		return "Bearer " + token
	}
	return ""
}

// readBody reads the request body up to the proxy limit.
func (h *ProductHandlers) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return nil, false
	}
	return body, true
}

// writeProxyError maps service errors onto the proxy's error contract:
// validation failures respond 400 without touching the upstream, upstream
// failures relay the upstream status (500 when the call produced no
// response) with a fixed per-operation label and the upstream's message.
func (h *ProductHandlers) writeProxyError(w http.ResponseWriter, r *http.Request, label string, err error) {
	if apperrors.IsValidation(err) {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: label, Err: err})
		return
	}

	status := apperrors.UpstreamStatus(err)
	if status == 0 {
		status = http.StatusInternalServerError
	}
	h.logger().ErrorContext(r.Context(), "upstream call failed",
		"label", label, "status", status, "error", err)
	WriteError(w, ErrorParams{Code: status, ErrCode: label, Err: err})
}
