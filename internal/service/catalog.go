package service

import (
	"context"

	"github.com/prodcat/catalog-admin/internal/adapters/upstream"
	"github.com/prodcat/catalog-admin/internal/domain/catalog"
	apperrors "github.com/prodcat/catalog-admin/internal/errors"
)

// ProductGateway is the outbound port to the upstream products API.
// *upstream.Client satisfies it; tests substitute doubles.
type ProductGateway interface {
	ListProducts(ctx context.Context, authorization string, q catalog.ListQuery) (upstream.Envelope, error)
	GetProduct(ctx context.Context, authorization, productID string) (upstream.Result, error)
	CreateProduct(ctx context.Context, authorization string, body []byte) (upstream.Result, error)
	UpdateProduct(ctx context.Context, authorization string, body []byte) (upstream.Result, error)
	DeleteProduct(ctx context.Context, authorization, productID string) (upstream.Result, error)
}

// CatalogService fronts the upstream products API. It validates local input
// before any upstream call and otherwise relays requests and responses
// unmodified; product field validation belongs to the upstream.
type CatalogService struct {
	gateway ProductGateway
}

// NewCatalogService constructs a new CatalogService.
func NewCatalogService(gateway ProductGateway) *CatalogService {
	return &CatalogService{gateway: gateway}
}

// List fetches a page of products as a normalized envelope.
func (s *CatalogService) List(ctx context.Context, authorization string, q catalog.ListQuery) (upstream.Envelope, error) {
	return s.gateway.ListProducts(ctx, authorization, q)
}

// Get fetches a single product by id.
func (s *CatalogService) Get(ctx context.Context, authorization, productID string) (upstream.Result, error) {
	if productID == "" {
		return upstream.Result{}, apperrors.Validation("product_id is required")
	}
	return s.gateway.GetProduct(ctx, authorization, productID)
}

// Create forwards a product creation payload verbatim.
func (s *CatalogService) Create(ctx context.Context, authorization string, body []byte) (upstream.Result, error) {
	return s.gateway.CreateProduct(ctx, authorization, body)
}

// Update forwards a product update payload verbatim.
func (s *CatalogService) Update(ctx context.Context, authorization string, body []byte) (upstream.Result, error) {
	return s.gateway.UpdateProduct(ctx, authorization, body)
}

// Delete removes a product by id.
func (s *CatalogService) Delete(ctx context.Context, authorization, productID string) (upstream.Result, error) {
	if productID == "" {
		return upstream.Result{}, apperrors.Validation("product_id is required")
	}
	return s.gateway.DeleteProduct(ctx, authorization, productID)
}
