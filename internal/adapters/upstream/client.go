package upstream

// Package upstream is the adapter for the external products API that owns
// authoritative product data. The client forwards bearer tokens verbatim,
// relays upstream status and body, and never retries: a failed call is
// surfaced to the caller once, immediately.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prodcat/catalog-admin/internal/domain/catalog"
	apperrors "github.com/prodcat/catalog-admin/internal/errors"
)

const (
	productsPath = "/api/web/v1/products"
	productPath  = "/api/web/v1/product"

	// maxBodyBytes bounds relayed upstream bodies.
	maxBodyBytes = 4 << 20
)

// Config captures the upstream connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client // Optional; a timeout client is built when nil
}

// Client is a thin HTTP client for the upstream products API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds an upstream client. Callers should pass a sanitized config.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("upstream base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: baseURL, client: hc}, nil
}

// Result is a relayed upstream response: the status code and raw body,
// passed through to the caller verbatim.
type Result struct {
	Status int
	Body   []byte
}

// ListProducts fetches a page of products, translating the 1-based page/limit
// pair into the upstream offset convention, and returns the normalized
// envelope.
func (c *Client) ListProducts(ctx context.Context, authorization string, q catalog.ListQuery) (Envelope, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("offset", strconv.Itoa(q.Offset()))
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	res, err := c.do(ctx, http.MethodGet, productsPath+"?"+params.Encode(), authorization, nil)
	if err != nil {
		return Envelope{}, err
	}
	return NormalizeList(res.Body), nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, authorization, productID string) (Result, error) {
	params := url.Values{}
	params.Set("product_id", productID)
	return c.do(ctx, http.MethodGet, productPath+"?"+params.Encode(), authorization, nil)
}

// CreateProduct forwards the request body verbatim; the upstream validates
// product fields.
func (c *Client) CreateProduct(ctx context.Context, authorization string, body []byte) (Result, error) {
	return c.do(ctx, http.MethodPost, productPath, authorization, body)
}

// UpdateProduct forwards the request body (including product_id) verbatim.
func (c *Client) UpdateProduct(ctx context.Context, authorization string, body []byte) (Result, error) {
	return c.do(ctx, http.MethodPut, productPath, authorization, body)
}

// DeleteProduct issues an upstream delete with the product id in the body.
func (c *Client) DeleteProduct(ctx context.Context, authorization, productID string) (Result, error) {
	body, err := json.Marshal(map[string]string{"product_id": productID})
	if err != nil {
		return Result{}, fmt.Errorf("encode delete body: %w", err)
	}
	return c.do(ctx, http.MethodDelete, productPath, authorization, body)
}

// do performs one upstream call. Transport failures and non-2xx responses
// both surface as upstream errors; the Authorization value is forwarded
// unmodified when present.
func (c *Client) do(ctx context.Context, method, pathAndQuery, authorization string, body []byte) (Result, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+pathAndQuery, reader)
	if err != nil {
		return Result{}, fmt.Errorf("build upstream request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, apperrors.Upstream(0, err.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, apperrors.Upstream(0, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, apperrors.Upstream(resp.StatusCode, errorMessage(resp.StatusCode, data))
	}

	return Result{Status: resp.StatusCode, Body: data}, nil
}

// errorMessage extracts the upstream's message field from an error body,
// falling back to a generic status description. Internal detail is never
// exposed beyond that message.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("upstream returned status %d", status)
}
