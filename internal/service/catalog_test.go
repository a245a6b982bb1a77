package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodcat/catalog-admin/internal/adapters/upstream"
	"github.com/prodcat/catalog-admin/internal/domain/catalog"
	apperrors "github.com/prodcat/catalog-admin/internal/errors"
)

// gatewayStub records the last call and returns canned responses.
type gatewayStub struct {
	lastMethod string
	lastAuth   string
	lastID     string
	lastBody   []byte
	lastQuery  catalog.ListQuery

	envelope upstream.Envelope
	result   upstream.Result
	err      error
}

func (g *gatewayStub) ListProducts(_ context.Context, authorization string, q catalog.ListQuery) (upstream.Envelope, error) {
	g.lastMethod, g.lastAuth, g.lastQuery = "list", authorization, q
	return g.envelope, g.err
}

func (g *gatewayStub) GetProduct(_ context.Context, authorization, productID string) (upstream.Result, error) {
	g.lastMethod, g.lastAuth, g.lastID = "get", authorization, productID
	return g.result, g.err
}

func (g *gatewayStub) CreateProduct(_ context.Context, authorization string, body []byte) (upstream.Result, error) {
	g.lastMethod, g.lastAuth, g.lastBody = "create", authorization, body
	return g.result, g.err
}

func (g *gatewayStub) UpdateProduct(_ context.Context, authorization string, body []byte) (upstream.Result, error) {
	g.lastMethod, g.lastAuth, g.lastBody = "update", authorization, body
	return g.result, g.err
}

func (g *gatewayStub) DeleteProduct(_ context.Context, authorization, productID string) (upstream.Result, error) {
	g.lastMethod, g.lastAuth, g.lastID = "delete", authorization, productID
	return g.result, g.err
}

func TestCatalogList_PassesQueryAndAuth(t *testing.T) {
	gw := &gatewayStub{envelope: upstream.Envelope{Success: true, Data: []any{}, Total: 5}}
	svc := NewCatalogService(gw)

	env, err := svc.List(context.Background(), "Bearer tok", catalog.ListQuery{Page: 2, Limit: 10, Search: "hat"})
	require.NoError(t, err)
	assert.Equal(t, 5, env.Total)
	assert.Equal(t, "list", gw.lastMethod)
	assert.Equal(t, "Bearer tok", gw.lastAuth)
	assert.Equal(t, 2, gw.lastQuery.Page)
	assert.Equal(t, "hat", gw.lastQuery.Search)
}

func TestCatalogGet_RequiresProductID(t *testing.T) {
	gw := &gatewayStub{}
	svc := NewCatalogService(gw)

	_, err := svc.Get(context.Background(), "", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, gw.lastMethod, "upstream must not be contacted on invalid input")
}

func TestCatalogGet_Relays(t *testing.T) {
	gw := &gatewayStub{result: upstream.Result{Status: http.StatusOK, Body: []byte(`{"product_id":"p1"}`)}}
	svc := NewCatalogService(gw)

	res, err := svc.Get(context.Background(), "Bearer tok", "p1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "p1", gw.lastID)
}

func TestCatalogCreateUpdate_ForwardBody(t *testing.T) {
	gw := &gatewayStub{result: upstream.Result{Status: http.StatusOK}}
	svc := NewCatalogService(gw)
	body := []byte(`{"product_title":"Widget"}`)

	_, err := svc.Create(context.Background(), "", body)
	require.NoError(t, err)
	assert.Equal(t, "create", gw.lastMethod)
	assert.Equal(t, body, gw.lastBody)

	_, err = svc.Update(context.Background(), "", body)
	require.NoError(t, err)
	assert.Equal(t, "update", gw.lastMethod)
}

func TestCatalogDelete_RequiresProductID(t *testing.T) {
	gw := &gatewayStub{}
	svc := NewCatalogService(gw)

	_, err := svc.Delete(context.Background(), "", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	gw.result = upstream.Result{Status: http.StatusOK}
	_, err = svc.Delete(context.Background(), "", "p9")
	require.NoError(t, err)
	assert.Equal(t, "p9", gw.lastID)
}
