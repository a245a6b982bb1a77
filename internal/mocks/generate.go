// Package mocks holds generated test doubles for the port interfaces.
package mocks

//go:generate mockgen -package=mocks -destination=auth_provider_mock.go github.com/prodcat/catalog-admin/internal/ports AuthProvider
//go:generate mockgen -package=mocks -destination=session_store_mock.go github.com/prodcat/catalog-admin/internal/ports SessionStore
