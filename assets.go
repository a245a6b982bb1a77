// Package catalogadmin provides embedded assets for production builds.
package catalogadmin

import "embed"

// Embedded assets for production builds.
// In dev mode (IsDev=true), assets are served from disk for hot reloading.

//go:embed all:web/static
var StaticFS embed.FS
