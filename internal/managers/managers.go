// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package managers provides a centralized registry for shared, process-wide
// state. This ensures every HTTP route (pkg/server) uses the same catalog
// instance, avoiding repeated reloads and races when internal/catalogd
// swaps in a freshly-fetched catalog. The cmd/cpu subcommands do not use
// it; each loads its own catalog file.
//
// Usage:
//   - vcpu serve sets the catalog once at startup, then internal/catalogd
//     re-sets it on every scheduled refresh
//   - pkg/server routes call GetCatalog to read the current instance;
//     GetCatalog returns nil if none has been set
package managers

import (
	"sync"

	"github.com/stratastor/vcpu/pkg/x86"
)

var (
	mu sync.RWMutex

	catalog       *x86.Map
	catalogSource string // path or URL the current catalog was loaded from
)

// SetCatalog installs the shared CPU catalog instance.
func SetCatalog(m *x86.Map, source string) {
	mu.Lock()
	defer mu.Unlock()
	catalog = m
	catalogSource = source
}

// GetCatalog returns the shared CPU catalog, or nil if it hasn't been set.
func GetCatalog() *x86.Map {
	mu.RLock()
	defer mu.RUnlock()
	return catalog
}

// GetCatalogSource returns the path or URL the current catalog was
// loaded from, for diagnostics.
func GetCatalogSource() string {
	mu.RLock()
	defer mu.RUnlock()
	return catalogSource
}
