// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"maps"
	"net/http"
)

// Catalog Error Codes (2400-2449)
const (
	// Load errors (2400-2409)
	CatalogLoadFailed = 2400 + iota // Failed to load catalog source
	CatalogNotFound                 // Catalog source not found
	CatalogFetchFailed              // Failed to fetch remote catalog
	CatalogParseFailed              // Failed to parse catalog document
)

const (
	// Structural errors (2410-2429)
	CatalogDuplicateVendor  = 2410 + iota // Vendor name already defined
	CatalogDuplicateFeature                // Feature name already defined
	CatalogDuplicateModel                  // Model name already defined
	CatalogUnknownAncestor                 // Model references an unknown ancestor
	CatalogUnknownFeatureRef                // Model or feature references an unknown feature name
	CatalogUnknownVendorRef                 // Model references an unknown vendor name
	CatalogMalformedRegister                 // CPUID register value is not valid hex
	CatalogInvalidVendorString                // Vendor string is not exactly 12 characters
	CatalogInvalidLeaf                        // CPUID leaf/function value out of range
	CatalogEmpty                               // Catalog contains no usable entries
)

// Refresh errors (2430-2439)
const (
	CatalogRefreshScheduleFailed ErrorCode = 2430 + iota // Failed to schedule the periodic catalog refresh job
)

func init() {
	catalogErrorDefinitions := map[ErrorCode]struct {
		message    string
		domain     Domain
		httpStatus int
	}{
		CatalogLoadFailed: {
			"Failed to load CPU catalog",
			DomainCatalog,
			http.StatusInternalServerError,
		},
		CatalogNotFound: {
			"CPU catalog source not found",
			DomainCatalog,
			http.StatusNotFound,
		},
		CatalogFetchFailed: {
			"Failed to fetch remote CPU catalog",
			DomainCatalog,
			http.StatusBadGateway,
		},
		CatalogParseFailed: {
			"Failed to parse CPU catalog document",
			DomainCatalog,
			http.StatusBadRequest,
		},
		CatalogDuplicateVendor: {
			"Duplicate vendor name in catalog",
			DomainCatalog,
			http.StatusBadRequest,
		},
		CatalogDuplicateFeature: {
			"Duplicate feature name in catalog",
			DomainCatalog,
			http.StatusBadRequest,
		},
		CatalogDuplicateModel: {
			"Duplicate model name in catalog",
			DomainCatalog,
			http.StatusBadRequest,
		},
		CatalogUnknownAncestor: {
			"Model references an unknown ancestor model",
			DomainCatalog,
			http.StatusBadRequest,
		},
		CatalogUnknownFeatureRef: {
			"Reference to an undefined feature name",
			DomainCatalog,
			http.StatusBadRequest,
		},
		CatalogUnknownVendorRef: {
			"Reference to an undefined vendor name",
			DomainCatalog,
			http.StatusBadRequest,
		},
		CatalogMalformedRegister: {
			"CPUID register value is not valid hexadecimal",
			DomainCatalog,
			http.StatusBadRequest,
		},
		CatalogInvalidVendorString: {
			"Vendor string must be exactly 12 characters",
			DomainCatalog,
			http.StatusBadRequest,
		},
		CatalogInvalidLeaf: {
			"CPUID leaf value out of range",
			DomainCatalog,
			http.StatusBadRequest,
		},
		CatalogEmpty: {
			"CPU catalog contains no usable entries",
			DomainCatalog,
			http.StatusUnprocessableEntity,
		},
		CatalogRefreshScheduleFailed: {
			"Failed to schedule periodic CPU catalog refresh",
			DomainCatalog,
			http.StatusInternalServerError,
		},
	}

	maps.Copy(errorDefinitions, catalogErrorDefinitions)
}
