// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"maps"
	"net/http"
)

// CPU Compatibility Engine Error Codes (2450-2499)
const (
	// Input errors (2450-2459)
	CPUUnknownFeature = 2450 + iota // Feature name not present in catalog
	CPUUnknownModel                 // Model name not present in catalog
	CPUUnknownVendor                // Vendor name not present in catalog
	CPUUnsupportedArch               // Architecture not recognized
	CPUUnknownMode                    // Guest CPU mode not recognized
	CPUUnknownMatch                    // Match policy not recognized
	CPUUnknownPolicy                   // Feature policy not recognized
	CPUInvalidDefinition                // CPU definition failed structural validation
)

const (
	// Compute/compare errors (2460-2479)
	CPUIncompatible = 2460 + iota // Host cannot satisfy guest CPU requirements
	CPUForbiddenFeaturePresent     // A forbidden feature is present on the host
	CPURequiredFeatureMissing      // A required feature is missing from the host
	CPUStrictSupersetRejected      // STRICT match rejected a superset host
	CPUPreferredModelRejected      // Requested model rejected under current policy
	CPUNoUsableModel               // Decoder found no candidate model for the data
	CPUEmptyHostSet                 // Baseline requested over zero hosts
	CPUVendorMismatch                 // Hosts in a baseline set disagree on vendor
)

const (
	// Driver/runtime errors (2480-2489)
	CPUProbeFailed = 2480 + iota // Failed to read host CPUID leaves
	CPUDriverNotReady             // Driver invoked before a catalog was loaded
)

func init() {
	cpuErrorDefinitions := map[ErrorCode]struct {
		message    string
		domain     Domain
		httpStatus int
	}{
		CPUUnknownFeature: {
			"Feature name not present in catalog",
			DomainCPU,
			http.StatusBadRequest,
		},
		CPUUnknownModel: {
			"Model name not present in catalog",
			DomainCPU,
			http.StatusBadRequest,
		},
		CPUUnknownVendor: {
			"Vendor name not present in catalog",
			DomainCPU,
			http.StatusBadRequest,
		},
		CPUUnsupportedArch: {
			"Unsupported CPU architecture",
			DomainCPU,
			http.StatusBadRequest,
		},
		CPUUnknownMode: {
			"Unrecognized guest CPU mode",
			DomainCPU,
			http.StatusBadRequest,
		},
		CPUUnknownMatch: {
			"Unrecognized CPU match policy",
			DomainCPU,
			http.StatusBadRequest,
		},
		CPUUnknownPolicy: {
			"Unrecognized feature policy",
			DomainCPU,
			http.StatusBadRequest,
		},
		CPUInvalidDefinition: {
			"CPU definition failed structural validation",
			DomainCPU,
			http.StatusBadRequest,
		},
		CPUIncompatible: {
			"Host CPU cannot satisfy guest CPU requirements",
			DomainCPU,
			http.StatusUnprocessableEntity,
		},
		CPUForbiddenFeaturePresent: {
			"A forbidden feature is present on the host CPU",
			DomainCPU,
			http.StatusUnprocessableEntity,
		},
		CPURequiredFeatureMissing: {
			"A required feature is missing from the host CPU",
			DomainCPU,
			http.StatusUnprocessableEntity,
		},
		CPUStrictSupersetRejected: {
			"STRICT match rejected a superset host CPU",
			DomainCPU,
			http.StatusUnprocessableEntity,
		},
		CPUPreferredModelRejected: {
			"Requested CPU model rejected under current policy",
			DomainCPU,
			http.StatusUnprocessableEntity,
		},
		CPUNoUsableModel: {
			"No catalog model matches the given CPU data",
			DomainCPU,
			http.StatusUnprocessableEntity,
		},
		CPUEmptyHostSet: {
			"Baseline requested over an empty host set",
			DomainCPU,
			http.StatusBadRequest,
		},
		CPUVendorMismatch: {
			"Hosts in a baseline set disagree on CPU vendor",
			DomainCPU,
			http.StatusUnprocessableEntity,
		},
		CPUProbeFailed: {
			"Failed to read host CPUID leaves",
			DomainCPU,
			http.StatusInternalServerError,
		},
		CPUDriverNotReady: {
			"Driver invoked before a catalog was loaded",
			DomainCPU,
			http.StatusInternalServerError,
		},
	}

	maps.Copy(errorDefinitions, cpuErrorDefinitions)
}
