// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package x86

import "github.com/stratastor/vcpu/pkg/errors"

// VendorStringLen is the exact length of a CPUID vendor identifier
// string, packed into (ebx, edx, ecx) of leaf 0.
const VendorStringLen = 12

// Vendor names a CPU manufacturer by its 12-byte CPUID leaf-0 identifier.
type Vendor struct {
	Name  string `json:"name"`
	Cpuid Cpuid  `json:"cpuid"`
}

// VendorCpuidFromString packs a 12-character vendor string into a
// leaf-0 Cpuid the way a catalog <vendor> element does, exported for
// pkg/hostprobe to reuse when synthesizing a host's leaf 0 from a
// parsed vendor string rather than a catalog element.
func VendorCpuidFromString(s string) (Cpuid, error) {
	return packVendorString(s)
}

// packVendorString packs a 12-character vendor string into a leaf-0
// Cpuid: bytes 0..4 into Ebx, 4..8 into Edx, 8..12 into Ecx, little-endian.
func packVendorString(s string) (Cpuid, error) {
	if len(s) != VendorStringLen {
		return Cpuid{}, errors.New(errors.CatalogInvalidVendorString,
			"vendor string must be exactly 12 characters").
			WithMetadata("value", s)
	}
	b := []byte(s)
	return Cpuid{
		Function: 0,
		Ebx:      leU32(b[0:4]),
		Edx:      leU32(b[4:8]),
		Ecx:      leU32(b[8:12]),
	}, nil
}

func leU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
