// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package x86

// Model is a named CPU model: the union of its ancestor model's data (if
// any) plus all features it declares, optionally tied to a vendor.
type Model struct {
	Name   string   `json:"name"`
	Vendor *Vendor  `json:"vendor,omitempty"`
	Data   *X86Data `json:"data"`
}

// copyModel returns a deep-enough clone of m: the CPUID data is
// deep-copied, the vendor pointer is shared since vendors are immutable
// catalog entries.
func copyModel(m *Model) *Model {
	return &Model{
		Name:   m.Name,
		Vendor: m.Vendor,
		Data:   Copy(m.Data),
	}
}
