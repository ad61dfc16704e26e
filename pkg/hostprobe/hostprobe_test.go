// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package hostprobe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stratastor/vcpu/pkg/x86"
)

func TestNodeDataRejectsUnsupportedArch(t *testing.T) {
	_, err := NodeData(x86.Arch("sparc"))
	require.Error(t, err)
}

func TestNodeDataReturnsLeavesForSupportedArch(t *testing.T) {
	data, err := NodeData(x86.ArchX86_64)
	require.NoError(t, err)
	require.NotNil(t, data)

	// Lookup treats an all-zero leaf as absent, so this relies on the
	// host reporting a vendor string (leaf 0) and at least one leaf-1
	// feature bit, as any x86-64 host does.
	_, ok := x86.Lookup(data, 0)
	require.True(t, ok)
	_, ok = x86.Lookup(data, 1)
	require.True(t, ok)
}

func TestVendorStringLeafPadsShortVendor(t *testing.T) {
	cpuid, err := vendorStringLeaf("Foo")
	require.NoError(t, err)
	require.Equal(t, uint32(0), cpuid.Function)
}
