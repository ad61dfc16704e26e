// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package catalogxml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stratastor/vcpu/pkg/x86"
)

const sampleDoc = `<?xml version="1.0"?>
<cpus>
  <vendor name="Intel" string="GenuineIntel"/>
  <feature name="sse4.2">
    <cpuid eax_in="0x01" ecx="0x00100000"/>
  </feature>
  <feature name="lm">
    <cpuid eax_in="0x80000001" edx="0x20000000"/>
  </feature>
  <model name="Nehalem" usable="yes">
    <vendor name="Intel"/>
    <feature name="sse4.2"/>
    <feature name="lm"/>
  </model>
  <model name="Nehalem-IBRS">
    <model name="Nehalem"/>
    <vendor name="Intel"/>
  </model>
</cpus>`

func TestLoadPopulatesInDocumentOrder(t *testing.T) {
	m := x86.NewMap()
	require.NoError(t, Load(strings.NewReader(sampleDoc), m.AsLoader()))

	require.Len(t, m.Vendors, 1)
	require.Equal(t, "Intel", m.Vendors[0].Name)

	require.Len(t, m.Features, 2)
	require.Equal(t, "sse4.2", m.Features[0].Name)
	require.Equal(t, "lm", m.Features[1].Name)

	require.Len(t, m.Models, 2)
	nehalem, ok := m.FindModel("Nehalem")
	require.True(t, ok)
	require.NotNil(t, nehalem.Vendor)
	require.Equal(t, "Intel", nehalem.Vendor.Name)

	ibrs, ok := m.FindModel("Nehalem-IBRS")
	require.True(t, ok)
	require.True(t, x86.IsSubset(ibrs.Data, nehalem.Data))
}

func TestLoadRejectsMalformedRegister(t *testing.T) {
	doc := `<cpus><feature name="bad"><cpuid eax_in="0x01" ecx="not-hex"/></feature></cpus>`
	m := x86.NewMap()
	err := Load(strings.NewReader(doc), m.AsLoader())
	require.Error(t, err)
}

func TestLoadRejectsUnknownAncestor(t *testing.T) {
	doc := `<cpus><model name="Orphan"><model name="DoesNotExist"/></model></cpus>`
	m := x86.NewMap()
	err := Load(strings.NewReader(doc), m.AsLoader())
	require.Error(t, err)
}

// A catalog error on one element must not prevent later, well-formed
// elements from loading: the element is discarded and the walk
// continues (spec.md §7).
func TestLoadContinuesPastElementErrors(t *testing.T) {
	doc := `<cpus>
  <vendor name="Intel" string="GenuineIntel"/>
  <model name="Orphan"><model name="DoesNotExist"/></model>
  <feature name="lm"><cpuid eax_in="0x80000001" edx="0x20000000"/></feature>
  <model name="Nehalem"><vendor name="Intel"/><feature name="lm"/></model>
</cpus>`
	m := x86.NewMap()
	err := Load(strings.NewReader(doc), m.AsLoader())
	require.Error(t, err, "the unresolved ancestor must still be reported")

	require.Len(t, m.Vendors, 1)
	require.Len(t, m.Features, 1)
	nehalem, ok := m.FindModel("Nehalem")
	require.True(t, ok, "Nehalem must load despite Orphan's failure")
	require.NotNil(t, nehalem.Vendor)
	_, ok = m.FindModel("Orphan")
	require.False(t, ok, "Orphan must be discarded, not partially added")
}
