// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package x86

// testLeaf is the single CPUID leaf every hand-built test feature lives
// in, keeping the fixtures small and legible.
const testLeaf = 1

func bit(n uint) uint32 { return 1 << n }

// featureCpuid returns a leaf-1 Cpuid with only the given ecx bit set.
func featureCpuid(ecxBit uint) Cpuid {
	return Cpuid{Function: testLeaf, Ecx: bit(ecxBit)}
}

// buildTestCatalog returns a small, fixed catalog mirroring spec.md §8's
// seed scenarios: vendor Intel, features lm/sse4.2/avx/aes/svm, and a
// Nehalem model built from lm+sse4.2.
func buildTestCatalog(t testingT) *Map {
	m := NewMap()

	must(t, m.AddVendor(VendorProps{Name: "Intel", String: "GenuineIntel"}))

	must(t, m.AddFeature(FeatureProps{Name: "lm", Cpuids: []Cpuid{featureCpuid(0)}}))
	must(t, m.AddFeature(FeatureProps{Name: "sse4.2", Cpuids: []Cpuid{featureCpuid(1)}}))
	must(t, m.AddFeature(FeatureProps{Name: "avx", Cpuids: []Cpuid{featureCpuid(2)}}))
	must(t, m.AddFeature(FeatureProps{Name: "aes", Cpuids: []Cpuid{featureCpuid(3)}}))
	must(t, m.AddFeature(FeatureProps{Name: "svm", Cpuids: []Cpuid{featureCpuid(4)}}))

	must(t, m.AddModel(ModelProps{
		Name:         "Nehalem",
		Vendor:       "Intel",
		FeatureNames: []string{"lm", "sse4.2"},
	}))

	return m
}

// testingT is the subset of *testing.T this helper needs, so it can be
// called from table-driven setup without importing "testing" into a
// non-_test.go file.
type testingT interface {
	Fatalf(format string, args ...any)
	Helper()
}

func must(t testingT, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func cpuWithFeatures(typ CPUType, model string, features ...CPUFeature) *CPUDef {
	return &CPUDef{Type: typ, Model: model, Features: features}
}

func require(name string) CPUFeature  { return CPUFeature{Name: name, Policy: PolicyRequire} }
func optional(name string) CPUFeature { return CPUFeature{Name: name, Policy: PolicyOptional} }
func disable(name string) CPUFeature  { return CPUFeature{Name: name, Policy: PolicyDisable} }
func forbid(name string) CPUFeature   { return CPUFeature{Name: name, Policy: PolicyForbid} }
func force(name string) CPUFeature    { return CPUFeature{Name: name, Policy: PolicyForce} }
