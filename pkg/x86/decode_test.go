// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package x86

import "testing"

// Property 4: round-trip decode/encode - decoding a model's own data
// resolves back to that model with an empty REQUIRE feature set and the
// vendor stripped out.
func TestDecodeRoundTrip(t *testing.T) {
	cat := buildTestCatalog(t)
	for _, m := range cat.Models {
		emptyCPU := &CPUDef{Type: CPUTypeGuest}
		decoded, err := Decode(emptyCPU, m.Data, nil, "", DecodeFlags{}, cat, nil)
		if err != nil {
			t.Fatalf("decode(%s) failed: %v", m.Name, err)
		}
		if decoded.Model != m.Name {
			t.Fatalf("decode must resolve back to %s, got %s", m.Name, decoded.Model)
		}
		for _, f := range decoded.Features {
			if f.Policy == PolicyRequire {
				t.Fatalf("round-trip decode must not emit REQUIRE features, got %+v", f)
			}
		}
	}
}

func TestDecodePreferredShortCircuits(t *testing.T) {
	cat := buildTestCatalog(t)
	nehalem, _ := cat.FindModel("Nehalem")

	cpu := &CPUDef{Type: CPUTypeGuest}
	decoded, err := Decode(cpu, nehalem.Data, nil, "Nehalem", DecodeFlags{}, cat, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Model != "Nehalem" {
		t.Fatalf("expected preferred model Nehalem, got %s", decoded.Model)
	}
}

func TestDecodeNoCandidateErrors(t *testing.T) {
	cat := NewMap()
	cpu := &CPUDef{Type: CPUTypeGuest}
	data := NewX86Data()
	_, err := Decode(cpu, data, nil, "", DecodeFlags{}, cat, nil)
	if err == nil {
		t.Fatalf("expected error when catalog has no models")
	}
}

func TestFeatureNamesStableOrder(t *testing.T) {
	cat := buildTestCatalog(t)
	nehalem, _ := cat.FindModel("Nehalem")
	got := FeatureNames(nehalem.Data, cat, ",")
	if got != "lm,sse4.2" {
		t.Fatalf("feature_names must follow catalog insertion order, got %q", got)
	}
}
