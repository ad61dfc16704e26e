// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package x86

import (
	"strings"
	"testing"
)

// S1 - Identical match.
func TestS1IdenticalMatch(t *testing.T) {
	cat := buildTestCatalog(t)
	host := &CPUDef{Type: CPUTypeHost, Model: "Nehalem"}
	guest := &CPUDef{Type: CPUTypeGuest, Model: "Nehalem", Match: MatchExact}

	res, err := Compute(host, guest, true, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Result != CompareIdentical {
		t.Fatalf("expected IDENTICAL, got %v (%s)", res.Result, res.Message)
	}

	nehalem, _ := cat.FindModel("Nehalem")
	if !IsSubset(res.Data, nehalem.Data) || !IsSubset(nehalem.Data, res.Data) {
		t.Fatalf("synthesized guest data must equal Nehalem.Data")
	}
}

// S2 - Missing required feature.
func TestS2MissingRequiredFeature(t *testing.T) {
	cat := buildTestCatalog(t)
	host := &CPUDef{Type: CPUTypeHost, Features: []CPUFeature{require("lm")}}
	guest := &CPUDef{Type: CPUTypeGuest, Model: "Nehalem"}

	res, err := Compute(host, guest, false, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Result != CompareIncompatible {
		t.Fatalf("expected INCOMPATIBLE, got %v", res.Result)
	}
	if !strings.Contains(res.Message, "sse4.2") {
		t.Fatalf("message must name the missing feature, got %q", res.Message)
	}
}

// S3 - Host extras under STRICT vs EXACT match.
func TestS3HostExtrasStrictVsExact(t *testing.T) {
	cat := buildTestCatalog(t)
	host := &CPUDef{Type: CPUTypeHost, Model: "Nehalem", Features: []CPUFeature{require("avx")}}

	strictGuest := &CPUDef{Type: CPUTypeGuest, Model: "Nehalem", Match: MatchStrict}
	res, err := Compute(host, strictGuest, false, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Result != CompareIncompatible || !strings.Contains(res.Message, "avx") {
		t.Fatalf("STRICT match must reject host extras, got %v %q", res.Result, res.Message)
	}

	exactGuest := &CPUDef{Type: CPUTypeGuest, Model: "Nehalem", Match: MatchExact}
	res2, err := Compute(host, exactGuest, true, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res2.Result != CompareSuperset {
		t.Fatalf("EXACT match must report SUPERSET, got %v", res2.Result)
	}
	nehalem, _ := cat.FindModel("Nehalem")
	if !IsSubset(res2.Data, nehalem.Data) || !IsSubset(nehalem.Data, res2.Data) {
		t.Fatalf("EXACT match must hide host extras from synthesized data")
	}
}

// S4 - Vendor bit on host-passthrough.
func TestS4HostPassthroughVendor(t *testing.T) {
	cat := buildTestCatalog(t)
	host := &CPUDef{Type: CPUTypeHost, Model: "Nehalem", Vendor: "Intel"}
	guest := &CPUDef{Type: CPUTypeGuest, Mode: ModeHostPassthrough}

	if err := Update(guest, host, cat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if guest.Model != "Nehalem" || guest.Vendor != "Intel" || guest.Match != MatchMin {
		t.Fatalf("unexpected guest after host-passthrough update: %+v", guest)
	}
}

// S5 - Forbidden feature present.
func TestS5ForbiddenFeaturePresent(t *testing.T) {
	cat := buildTestCatalog(t)
	host := &CPUDef{Type: CPUTypeHost, Features: []CPUFeature{require("svm")}}
	guest := &CPUDef{Type: CPUTypeGuest, Features: []CPUFeature{forbid("svm")}}

	res, err := Compute(host, guest, false, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Result != CompareIncompatible || !strings.Contains(res.Message, "svm") {
		t.Fatalf("expected INCOMPATIBLE naming svm, got %v %q", res.Result, res.Message)
	}
}

func TestForbidOnHostProperty(t *testing.T) {
	cat := buildTestCatalog(t)
	host := &CPUDef{Type: CPUTypeHost, Features: []CPUFeature{require("svm")}}
	guest := &CPUDef{Type: CPUTypeGuest, Features: []CPUFeature{forbid("svm")}}

	result, _, err := CompareCPU(host, guest, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != CompareIncompatible {
		t.Fatalf("forbid-policy feature present on host must yield INCOMPATIBLE")
	}
}

func TestUnsupportedArch(t *testing.T) {
	cat := buildTestCatalog(t)
	host := &CPUDef{Type: CPUTypeHost, Model: "Nehalem"}
	guest := &CPUDef{Type: CPUTypeGuest, Model: "Nehalem", Arch: "sparc"}

	res, err := Compute(host, guest, false, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Result != CompareIncompatible {
		t.Fatalf("unsupported arch must be INCOMPATIBLE, got %v", res.Result)
	}
}

func TestVendorMismatchIncompatible(t *testing.T) {
	cat := buildTestCatalog(t)
	host := &CPUDef{Type: CPUTypeHost, Model: "Nehalem", Vendor: "Intel"}
	guest := &CPUDef{Type: CPUTypeGuest, Model: "Nehalem", Vendor: "AMD"}

	res, err := Compute(host, guest, false, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Result != CompareIncompatible {
		t.Fatalf("mismatched requested vendor must be INCOMPATIBLE, got %v", res.Result)
	}
}
