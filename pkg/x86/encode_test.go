// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package x86

import "testing"

// S6 - Baseline of two hosts.
func TestS6BaselineTwoHosts(t *testing.T) {
	cat := buildTestCatalog(t)
	hostA := &CPUDef{Type: CPUTypeHost, Vendor: "Intel", Features: []CPUFeature{require("lm"), require("sse4.2"), require("avx")}}
	hostB := &CPUDef{Type: CPUTypeHost, Vendor: "Intel", Features: []CPUFeature{require("lm"), require("sse4.2"), require("aes")}}

	result, err := Baseline([]*CPUDef{hostA, hostB}, nil, BaselineFlags{}, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Vendor != "Intel" {
		t.Fatalf("expected vendor Intel, got %q", result.Vendor)
	}
	if result.Model != "Nehalem" {
		t.Fatalf("expected closest model Nehalem, got %q", result.Model)
	}
	for _, f := range result.Features {
		if f.Name == "avx" || f.Name == "aes" {
			t.Fatalf("baseline must not retain host-specific extras, got %+v", f)
		}
	}
}

func TestBaselineCommutative(t *testing.T) {
	cat := buildTestCatalog(t)
	hostA := &CPUDef{Type: CPUTypeHost, Vendor: "Intel", Features: []CPUFeature{require("lm"), require("sse4.2"), require("avx")}}
	hostB := &CPUDef{Type: CPUTypeHost, Vendor: "Intel", Features: []CPUFeature{require("lm"), require("sse4.2"), require("aes")}}

	r1, err := Baseline([]*CPUDef{hostA, hostB}, nil, BaselineFlags{}, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := Baseline([]*CPUDef{hostB, hostA}, nil, BaselineFlags{}, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r1.Model != r2.Model || r1.Vendor != r2.Vendor {
		t.Fatalf("baseline must be order-independent, got %+v vs %+v", r1, r2)
	}
}

func TestBaselineEmptyOnDisjointInputs(t *testing.T) {
	cat := buildTestCatalog(t)
	hostA := &CPUDef{Type: CPUTypeHost, Features: []CPUFeature{require("avx")}}
	hostB := &CPUDef{Type: CPUTypeHost, Features: []CPUFeature{require("aes")}}

	_, err := Baseline([]*CPUDef{hostA, hostB}, nil, BaselineFlags{}, cat)
	if err == nil {
		t.Fatalf("expected CPUs are incompatible error on disjoint inputs")
	}
}

func TestBaselineSuppressesVendorOnMixedInputs(t *testing.T) {
	cat := buildTestCatalog(t)
	hostA := &CPUDef{Type: CPUTypeHost, Vendor: "Intel", Features: []CPUFeature{require("lm"), require("sse4.2")}}
	hostB := &CPUDef{Type: CPUTypeHost, Features: []CPUFeature{require("lm"), require("sse4.2")}}

	result, err := Baseline([]*CPUDef{hostA, hostB}, nil, BaselineFlags{}, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Vendor != "" {
		t.Fatalf("baseline must suppress vendor when any input lacked one, got %q", result.Vendor)
	}
}

func TestBaselineVendorMismatch(t *testing.T) {
	cat := buildTestCatalog(t)
	hostA := &CPUDef{Type: CPUTypeHost, Vendor: "Intel", Features: []CPUFeature{require("lm")}}
	hostB := &CPUDef{Type: CPUTypeHost, Vendor: "AMD", Features: []CPUFeature{require("lm")}}

	_, err := Baseline([]*CPUDef{hostA, hostB}, nil, BaselineFlags{}, cat)
	if err == nil {
		t.Fatalf("expected vendor mismatch error")
	}
}

func TestEncodeVendor(t *testing.T) {
	cat := buildTestCatalog(t)
	cpu := &CPUDef{Type: CPUTypeGuest, Model: "Nehalem", Vendor: "Intel"}

	res, err := Encode(cpu, EncodeRequest{Require: true, Vendor: true}, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nehalem, _ := cat.FindModel("Nehalem")
	if !IsSubset(res.Require, nehalem.Data) || !IsSubset(nehalem.Data, res.Require) {
		t.Fatalf("require output must equal Nehalem.Data")
	}
	if res.Vendor == nil || IsEmpty(res.Vendor) {
		t.Fatalf("vendor output must be populated when requested and resolvable")
	}
}

func TestUpdateCustomPromotesOptionalFeatures(t *testing.T) {
	cat := buildTestCatalog(t)
	host := &CPUDef{Type: CPUTypeHost, Features: []CPUFeature{require("lm"), require("sse4.2")}}
	guest := &CPUDef{Type: CPUTypeGuest, Mode: ModeCustom, Features: []CPUFeature{optional("sse4.2"), optional("avx")}}

	if err := Update(guest, host, cat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sse, avx *CPUFeature
	for i := range guest.Features {
		switch guest.Features[i].Name {
		case "sse4.2":
			sse = &guest.Features[i]
		case "avx":
			avx = &guest.Features[i]
		}
	}
	if sse == nil || sse.Policy != PolicyRequire {
		t.Fatalf("sse4.2 present on host must be promoted to REQUIRE, got %+v", sse)
	}
	if avx == nil || avx.Policy != PolicyDisable {
		t.Fatalf("avx absent from host must become DISABLE, got %+v", avx)
	}
}

func TestUpdateHostModelPreservesFeatures(t *testing.T) {
	cat := buildTestCatalog(t)
	host := &CPUDef{Type: CPUTypeHost, Model: "Nehalem", Vendor: "Intel", Features: []CPUFeature{require("lm")}}
	guest := &CPUDef{Type: CPUTypeGuest, Mode: ModeHostModel, Features: []CPUFeature{forbid("svm")}}

	if err := Update(guest, host, cat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if guest.Model != "Nehalem" || guest.Vendor != "Intel" {
		t.Fatalf("host-model update must replace model/vendor, got %+v", guest)
	}
	found := false
	for _, f := range guest.Features {
		if f.Name == "svm" && f.Policy == PolicyForbid {
			found = true
		}
	}
	if !found {
		t.Fatalf("host-model update must reapply the guest's own saved features, got %+v", guest.Features)
	}
}
