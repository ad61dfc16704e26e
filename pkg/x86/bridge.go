// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package x86

import (
	"strings"

	"github.com/stratastor/vcpu/pkg/errors"
)

// ModelFromCPU converts a CPU definition plus a requested feature policy
// into a freshly-owned Model: the named model's data (for REQUIRE) or an
// empty starting point, unioned with every feature on cpu whose policy
// matches. For REQUIRE, HOST-typed definitions include all features
// regardless of their recorded policy; for any other policy a HOST-typed
// definition yields an empty model.
func ModelFromCPU(cpu *CPUDef, policy FeaturePolicy, catalog *Map) (*Model, error) {
	var model *Model

	if policy == PolicyRequire {
		if cpu.Model == "" {
			model = &Model{Data: NewX86Data()}
		} else {
			base, ok := catalog.FindModel(cpu.Model)
			if !ok {
				return nil, errors.New(errors.CPUUnknownModel, cpu.Model)
			}
			model = copyModel(base)
		}
	} else if cpu.Type == CPUTypeHost {
		return &Model{Name: cpu.Model, Data: NewX86Data()}, nil
	} else {
		model = &Model{Name: cpu.Model, Data: NewX86Data()}
	}

	for _, f := range cpu.Features {
		if cpu.Type == CPUTypeGuest && f.Policy != policy {
			continue
		}
		feat, ok := catalog.FindFeature(f.Name)
		if !ok {
			return nil, errors.New(errors.CPUUnknownFeature, f.Name)
		}
		UnionInto(model.Data, feat.Data)
	}

	return model, nil
}

// clearBits clears bits from the leaf at function in data, in place,
// leaving the leaf's Function untouched.
func clearBits(data *X86Data, function uint32, bits Cpuid) {
	basic, index := arrayFor(data, function)
	arr := data.Basic
	if !basic {
		arr = data.Extended
	}
	if index >= uint32(len(arr)) {
		return
	}
	s := slot(data, basic, index)
	f := s.Function
	*s = s.andNot(bits)
	s.Function = f
}

// DataToVendor scans catalog vendors in insertion order and returns the
// first whose Cpuid is a masked subset of the same-function leaf in
// data, clearing those bits from data as a side effect so they are not
// later reported as features.
func DataToVendor(data *X86Data, catalog *Map) (*Vendor, bool) {
	for _, v := range catalog.Vendors {
		leaf, ok := Lookup(data, v.Cpuid.Function)
		if !ok {
			continue
		}
		if leaf.isSubsetOf(v.Cpuid) {
			clearBits(data, v.Cpuid.Function, v.Cpuid)
			return v, true
		}
	}
	return nil, false
}

// coverFeatures greedily scans catalog features in insertion order,
// adding each feature wholly contained in the remaining residual and
// subtracting its bits, per spec §4.F's inner loop.
func coverFeatures(residual *X86Data, catalog *Map) []string {
	var names []string
	for _, f := range catalog.Features {
		if IsEmpty(f.Data) {
			continue
		}
		if IsSubset(residual, f.Data) {
			names = append(names, f.Name)
			Subtract(residual, f.Data)
		}
	}
	return names
}

// DataToCPU converts raw CPUID data plus a chosen model into a GUEST
// CPUDef: the vendor embedded in data is stripped and recorded, and the
// symmetric difference between data and the model's own data is
// rendered as REQUIRE/DISABLE feature lists via greedy feature-covering.
func DataToCPU(data *X86Data, model *Model, catalog *Map) (*CPUDef, error) {
	dataCopy := Copy(data)
	modelCopy := Copy(model.Data)

	cpu := &CPUDef{
		Type:  CPUTypeGuest,
		Model: model.Name,
	}

	if v, ok := DataToVendor(dataCopy, catalog); ok {
		cpu.Vendor = v.Name
	}
	// The model's own data carries no vendor leaf (vendors are attached
	// to CPUDef/Model metadata, not unioned into model data by the
	// loader), so no corresponding strip is needed on modelCopy.

	residualRequire := Diff(dataCopy, modelCopy)
	residualDisable := Diff(modelCopy, dataCopy)

	for _, name := range coverFeatures(residualRequire, catalog) {
		cpu.Features = append(cpu.Features, CPUFeature{Name: name, Policy: PolicyRequire})
	}
	for _, name := range coverFeatures(residualDisable, catalog) {
		cpu.Features = append(cpu.Features, CPUFeature{Name: name, Policy: PolicyDisable})
	}

	return cpu, nil
}

// FeatureNames renders a sep-joined list of every catalog feature fully
// contained in data, in catalog insertion order - used for diagnostic
// messages (e.g. the offending feature list on an INCOMPATIBLE result).
func FeatureNames(data *X86Data, catalog *Map, sep string) string {
	var names []string
	for _, f := range catalog.Features {
		if IsEmpty(f.Data) {
			continue
		}
		if IsSubset(data, f.Data) {
			names = append(names, f.Name)
		}
	}
	return strings.Join(names, sep)
}
