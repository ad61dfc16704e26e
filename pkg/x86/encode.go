// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package x86

import "github.com/stratastor/vcpu/pkg/errors"

// EncodeRequest selects which per-policy outputs Encode should produce.
type EncodeRequest struct {
	Force    bool `json:"force"`
	Require  bool `json:"require"`
	Optional bool `json:"optional"`
	Disable  bool `json:"disable"`
	Forbid   bool `json:"forbid"`
	Vendor   bool `json:"vendor"`
}

// EncodeResult carries the per-policy CPUID data sets Encode produced.
// Fields are nil unless the corresponding EncodeRequest flag was set.
type EncodeResult struct {
	Force    *X86Data `json:"force,omitempty"`
	Require  *X86Data `json:"require,omitempty"`
	Optional *X86Data `json:"optional,omitempty"`
	Disable  *X86Data `json:"disable,omitempty"`
	Forbid   *X86Data `json:"forbid,omitempty"`
	Vendor   *X86Data `json:"vendor,omitempty"`
}

// Encode implements spec component G's encoder: for each requested
// policy, produce an X86Data via ModelFromCPU. Any failure aborts the
// whole call - partial results are simply discarded since Go's GC frees
// them, satisfying the "no leak on any exit path" contract without
// manual bookkeeping.
func Encode(cpu *CPUDef, req EncodeRequest, catalog *Map) (*EncodeResult, error) {
	out := &EncodeResult{}

	build := func(want bool, policy FeaturePolicy, dst **X86Data) error {
		if !want {
			return nil
		}
		m, err := ModelFromCPU(cpu, policy, catalog)
		if err != nil {
			return err
		}
		*dst = m.Data
		return nil
	}

	if err := build(req.Force, PolicyForce, &out.Force); err != nil {
		return nil, err
	}
	if err := build(req.Require, PolicyRequire, &out.Require); err != nil {
		return nil, err
	}
	if err := build(req.Optional, PolicyOptional, &out.Optional); err != nil {
		return nil, err
	}
	if err := build(req.Disable, PolicyDisable, &out.Disable); err != nil {
		return nil, err
	}
	if err := build(req.Forbid, PolicyForbid, &out.Forbid); err != nil {
		return nil, err
	}

	if req.Vendor && cpu.Vendor != "" {
		v, ok := catalog.FindVendor(cpu.Vendor)
		if !ok {
			return nil, errors.New(errors.CPUUnknownVendor, cpu.Vendor)
		}
		vd := NewX86Data()
		AddCpuid(vd, v.Cpuid)
		out.Vendor = vd
	}

	return out, nil
}

// BaselineFlags controls Baseline behavior.
type BaselineFlags struct {
	// ExpandFeatures is forwarded to the decode step that names the
	// resulting common-denominator model.
	ExpandFeatures bool
}

// Baseline computes a common-denominator CPU definition that runs on
// every host in cpus, per spec component G.
func Baseline(cpus []*CPUDef, allowModels []string, flags BaselineFlags, catalog *Map) (*CPUDef, error) {
	if len(cpus) == 0 {
		return nil, errors.New(errors.CPUEmptyHostSet, "baseline requires at least one host CPU")
	}

	base, err := ModelFromCPU(cpus[0], PolicyRequire, catalog)
	if err != nil {
		return nil, err
	}

	vendor := cpus[0].Vendor
	allHaveVendor := vendor != ""

	for _, cpu := range cpus[1:] {
		m, err := ModelFromCPU(cpu, PolicyRequire, catalog)
		if err != nil {
			return nil, err
		}
		if cpu.Vendor == "" {
			allHaveVendor = false
		} else {
			if cpu.Model != "" {
				if modelDef, ok := catalog.FindModel(cpu.Model); ok && modelDef.Vendor != nil && modelDef.Vendor.Name != cpu.Vendor {
					return nil, errors.New(errors.CPUVendorMismatch, cpu.Vendor)
				}
			}
			if vendor == "" {
				vendor = cpu.Vendor
			} else if vendor != cpu.Vendor {
				return nil, errors.New(errors.CPUVendorMismatch, "CPU vendors do not match")
			}
		}
		IntersectInto(base.Data, m.Data)
	}

	if IsEmpty(base.Data) {
		return nil, errors.New(errors.CPUIncompatible, "CPUs are incompatible")
	}

	if allHaveVendor && vendor != "" {
		if v, ok := catalog.FindVendor(vendor); ok {
			AddCpuid(base.Data, v.Cpuid)
		}
	}

	decoded, err := Decode(&CPUDef{Type: CPUTypeHost}, base.Data, allowModels, "", DecodeFlags{ExpandFeatures: flags.ExpandFeatures}, catalog, nil)
	if err != nil {
		return nil, err
	}
	decoded.Arch = ""
	if !allHaveVendor {
		decoded.Vendor = ""
	}

	return decoded, nil
}

// Update implements spec component G's mode dispatch: rewrite guest in
// place according to guest.Mode, against host.
func Update(guest *CPUDef, host *CPUDef, catalog *Map) error {
	switch guest.Mode {
	case ModeCustom:
		return updateCustom(guest, host, catalog)
	case ModeHostModel:
		return updateHostModel(guest, host, catalog)
	case ModeHostPassthrough:
		return updateHostPassthrough(guest, host, catalog)
	default:
		return errors.New(errors.CPUUnknownMode, string(guest.Mode))
	}
}

func updateCustom(guest *CPUDef, host *CPUDef, catalog *Map) error {
	hostModel, err := ModelFromCPU(host, PolicyRequire, catalog)
	if err != nil {
		return err
	}

	for i, f := range guest.Features {
		if f.Policy != PolicyOptional {
			continue
		}
		featDef, ok := catalog.FindFeature(f.Name)
		if !ok {
			return errors.New(errors.CPUUnknownFeature, f.Name)
		}
		if IsSubset(hostModel.Data, featDef.Data) {
			guest.Features[i].Policy = PolicyRequire
		} else {
			guest.Features[i].Policy = PolicyDisable
		}
	}

	if guest.Match == MatchMin {
		guestModel, err := ModelFromCPU(guest, PolicyRequire, catalog)
		if err != nil {
			return err
		}
		remaining := Diff(hostModel.Data, guestModel.Data)
		for _, name := range coverFeatures(remaining, catalog) {
			if !hasFeatureNamed(guest.Features, name) {
				guest.Features = append(guest.Features, CPUFeature{Name: name, Policy: PolicyRequire})
			}
		}
		guest.Match = MatchExact
	}

	return nil
}

func updateHostModel(guest *CPUDef, host *CPUDef, catalog *Map) error {
	saved := append([]CPUFeature(nil), guest.Features...)

	guest.Model = host.Model
	guest.Vendor = host.Vendor
	guest.Features = append([]CPUFeature(nil), host.Features...)

	for _, f := range saved {
		guest.Features = append(guest.Features, f)
	}

	return nil
}

func updateHostPassthrough(guest *CPUDef, host *CPUDef, catalog *Map) error {
	guest.Model = host.Model
	guest.Vendor = host.Vendor
	guest.Features = append([]CPUFeature(nil), host.Features...)
	guest.Match = MatchMin
	return nil
}
