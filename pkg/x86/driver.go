// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package x86 implements the x86 CPU feature-compatibility engine: a
// pure, single-threaded, stateless CPUID bit-set algebra and
// model/feature resolver. It never touches hardware or parses XML
// itself - every entry point takes a populated *Map catalog built by a
// caller-owned loader (see pkg/catalogxml) and, where raw host CPUID
// data is needed, a caller-supplied probe (see pkg/hostprobe).
package x86

import "github.com/stratastor/vcpu/pkg/errors"

// Compare is the compare() driver operation of spec §6: is cpu
// compatible with host, and how.
func Compare(host *CPUDef, cpu *CPUDef, catalog *Map) (CompareResult, string, error) {
	if catalog == nil {
		return CompareError, "", errNilCatalog
	}
	return CompareCPU(host, cpu, catalog)
}

// DecodeCPU is the decode() driver operation of spec §6: given raw
// CPUID data, resolve the closest named model plus residual features
// and mutate cpu's Model/Vendor/Features accordingly.
func DecodeCPU(cpu *CPUDef, data *X86Data, allowModels []string, preferred string, flags DecodeFlags, catalog *Map) error {
	if catalog == nil {
		return errNilCatalog
	}
	decoded, err := Decode(cpu, data, allowModels, preferred, flags, catalog, nil)
	if err != nil {
		return err
	}
	cpu.Model = decoded.Model
	cpu.Vendor = decoded.Vendor
	cpu.Features = decoded.Features
	if cpu.Type == "" {
		cpu.Type = decoded.Type
	}
	return nil
}

// EncodeCPU is the encode() driver operation of spec §6.
func EncodeCPU(arch Arch, cpu *CPUDef, req EncodeRequest, catalog *Map) (*EncodeResult, error) {
	if catalog == nil {
		return nil, errNilCatalog
	}
	cpu.Arch = arch
	return Encode(cpu, req, catalog)
}

// BaselineCPU is the baseline() driver operation of spec §6.
func BaselineCPU(cpus []*CPUDef, allowModels []string, flags BaselineFlags, catalog *Map) (*CPUDef, error) {
	if catalog == nil {
		return nil, errNilCatalog
	}
	return Baseline(cpus, allowModels, flags, catalog)
}

// UpdateCPU is the update() driver operation of spec §6.
func UpdateCPU(guest *CPUDef, host *CPUDef, catalog *Map) error {
	if catalog == nil {
		return errNilCatalog
	}
	return Update(guest, host, catalog)
}

// HasFeature is the hasFeature() driver operation of spec §6: returns 1
// if name is present in data, 0 if absent, -1 if name is not a known
// catalog feature.
func HasFeature(data *X86Data, name string, catalog *Map) (int, error) {
	if catalog == nil {
		return -1, errNilCatalog
	}
	feat, ok := catalog.FindFeature(name)
	if !ok {
		return -1, errors.New(errors.CPUUnknownFeature, name)
	}
	if IsEmpty(feat.Data) {
		return -1, errors.New(errors.CPUUnknownFeature, name)
	}
	if IsSubset(data, feat.Data) {
		return 1, nil
	}
	return 0, nil
}

// HostProbe reads the running host's raw CPUID leaves for arch. It is
// the narrow seam pkg/hostprobe implements, kept out of this package to
// preserve spec §1's "invocation of the hardware CPUID instruction...
// assumed to be a platform-specific routine" boundary.
type HostProbe func(arch Arch) (*X86Data, error)

// NodeData is the nodeData() driver operation of spec §6: freshly-
// measured host CPUID data, via a caller-supplied probe.
func NodeData(probe HostProbe, arch Arch) (*X86Data, error) {
	if probe == nil {
		return nil, errors.New(errors.CPUProbeFailed, "no host CPUID probe configured")
	}
	return probe(arch)
}
