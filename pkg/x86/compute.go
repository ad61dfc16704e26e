// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package x86

import "github.com/stratastor/vcpu/pkg/errors"

// ComputeResult is everything Compute/GuestData produce: a classified
// outcome, an optional synthesized guest CPUID data set, and an optional
// human-readable message for non-success outcomes.
type ComputeResult struct {
	Result  CompareResult
	Data    *X86Data
	Message string
}

// Compute implements spec component E: classify host/guest compatibility
// and, if wantGuestData is set, synthesize the guest's effective CPUID
// data. This is the engine behind both the compare() and guestData()
// driver operations.
func Compute(host *CPUDef, cpu *CPUDef, wantGuestData bool, catalog *Map) (*ComputeResult, error) {
	if cpu.Arch != "" && !cpu.Arch.IsX86() {
		return &ComputeResult{Result: CompareIncompatible, Message: "Unsupported CPU architecture " + string(cpu.Arch)}, nil
	}
	if cpu.Vendor != "" && host.Vendor != cpu.Vendor {
		return &ComputeResult{Result: CompareIncompatible, Message: "CPU vendor " + cpu.Vendor + " requested but host vendor is " + host.Vendor}, nil
	}

	hostModel, err := ModelFromCPU(host, PolicyRequire, catalog)
	if err != nil {
		return nil, err
	}

	cpuForce, err := ModelFromCPU(cpu, PolicyForce, catalog)
	if err != nil {
		return nil, err
	}
	cpuRequire, err := ModelFromCPU(cpu, PolicyRequire, catalog)
	if err != nil {
		return nil, err
	}
	cpuOptional, err := ModelFromCPU(cpu, PolicyOptional, catalog)
	if err != nil {
		return nil, err
	}
	cpuDisable, err := ModelFromCPU(cpu, PolicyDisable, catalog)
	if err != nil {
		return nil, err
	}
	cpuForbid, err := ModelFromCPU(cpu, PolicyForbid, catalog)
	if err != nil {
		return nil, err
	}

	// Step 1: forbid check.
	forbidden := Intersect(cpuForbid.Data, hostModel.Data)
	if !IsEmpty(forbidden) {
		return &ComputeResult{
			Result:  CompareIncompatible,
			Message: "Host CPU provides forbidden features: " + FeatureNames(forbidden, catalog, ", "),
		}, nil
	}

	// Step 2: require normalization - drop anything re-classified away
	// from the base model's implicit REQUIRE policy.
	reclassified := Union(Union(cpuForce.Data, cpuOptional.Data), cpuDisable.Data)
	Subtract(cpuRequire.Data, reclassified)

	// Step 3: require check.
	relation := relate(hostModel.Data, cpuRequire.Data)
	if relation == RelSubset || relation == RelUnrelated {
		missing := Diff(cpuRequire.Data, hostModel.Data)
		return &ComputeResult{
			Result:  CompareIncompatible,
			Message: "Host CPU does not provide required features: " + FeatureNames(missing, catalog, ", "),
		}, nil
	}

	// Step 4: superset check.
	diff := Diff(Diff(Diff(hostModel.Data, cpuOptional.Data), cpuRequire.Data), cpuDisable.Data)
	Subtract(diff, cpuForce.Data)
	result := CompareIdentical
	if !IsEmpty(diff) {
		result = CompareSuperset
	}
	if result == CompareSuperset && cpu.Match == MatchStrict {
		return &ComputeResult{
			Result:  CompareIncompatible,
			Message: "Host CPU provides extra features unsupported in the guest CPU: " + FeatureNames(diff, catalog, ", "),
		}, nil
	}

	out := &ComputeResult{Result: result}

	if wantGuestData {
		guestData := Copy(hostModel.Data)
		if cpu.Match == MatchExact {
			Subtract(guestData, diff)
		}
		UnionInto(guestData, cpuForce.Data)
		Subtract(guestData, cpuDisable.Data)
		out.Data = guestData
	}

	return out, nil
}

// GuestData is Compute run purely for its synthesized data side effect,
// matching the guestData() driver operation: same classification as
// Compare, plus the effective guest CPUID data and diagnostic message.
func GuestData(host *CPUDef, cpu *CPUDef, catalog *Map) (*ComputeResult, error) {
	return Compute(host, cpu, true, catalog)
}

// CompareCPU is the compare() driver operation: classify host/cpu
// compatibility without synthesizing guest data.
func CompareCPU(host *CPUDef, cpu *CPUDef, catalog *Map) (CompareResult, string, error) {
	res, err := Compute(host, cpu, false, catalog)
	if err != nil {
		return CompareError, "", err
	}
	return res.Result, res.Message, nil
}

var errNilCatalog = errors.New(errors.CPUDriverNotReady, "no catalog loaded")
