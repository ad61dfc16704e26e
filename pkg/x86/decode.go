// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package x86

import (
	"github.com/stratastor/logger"
	"github.com/stratastor/vcpu/pkg/errors"
)

// DecodeFlags controls optional Decode post-processing.
type DecodeFlags struct {
	// ExpandFeatures adds an explicit feature list alongside the named
	// model: any residual bits not already covered by the chosen
	// model/features are emitted as REQUIRE features.
	ExpandFeatures bool
}

func contains(set []string, name string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}

// Decode iterates catalog models in insertion order, selecting the
// candidate whose residual feature list against data is smallest - the
// closest named model, per spec component F. preferred, if non-empty,
// short-circuits the search the moment it is reached (unless excluded by
// allowModels, in which case cpu.Fallback governs whether that is a hard
// error or a skip).
func Decode(cpu *CPUDef, data *X86Data, allowModels []string, preferred string, flags DecodeFlags, catalog *Map, l logger.Logger) (*CPUDef, error) {
	var best *CPUDef
	var bestFeatureCount = -1

	for _, candidate := range catalog.Models {
		if len(allowModels) > 0 && !contains(allowModels, candidate.Name) {
			if candidate.Name == preferred && cpu.Fallback != FallbackAllow {
				return nil, errors.New(errors.CPUPreferredModelRejected, candidate.Name)
			}
			if l != nil {
				l.Warn("skipping disallowed candidate model", "model", candidate.Name)
			}
			continue
		}

		cpuCandidate, err := DataToCPU(data, candidate, catalog)
		if err != nil {
			return nil, err
		}

		if candidate.Vendor != nil && cpuCandidate.Vendor != "" && candidate.Vendor.Name != cpuCandidate.Vendor {
			continue
		}

		if cpu.Type == CPUTypeHost {
			cpuCandidate.Type = CPUTypeHost
			disabled := false
			for i, f := range cpuCandidate.Features {
				if f.Policy == PolicyDisable {
					disabled = true
					break
				}
				cpuCandidate.Features[i].Policy = PolicyNone
			}
			if disabled {
				continue
			}
		}

		if cpuCandidate.Model == preferred && preferred != "" {
			best = cpuCandidate
			break
		}

		if bestFeatureCount == -1 || len(cpuCandidate.Features) < bestFeatureCount {
			best = cpuCandidate
			bestFeatureCount = len(cpuCandidate.Features)
		}
	}

	if best == nil {
		return nil, errors.New(errors.CPUNoUsableModel, "no catalog model matches given CPUID data")
	}

	if flags.ExpandFeatures {
		resolved, err := ModelFromCPU(best, PolicyRequire, catalog)
		if err != nil {
			return nil, err
		}
		residual := Diff(Copy(data), resolved.Data)
		for _, name := range coverFeatures(residual, catalog) {
			if !hasFeatureNamed(best.Features, name) {
				best.Features = append(best.Features, CPUFeature{Name: name, Policy: PolicyRequire})
			}
		}
	}

	return best, nil
}

func hasFeatureNamed(features []CPUFeature, name string) bool {
	for _, f := range features {
		if f.Name == name {
			return true
		}
	}
	return false
}
