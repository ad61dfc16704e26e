// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package cpu

import (
	"github.com/spf13/cobra"

	"github.com/stratastor/vcpu/pkg/x86"
)

func newBaselineCmd() *cobra.Command {
	var cpuPaths, allowModels []string
	var expandFeatures bool

	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Compute a common-denominator CPU definition over multiple hosts",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			cpus := make([]*x86.CPUDef, 0, len(cpuPaths))
			for _, path := range cpuPaths {
				cpuDef, err := loadCPUDef(path)
				if err != nil {
					return err
				}
				cpus = append(cpus, cpuDef)
			}

			flags := x86.BaselineFlags{ExpandFeatures: expandFeatures}
			result, err := x86.BaselineCPU(cpus, allowModels, flags, catalog)
			if err != nil {
				return err
			}

			return printJSON(result)
		},
	}

	cmd.Flags().StringSliceVar(&cpuPaths, "cpus", nil, "Paths to the host CPU definition JSON files (repeatable or comma-separated)")
	cmd.Flags().StringSliceVar(&allowModels, "allow-models", nil, "Restrict the resulting model name to these candidates")
	cmd.Flags().BoolVar(&expandFeatures, "expand-features", false, "Expand residual features beyond the matched model")
	cmd.MarkFlagRequired("cpus")

	return cmd
}
