// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package cpu

import (
	"github.com/spf13/cobra"

	"github.com/stratastor/vcpu/pkg/x86"
)

func newDecodeCmd() *cobra.Command {
	var cpuPath, dataPath, preferred string
	var allowModels []string
	var expandFeatures bool

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Resolve raw CPUID data into a named model plus residual features",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			data, err := loadX86Data(dataPath)
			if err != nil {
				return err
			}

			var cpuDef x86.CPUDef
			if cpuPath != "" {
				loaded, err := loadCPUDef(cpuPath)
				if err != nil {
					return err
				}
				cpuDef = *loaded
			} else {
				cpuDef = x86.CPUDef{Type: x86.CPUTypeHost}
			}

			flags := x86.DecodeFlags{ExpandFeatures: expandFeatures}
			if err := x86.DecodeCPU(&cpuDef, data, allowModels, preferred, flags, catalog); err != nil {
				return err
			}

			return printJSON(cpuDef)
		},
	}

	cmd.Flags().StringVar(&cpuPath, "cpu", "", "Path to a starting CPU definition JSON file (optional, defaults to an empty HOST definition)")
	cmd.Flags().StringVar(&dataPath, "data", "", "Path to the raw CPUID data JSON file")
	cmd.Flags().StringVar(&preferred, "preferred", "", "Preferred model name")
	cmd.Flags().StringSliceVar(&allowModels, "allow-models", nil, "Restrict candidates to these model names")
	cmd.Flags().BoolVar(&expandFeatures, "expand-features", false, "Expand residual features beyond the matched model")
	cmd.MarkFlagRequired("data")

	return cmd
}
