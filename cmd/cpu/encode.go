// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package cpu

import (
	"github.com/spf13/cobra"

	"github.com/stratastor/vcpu/pkg/x86"
)

func newEncodeCmd() *cobra.Command {
	var cpuPath, arch string
	var force, require, optional, disable, forbid, vendor bool

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Produce per-policy raw CPUID data sets for a CPU definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			cpuDef, err := loadCPUDef(cpuPath)
			if err != nil {
				return err
			}

			req := x86.EncodeRequest{
				Force: force, Require: require, Optional: optional,
				Disable: disable, Forbid: forbid, Vendor: vendor,
			}

			result, err := x86.EncodeCPU(x86.Arch(arch), cpuDef, req, catalog)
			if err != nil {
				return err
			}

			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&cpuPath, "cpu", "", "Path to the CPU definition JSON file")
	cmd.Flags().StringVar(&arch, "arch", string(x86.ArchX86_64), "Target architecture")
	cmd.Flags().BoolVar(&force, "force", false, "Include FORCE-policy features")
	cmd.Flags().BoolVar(&require, "require", true, "Include REQUIRE-policy features")
	cmd.Flags().BoolVar(&optional, "optional", false, "Include OPTIONAL-policy features")
	cmd.Flags().BoolVar(&disable, "disable", false, "Include DISABLE-policy features")
	cmd.Flags().BoolVar(&forbid, "forbid", false, "Include FORBID-policy features")
	cmd.Flags().BoolVar(&vendor, "vendor", true, "Include the vendor leaf")
	cmd.MarkFlagRequired("cpu")

	return cmd
}
