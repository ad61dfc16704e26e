// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package cpu

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratastor/vcpu/pkg/x86"
)

func newCompareCmd() *cobra.Command {
	var hostPath, cpuPath string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a guest CPU definition against a host",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			host, err := loadCPUDef(hostPath)
			if err != nil {
				return err
			}
			guest, err := loadCPUDef(cpuPath)
			if err != nil {
				return err
			}

			result, message, err := x86.Compare(host, guest, catalog)
			if err != nil {
				return err
			}

			if result == x86.CompareIncompatible {
				fmt.Printf("INCOMPATIBLE: %s\n", message)
				return nil
			}
			return printJSON(map[string]string{"result": result.String(), "message": message})
		},
	}

	cmd.Flags().StringVar(&hostPath, "host", "", "Path to the host CPU definition JSON file")
	cmd.Flags().StringVar(&cpuPath, "cpu", "", "Path to the guest CPU definition JSON file")
	cmd.MarkFlagRequired("host")
	cmd.MarkFlagRequired("cpu")

	return cmd
}
