// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package cpu

import (
	"github.com/spf13/cobra"

	"github.com/stratastor/vcpu/pkg/x86"
)

func newUpdateCmd() *cobra.Command {
	var guestPath, hostPath string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rewrite a guest CPU definition in place against a host, per its Mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			guest, err := loadCPUDef(guestPath)
			if err != nil {
				return err
			}
			host, err := loadCPUDef(hostPath)
			if err != nil {
				return err
			}

			if err := x86.UpdateCPU(guest, host, catalog); err != nil {
				return err
			}

			return printJSON(guest)
		},
	}

	cmd.Flags().StringVar(&guestPath, "guest", "", "Path to the guest CPU definition JSON file")
	cmd.Flags().StringVar(&hostPath, "host", "", "Path to the host CPU definition JSON file")
	cmd.MarkFlagRequired("guest")
	cmd.MarkFlagRequired("host")

	return cmd
}
