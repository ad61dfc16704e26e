// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package cpu

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stratastor/vcpu/config"
	"github.com/stratastor/vcpu/pkg/catalogxml"
	"github.com/stratastor/vcpu/pkg/x86"
)

// NewCPUCmd is the "vcpu cpu" command group: one subcommand per
// spec.md §6 driver operation.
func NewCPUCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cpu",
		Short: "Inspect and transform CPU compatibility definitions",
	}

	cmd.PersistentFlags().String("catalog", "", "Path to the CPU catalog XML document (defaults to the configured catalog.path)")

	cmd.AddCommand(newCompareCmd())
	cmd.AddCommand(newDecodeCmd())
	cmd.AddCommand(newEncodeCmd())
	cmd.AddCommand(newBaselineCmd())
	cmd.AddCommand(newUpdateCmd())

	return cmd
}

func loadCatalog(cmd *cobra.Command) (*x86.Map, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = config.GetConfig().Catalog.Path
	}
	return catalogxml.LoadFile(path)
}

func loadCPUDef(path string) (*x86.CPUDef, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cpu x86.CPUDef
	if err := json.Unmarshal(b, &cpu); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cpu, nil
}

func loadX86Data(path string) (*x86.X86Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data x86.X86Data
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &data, nil
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
