package cmd

import (
	"github.com/spf13/cobra"
	"github.com/stratastor/vcpu/cmd/config"
	"github.com/stratastor/vcpu/cmd/cpu"
	"github.com/stratastor/vcpu/cmd/health"
	"github.com/stratastor/vcpu/cmd/serve"
	"github.com/stratastor/vcpu/cmd/version"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vcpu",
		Short: "vcpu: StrataSTOR CPU compatibility engine",
	}

	rootCmd.AddCommand(serve.NewServeCmd())
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(health.NewHealthCmd())
	rootCmd.AddCommand(config.NewConfigCmd())
	rootCmd.AddCommand(cpu.NewCPUCmd())

	return rootCmd
}
