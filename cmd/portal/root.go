package main

import "github.com/spf13/cobra"

// newRootCmd builds the base command when called without any subcommands
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "portal",
		Short:        "Investor Portal",
		Long:         `A server-rendered dashboard for investors and their capital commitments.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	return root
}
