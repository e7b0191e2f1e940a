package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lsrc",
		Short:         "Local tooling for the lsrc API",
		SilenceUsage:  true,
	}
	root.AddCommand(newServeCmd(), newCheckConfigCmd())
	return root
}
