package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kvd",
		Short: "kvd is an embedded, log-structured key-value store",
	}

	root.AddCommand(newServeCmd())
	return root
}
