package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show fleet-lsp and server versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, _, err := setup(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "fleet-lsp %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "fleet-schema-gen %s\n", adapter.ServerVersion(cmd.Context()))
			return nil
		},
	}
}
