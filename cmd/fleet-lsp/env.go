package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the variable mapping offered to editor hosts",
		Long: `Print the additional variables exposed for command substitution,
one KEY=VALUE pair per line. Currently this is binary_path, the resolved
server binary (empty when none resolves).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, _, err := setup(cmd.Context())
			if err != nil {
				return err
			}

			vars := adapter.AdditionalVariables(cmd.Context())
			keys := make([]string, 0, len(vars))
			for k := range vars {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, vars[k])
			}
			return nil
		},
	}
}
