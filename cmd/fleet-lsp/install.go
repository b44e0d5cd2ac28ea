package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInstallCommand() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install or update the language server binary",
		Long: `Install or update the fleet-schema-gen binary from GitHub releases.

If the installed version already matches the latest release that ships
this binary, nothing is downloaded. A failed update keeps the previously
installed binary in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, manager, err := setup(cmd.Context())
			if err != nil {
				return err
			}

			if check {
				current, latest, available := manager.UpdateAvailable(cmd.Context())
				switch {
				case current == "":
					fmt.Fprintln(cmd.OutOrStdout(), "no managed install found")
				case available:
					fmt.Fprintf(cmd.OutOrStdout(), "update available: %s -> %s\n", current, latest)
				case latest == "":
					fmt.Fprintf(cmd.OutOrStdout(), "installed %s, release lookup unavailable\n", current)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "up to date: %s\n", current)
				}
				return nil
			}

			return adapter.InstallOrUpdate(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check for an available update without installing")

	return cmd
}
