package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/headmin/fleet-editor-extensions/internal/binary"
	"github.com/headmin/fleet-editor-extensions/internal/host"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Launch the language server on stdio",
		Long: `Resolve the fleet-schema-gen binary, installing it first when no
local copy exists, and launch it in language-server mode with stdio
passed through. Editors configure this command as the server command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			adapter, _, err := setup(ctx)
			if err != nil {
				return err
			}

			server, err := adapter.ServerCommand(ctx)
			if errors.Is(err, binary.ErrNotInstalled) {
				// First use: provision before starting. This path is
				// fail-loud so a broken download halts startup.
				if err := adapter.InstallOrUpdate(ctx); err != nil {
					return err
				}
				server, err = adapter.ServerCommand(ctx)
			}
			if err != nil {
				return err
			}

			// One-shot deferred check, mirroring the editor plugin's
			// load-time hook: log which binary is in use, no retries.
			adapter.StartBackgroundCheck(ctx, host.DefaultCheckDelay)

			server.Stdin = os.Stdin
			server.Stdout = os.Stdout
			server.Stderr = os.Stderr
			return server.Run()
		},
	}
}
