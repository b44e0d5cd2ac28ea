// Command fleet-lsp provisions and runs the fleet-schema-gen language
// server for editor integrations.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/headmin/fleet-editor-extensions/internal/binary"
	"github.com/headmin/fleet-editor-extensions/internal/config"
	"github.com/headmin/fleet-editor-extensions/internal/host"
	"github.com/headmin/fleet-editor-extensions/internal/platform"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	cfgFile    string
	storageDir string
	verbose    bool
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "fleet-lsp",
		Short: "Provision and run the fleet-schema-gen language server",
		Long: `fleet-lsp locates, downloads, and launches the fleet-schema-gen
language server on behalf of editor integrations.

Binary resolution tries, in order: the configured binary_path, the
executable search path, well-known install directories, a previous
install in the package storage directory, and finally a download from
GitHub releases.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/fleet-lsp/fleet-lsp.yaml)")
	root.PersistentFlags().StringVar(&storageDir, "storage-dir", "", "override the package storage directory")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newInstallCommand())
	root.AddCommand(newStatusCommand())
	root.AddCommand(newVersionCommand())
	root.AddCommand(newEnvCommand())
	root.AddCommand(newRunCommand())

	return root
}

// setup builds the logger, settings, manager, and host adapter shared by
// every subcommand.
func setup(ctx context.Context) (*host.Adapter, *binary.Manager, error) {
	settings, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if storageDir != "" {
		settings.StorageDir = storageDir
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          config.PackageName,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else if level, err := log.ParseLevel(settings.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	info, err := platform.Detect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("detect platform: %w", err)
	}
	logger.Debug("platform detected", "os", info.OS, "machine", info.Machine, "tag", info.Tag)

	manager, err := binary.NewManager(binary.Config{
		Settings: settings,
		Platform: info,
		Logger:   logger,
	})
	if err != nil {
		return nil, nil, err
	}

	return host.NewAdapter(manager, logger), manager, nil
}
