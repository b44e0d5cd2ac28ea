package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/headmin/fleet-editor-extensions/internal/binary"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Width(10)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the resolved binary path, source, and version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, manager, err := setup(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			result := manager.Resolve(cmd.Context())

			if !result.Found() {
				fmt.Fprintln(out, warnStyle.Render(binary.Name+" not found"))
				fmt.Fprintln(out, "run 'fleet-lsp install' to download it")
				return nil
			}

			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("binary"), okStyle.Render(result.Path))
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("source"), result.Source)
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("version"), manager.CurrentVersion(cmd.Context()))
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("storage"), manager.StorageDir())

			if current, latest, available := manager.UpdateAvailable(cmd.Context()); available {
				fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("update available: %s -> %s", current, latest)))
			}

			return nil
		},
	}
}
