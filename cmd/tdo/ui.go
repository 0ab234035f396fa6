package main

import (
	"github.com/spf13/cobra"

	"github.com/eklerner/tdo/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive terminal interface",
	Args:  cobra.NoArgs,
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	// The TUI has its own login screen, so no session is required here.
	return tui.Run(cmd.Context(), a.client, a.sessions)
}
