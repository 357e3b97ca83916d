package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rackwalk",
		Short: "Hardware inventory scanner with AI-powered label extraction",
		Long: `Rackwalk turns photos of RAM and SSD labels into a structured inventory.

Walk a rack with a camera, capture labels one at a time into a scanning
session, and export the accumulated inventory as a spreadsheet.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newScanCmd())

	return cmd
}
