package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rackwalk/rackwalk/internal/config"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var configPath string
	var output string
	var format string

	cmd := &cobra.Command{
		Use:   "scan [image files...]",
		Short: "Scan label photos from disk into a spreadsheet",
		Long: `Runs one scanning session over the given image files without the HTTP
server: each file goes through the same extract/validate/append pipeline,
and the accumulated inventory is written as a spreadsheet.

Files that fail extraction or validation are reported and skipped; the
rest of the batch still exports.`,
		Example: `  # Scan a directory of label photos into inventory.xlsx
  rackwalk scan shelf-a/*.jpg --output inventory.xlsx

  # Parquet output for analysis tooling
  rackwalk scan *.jpg --format parquet --output inventory.parquet`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			svc, err := newServices(cfg)
			if err != nil {
				return err
			}

			session, err := svc.store.Create()
			if err != nil {
				return err
			}

			failed := 0
			for _, path := range args {
				imageData, err := os.ReadFile(path)
				if err != nil {
					slog.Error("Failed to read image", "path", path, "error", err)
					failed++
					continue
				}

				record, err := svc.pipeline.Capture(cmd.Context(), session.ID, imageData)
				if err != nil {
					slog.Error("Capture failed", "path", path, "error", err)
					failed++
					continue
				}
				slog.Info("Captured",
					"path", path,
					"brand", record.Brand,
					"capacity", record.Capacity,
					"generation", record.Generation,
					"speed", record.Speed)
			}

			var data []byte
			switch format {
			case "xlsx":
				data, err = svc.exporter.Build(session.ID)
			case "parquet":
				data, err = svc.exporter.BuildParquet(session.ID)
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
			if err != nil {
				return fmt.Errorf("failed to build export: %w", err)
			}

			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			items, err := svc.store.Items(session.ID)
			if err != nil {
				return err
			}
			slog.Info("Scan complete", "scanned", len(items), "failed", failed, "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	cmd.Flags().StringVarP(&output, "output", "o", "inventory.xlsx", "Output file path")
	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "Output format: xlsx or parquet")

	return cmd
}
