package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/export"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export <export.txt|export.zip>",
		Short: "Write the statistics of an export to a CSV or JSON file",
		Long: `Analyzes an export and writes the result to --out. Without --out the file
goes to export_dir from the config, named after the export. Use --out - for
stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}
			stats, err := analyzeFile(args[0])
			if err != nil {
				return err
			}

			if out == "" {
				out = filepath.Join(cfg.ExportDir, chatTitle(args[0])+"."+format)
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "-" {
				if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
					return fmt.Errorf("create export dir: %w", err)
				}
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create export: %w", err)
				}
				defer f.Close()
				w = f
			}

			if format == "csv" {
				err = export.WriteCSV(w, stats)
			} else {
				err = export.WriteJSON(w, stats, true)
			}
			if err != nil {
				return err
			}
			if out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (csv/json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path, - for stdout")

	return cmd
}
