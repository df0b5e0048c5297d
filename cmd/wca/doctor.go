package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/history"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/load"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [dir]",
		Short: "Self-check: config, history DB, and exports found under dir",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "=== Config ===")
			if _, err := os.Stat(cfg.Path()); err != nil {
				fmt.Fprintf(out, "  File: %s (not found, using defaults)\n", cfg.Path())
			} else {
				fmt.Fprintf(out, "  File: %s (OK)\n", cfg.Path())
			}
			fmt.Fprintf(out, "  Session gap: %s\n", cfg.SessionGap())
			fmt.Fprintf(out, "  Fix encoding: %v\n", cfg.FixEncoding)

			root := cfg.ExportDir
			if len(args) == 1 {
				root = args[0]
			}
			fmt.Fprintf(out, "\n=== Exports under %s ===\n", root)
			checkDir(out, root)
			files, err := load.FindExports(root)
			if err != nil {
				fmt.Fprintf(out, "  scan error: %v\n", err)
			} else {
				txt, zip := 0, 0
				for _, f := range files {
					if f.Kind == "zip" {
						zip++
					} else {
						txt++
					}
				}
				fmt.Fprintf(out, "  Text exports: %d\n", txt)
				fmt.Fprintf(out, "  Zip exports:  %d\n", zip)
			}

			fmt.Fprintln(out, "\n=== History ===")
			fmt.Fprintf(out, "  Path: %s\n", cfg.HistoryDB)
			if _, err := os.Stat(cfg.HistoryDB); os.IsNotExist(err) {
				fmt.Fprintln(out, "  Status: NOT FOUND (run 'wca analyze --save' first)")
				return nil
			}

			db, err := history.Open(cfg.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer db.Close()

			n, err := db.Count()
			if err != nil {
				return fmt.Errorf("count analyses: %w", err)
			}
			ver, err := db.SchemaVersion()
			if err != nil {
				return fmt.Errorf("schema version: %w", err)
			}
			fmt.Fprintf(out, "  Analyses: %d\n", n)
			fmt.Fprintf(out, "  Schema version: %s\n", ver)

			if info, err := os.Stat(cfg.HistoryDB); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Fprintf(out, "\n=== DB Size: %.1f MB ===\n", sizeMB)
			}
			return nil
		},
	}
}

func checkDir(w io.Writer, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "  %s (NOT FOUND)\n", path)
	} else if !info.IsDir() {
		fmt.Fprintf(w, "  %s (NOT A DIRECTORY)\n", path)
	} else {
		fmt.Fprintf(w, "  %s (OK)\n", path)
	}
}
