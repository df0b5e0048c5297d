package main

import (
	"fmt"
	"path/filepath"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/export"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/history"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/tui"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	var asJSON, asCSV, save, noTUI bool
	var title string

	cmd := &cobra.Command{
		Use:   "analyze <export.txt|export.zip>",
		Short: "Analyze a WhatsApp chat export",
		Long: `Parses a WhatsApp "export chat" file and prints its statistics.

Opens an interactive viewer when stdout is a terminal; prints a plain report
otherwise. --json and --csv write machine-readable output instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON && asCSV {
				return fmt.Errorf("--json and --csv are mutually exclusive")
			}
			path := args[0]
			stats, err := analyzeFile(path)
			if err != nil {
				return err
			}
			if title == "" {
				title = chatTitle(path)
			}

			if save {
				db, err := history.Open(cfg.HistoryDB)
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer db.Close()
				src, err := filepath.Abs(path)
				if err != nil {
					return err
				}
				id, err := db.Save(title, src, stats)
				if err != nil {
					return fmt.Errorf("save analysis: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Saved as #%d\n", id)
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				return export.WriteJSON(out, stats, stdoutIsTerminal())
			case asCSV:
				return export.WriteCSV(out, stats)
			case stdoutIsTerminal() && !noTUI:
				return tui.Run(stats, title)
			default:
				fmt.Fprint(out, render.Report(stats, render.Options{
					Width: terminalWidth(),
					Color: stdoutIsTerminal(),
				}))
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the statistics as JSON")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Print the statistics as CSV")
	cmd.Flags().BoolVar(&save, "save", false, "Store the analysis in the history database")
	cmd.Flags().StringVar(&title, "title", "", "Title for the saved analysis (default: from file name)")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Print the report even on a terminal")

	return cmd
}
