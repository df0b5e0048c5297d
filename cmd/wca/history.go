package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/export"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/history"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/tui"
	"github.com/spf13/cobra"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorDim     = "\033[2m"
)

func colorize(color, s string) string {
	if !stdoutIsTerminal() {
		return s
	}
	return color + s + sColorReset
}

func colorizeSnippet(snippet string) string {
	if !stdoutIsTerminal() {
		return strings.NewReplacer(">>>", "", "<<<", "").Replace(snippet)
	}
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func withHistory(fn func(db *history.DB) error) error {
	db, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer db.Close()
	return fn(db)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid analysis id %q", s)
	}
	return id, nil
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse analyses saved with analyze --save",
		Long:  `Opens a TUI panel of saved analyses (newest first) when stdout is a terminal. Type to filter by title or participant name.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(func(db *history.DB) error {
				if stdoutIsTerminal() {
					return tui.Browse(db)
				}
				entries, err := db.List(history.Options{})
				if err != nil {
					return err
				}
				printEntries(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyDeleteCmd())
	cmd.AddCommand(historySearchCmd())
	return cmd
}

// printEntries writes one TSV line per analysis: id, saved, title,
// messages, participants.
func printEntries(w io.Writer, entries []history.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			e.ID,
			colorize(sColorDim, e.CreatedAt.Local().Format("2006-01-02 15:04")),
			colorize(sColorBlue, e.Title),
			e.TotalMessages,
			strings.Join(e.Participants, ", "),
		)
	}
}

func historyListCmd() *cobra.Command {
	var since string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved analyses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := history.Options{Limit: limit}
			if since != "" {
				t, err := time.ParseInLocation("2006-01-02", since, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --since %q (want YYYY-MM-DD)", since)
				}
				opts.Since = t
			}
			return withHistory(func(db *history.DB) error {
				entries, err := db.List(opts)
				if err != nil {
					return err
				}
				printEntries(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only analyses saved since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 50, "Max results")

	return cmd
}

func historyShowCmd() *cobra.Command {
	var asJSON, noTUI bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withHistory(func(db *history.DB) error {
				e, err := db.Get(id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				switch {
				case asJSON:
					return export.WriteJSON(out, e.Stats, stdoutIsTerminal())
				case stdoutIsTerminal() && !noTUI:
					return tui.Run(e.Stats, e.Title)
				default:
					fmt.Fprintf(out, "#%d %s (%s)\n\n", e.ID, e.Title, e.SourcePath)
					fmt.Fprint(out, render.Report(e.Stats, render.Options{
						Width: terminalWidth(),
						Color: stdoutIsTerminal(),
					}))
					return nil
				}
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the statistics as JSON")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Print the report even on a terminal")

	return cmd
}

func historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withHistory(func(db *history.DB) error {
				if err := db.Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d\n", id)
				return nil
			})
		},
	}
}

func historySearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search saved analyses by title or participant name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withHistory(func(db *history.DB) error {
				results, err := db.Search(query, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(results) == 0 {
					fmt.Fprintln(cmd.ErrOrStderr(), "No results found.")
					return nil
				}
				for _, r := range results {
					fmt.Fprintf(out, "%d\t%s\t%s\n",
						r.ID,
						colorize(sColorBlue, r.Title),
						colorizeSnippet(r.Snippet),
					)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Max results")

	return cmd
}
