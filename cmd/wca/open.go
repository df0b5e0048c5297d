package main

import (
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/history"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/open"
	"github.com/spf13/cobra"
)

func openCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Open the export behind a saved analysis in $EDITOR",
		Long: `Opens the original export of a saved analysis in $EDITOR (less if unset),
positioned at a notable message: --at longest, manipulation, love, apology
or top.`,
		Args: cobra.ExactArgs(1),
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
				line, err := open.Line(e.Stats, open.Target(at))
				if err != nil {
					return err
				}
				return open.Export(e.SourcePath, line)
			})
		},
	}

	cmd.Flags().StringVar(&at, "at", string(open.TargetTop), "Message to jump to (top/longest/manipulation/love/apology)")

	return cmd
}
