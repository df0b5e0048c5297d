package main

import (
	"fmt"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/spf13/cobra"
)

func participantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "participants <export.txt|export.zip>",
		Short: "List the senders of an export with their message counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := readChat(args[0])
			if err != nil {
				return err
			}
			counts := make(map[string]int)
			for _, m := range msgs {
				counts[m.Sender]++
			}
			out := cmd.OutOrStdout()
			for _, name := range parse.Participants(msgs) {
				fmt.Fprintf(out, "%s\t%d\n", name, counts[name])
			}
			return nil
		},
	}
}
