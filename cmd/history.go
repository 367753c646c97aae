package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent exchanges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireDB(); err != nil {
				return err
			}
			exchanges, err := a.transcripts.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, e := range exchanges {
				fmt.Fprintf(out, "[%s]\n", e.CreatedAt.Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "  You: %s\n", e.Prompt)
				fmt.Fprintf(out, "  %s: %s\n", a.cfg.Model.Name, e.Reply)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of exchanges to show")
	return cmd
}
