package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trknhr/ghostchat/internal/corpus"
	"github.com/trknhr/ghostchat/internal/model"
	"github.com/trknhr/ghostchat/internal/worker"
)

func newCorpusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the dialogue corpus",
	}
	cmd.AddCommand(
		newCorpusImportCmd(a),
		newCorpusStatsCmd(a),
		newCorpusSearchCmd(a),
	)
	return cmd
}

func newCorpusImportCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Import corpus files into the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireDB(); err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			for _, path := range args {
				w := worker.NewCorpusSyncWorker(a.corpus, a.meta, path, force)
				if !w.NeedsReload(ctx) {
					fmt.Fprintf(out, "⏭️  %s unchanged since last import\n", w.Path())
					continue
				}
				if err := w.Sync(ctx); err != nil {
					return fmt.Errorf("failed to import %s: %w", path, err)
				}
				fmt.Fprintf(out, "✅ imported %s\n", w.Path())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "re-import even if the file is unchanged")
	return cmd
}

func newCorpusStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show corpus and n-gram table sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.loadCorpus(cmd.Context())
			if err != nil {
				return err
			}
			models, err := model.Wait(model.GenerateModel(text, a.cfg.Model))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			stats := corpus.Summarize(corpus.Parse(text))
			fmt.Fprintf(out, "Dialogues: %d\n", stats.Dialogues)

			speakers := make([]string, 0, len(stats.Turns))
			for s := range stats.Turns {
				speakers = append(speakers, s)
			}
			sort.Strings(speakers)
			for _, s := range speakers {
				fmt.Fprintf(out, "Turns (%s): %d\n", s, stats.Turns[s])
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "%-6s | %-9s | %s\n", "Order", "Contexts", "Continuations")
			fmt.Fprintln(out, "───────┼───────────┼──────────────")
			for _, s := range models.Stats() {
				fmt.Fprintf(out, "%-6d | %-9d | %d\n", s.Order, s.Contexts, s.Continuations)
			}
			return nil
		},
	}
}

func newCorpusSearchCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Full-text search over imported dialogues",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireDB(); err != nil {
				return err
			}
			matches, err := a.corpus.Search(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No matching dialogues.")
				return nil
			}
			for _, m := range matches {
				fmt.Fprintf(out, "%s#%d\n", m.Source, m.Position)
				for _, d := range corpus.Parse(m.Body) {
					for _, line := range strings.Split(d.String(), "\n") {
						fmt.Fprintf(out, "  %s\n", line)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of results")
	return cmd
}
