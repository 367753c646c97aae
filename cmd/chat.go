package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/trknhr/ghostchat/internal/logger"
	"github.com/trknhr/ghostchat/internal/model"
	"github.com/trknhr/ghostchat/internal/model/ngram"
	"github.com/trknhr/ghostchat/internal/tui"
)

func newChatCmd(a *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd, plain)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "use a plain line prompt instead of the TUI")
	return cmd
}

func (a *app) runChat(cmd *cobra.Command, plain bool) error {
	ctx := cmd.Context()
	text, err := a.loadCorpus(ctx)
	if err != nil {
		return err
	}
	events := model.GenerateModel(text, a.cfg.Model)
	name := a.cfg.Model.Name

	if plain {
		return a.runPlainChat(cmd, events)
	}

	// Log lines on stderr would tear the alternate screen.
	defer logger.DetachStderr()()

	session := tui.NewSession(tui.SessionConfig{
		Name:   name,
		Events: events,
		NewAnswerer: func(models *ngram.Collection) tui.Answerer {
			return model.NewGenerator(models, a.cfg.Model)
		},
		Transcripts: a.transcripts,
	})
	p := tea.NewProgram(session, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return session.Err()
}

func (a *app) runPlainChat(cmd *cobra.Command, events <-chan model.ModelInitEvent) error {
	out := cmd.OutOrStdout()
	name := a.cfg.Model.Name

	fmt.Fprintf(out, "Training for %s has begun.\n", name)
	var models *ngram.Collection
	for ev := range events {
		switch ev.Status {
		case model.ModelBuilding:
			fmt.Fprint(out, "\r"+tui.ProgressBar(ev.Step, ev.Total))
		case model.ModelReady:
			models = ev.Models
		case model.ModelError:
			fmt.Fprintln(out)
			return ev.Err
		}
	}
	if models == nil {
		return fmt.Errorf("model build for %s ended without a result", name)
	}
	fmt.Fprintln(out, "\nTraining complete.")

	gen := model.NewGenerator(models, a.cfg.Model)
	return tui.RunREPL(cmd.Context(), cmd.InOrStdin(), out, name, gen, a.transcripts)
}
