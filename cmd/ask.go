package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trknhr/ghostchat/internal/model"
)

func newAskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message...>",
		Short: "Print a single reply",
		Example: `
  ghostchat ask hi
  ghostchat ask --seed 42 "how are you"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			models, err := a.buildModels(ctx)
			if err != nil {
				return err
			}

			input := strings.Join(args, " ")
			reply := model.NewGenerator(models, a.cfg.Model).Answer(input)
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			a.saveExchange(ctx, input, reply)
			return nil
		},
	}
}
