package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/dates"
	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newUndoCmd() *cobra.Command {
	var on string

	cmd := &cobra.Command{
		Use:   "undo <id>",
		Short: "Undo a completion (deducts the awarded XP)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var day dates.Day
			if on != "" {
				day, err = dates.Parse(on)
				if err != nil {
					return err
				}
			}

			res, err := svc.UncompleteHabit(ctx, args[0], day)
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					ui.Warn.Render(ui.IconUndo+" Unmarked"),
					ui.Muted.Render(res.Day.Key()),
					ui.Muted.Render(fmt.Sprintf("(-%d XP)", res.XPDeducted)))
				if res.LeveledDown {
					fmt.Fprintf(cmd.OutOrStdout(), "%s Level %d → %d\n", ui.BadgeLevelDown, res.LevelBefore, res.LevelAfter)
				}
				return nil
			}
			var notFound engine.NotFoundError
			if !errors.As(err, &notFound) {
				return err
			}

			if on != "" {
				return err
			}
			qres, qerr := svc.RestoreQuest(ctx, args[0])
			if qerr != nil {
				var alsoNotFound engine.NotFoundError
				if errors.As(qerr, &alsoNotFound) {
					return err
				}
				return qerr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				ui.Warn.Render(ui.IconUndo+" Quest restored"),
				ui.Muted.Render(fmt.Sprintf("(-%d XP)", qres.XPDeducted)))
			if qres.LeveledDown {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Level %d → %d\n", ui.BadgeLevelDown, qres.LevelBefore, qres.LevelAfter)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Day to unmark for habits (YYYY-MM-DD, default today)")

	return cmd
}
