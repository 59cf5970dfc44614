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

func newDoneCmd() *cobra.Command {
	var on string

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a habit (for a day) or a quest",
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

			res, err := svc.CompleteHabit(ctx, args[0], day)
			if err == nil {
				line := fmt.Sprintf("%s %s %s",
					ui.Good.Render(ui.IconDone+" Completed"),
					ui.Muted.Render(res.Day.Key()),
					ui.Muted.Render(fmt.Sprintf("(+%d XP, %s %d)", res.XPAwarded, ui.IconStreak, res.StreakCurrent)))
				fmt.Fprintln(cmd.OutOrStdout(), line)
				if res.LeveledUp {
					fmt.Fprintf(cmd.OutOrStdout(), "%s Level %d → %d\n", ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
				}
				return nil
			}
			var notFound engine.NotFoundError
			if !errors.As(err, &notFound) {
				return err
			}

			// Not a habit; try quests.
			if on != "" {
				return err
			}
			qres, qerr := svc.CompleteQuest(ctx, args[0])
			if qerr != nil {
				var alsoNotFound engine.NotFoundError
				if errors.As(qerr, &alsoNotFound) {
					return err
				}
				return qerr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				ui.Good.Render(ui.IconDone+" Quest completed"),
				ui.Muted.Render(fmt.Sprintf("(+%d XP)", qres.XPAwarded)))
			if qres.LeveledUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Level %d → %d\n", ui.BadgeLevelUp, qres.LevelBefore, qres.LevelAfter)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Completion date for habits (YYYY-MM-DD, default today)")

	return cmd
}
