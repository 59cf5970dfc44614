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

func newAddCmd() *cobra.Command {
	var isHabit bool
	var every string
	var diff int
	var xp int
	var start string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest (or a recurring habit with --habit)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			title := args[0]

			if isHabit {
				iv, err := dates.ParseInterval(every)
				if err != nil {
					return err
				}
				in := engine.CreateHabitInput{Title: title, Every: iv, XPReward: xp}
				if start != "" {
					in.StartOn, err = dates.Parse(start)
					if err != nil {
						return err
					}
				}
				h, err := svc.CreateHabit(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
					ui.Good.Render(ui.IconHabit+" Habit created"),
					h.Title,
					ui.Muted.Render(h.Every.String()),
					ui.Muted.Render("#"+h.ID[:8]))
				return nil
			}

			q, err := svc.CreateQuest(ctx, engine.CreateQuestInput{
				Title:      title,
				Difficulty: engine.Difficulty(diff),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconQuest+" Quest created"),
				q.Title,
				ui.Muted.Render(fmt.Sprintf("(+%d XP on completion)", q.XPReward)),
				ui.Muted.Render("#"+q.ID[:8]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&isHabit, "habit", false, "Create a recurring habit instead of a quest")
	cmd.Flags().StringVar(&every, "every", "daily", "Habit recurrence (daily|weekly|monthly|yearly|3d|2w|1m|1y)")
	cmd.Flags().IntVarP(&diff, "diff", "d", 1, "Quest difficulty (1-5)")
	cmd.Flags().IntVar(&xp, "xp", 0, "Habit XP per completion (default from config)")
	cmd.Flags().StringVar(&start, "start", "", "Habit start date (YYYY-MM-DD, default today)")

	return cmd
}
