package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/habit"
	"lifequest/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits and quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			habits, err := svc.ListHabits(ctx, all)
			if err != nil {
				return err
			}
			quests, err := svc.ListQuests(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if len(habits) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconHabit+" Habits"))
				for _, h := range habits {
					cur, best := habit.Streaks(h)
					line := fmt.Sprintf("- %s %s %s %s",
						ui.Muted.Render("#"+h.ID[:8]),
						h.Title,
						ui.Muted.Render(h.Every.String()),
						ui.Muted.Render(fmt.Sprintf("%s %d (best %d)", ui.IconStreak, cur, best)))
					if h.Archived {
						line += " " + ui.Muted.Render(ui.IconArchive+" archived")
					}
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, "")
			}

			if len(quests) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconQuest+" Quests"))
				for _, q := range quests {
					fmt.Fprintf(out, "- %s %s %s %s\n",
						ui.Muted.Render("#"+q.ID[:8]),
						q.Title,
						ui.StatusText(q.Status),
						ui.Muted.Render(fmt.Sprintf("(%d XP)", q.XPReward)))
				}
				fmt.Fprintln(out, "")
			}

			if len(habits) == 0 && len(quests) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing here yet. Try: lq add \"Drink water\" --habit"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include archived habits")

	return cmd
}
