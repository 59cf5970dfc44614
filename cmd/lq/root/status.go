package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/level"
	"lifequest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show persona progression and milestones",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.Persona(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			pct := level.ProgressPercent(p.RemainderXP, p.Threshold)

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Persona"))
			fmt.Fprintln(out, ui.LabelValue("Rank", engine.RankForLevel(p.Level)))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintf(out, "%s %s %s\n",
				ui.Key.Render("XP:"),
				ui.XPBar(pct, 24),
				ui.Muted.Render(fmt.Sprintf("%d/%d (%.0f%%, %d total)", p.RemainderXP, p.Threshold, pct, p.XPTotal)))
			fmt.Fprintln(out, "")

			habits, err := svc.ListHabits(ctx, false)
			if err != nil {
				return err
			}
			if len(habits) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconHabit+" Habits"))
				today := svc.Today()
				for _, h := range habits {
					open, err := svc.EligibleOn(ctx, h.ID, today)
					if err != nil {
						return err
					}
					state := ui.Muted.Render("waiting")
					if h.History.CompletedOn(today) {
						state = ui.Good.Render("done today")
					} else if open {
						state = ui.Warn.Render("open")
					}
					fmt.Fprintf(out, "- %s %s %s\n", ui.Muted.Render("#"+h.ID[:8]), h.Title, state)
				}
				fmt.Fprintln(out, "")
			}

			ms, err := svc.MilestonesFor(ctx)
			if err != nil {
				return err
			}
			earned := 0
			for _, m := range ms {
				if m.Earned {
					earned++
				}
			}
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("🏅 Milestones (%d/%d)", earned, len(ms))))
			for _, m := range ms {
				if m.Earned {
					fmt.Fprintf(out, "- %s %s %s\n", m.Icon, m.Name, ui.Muted.Render(m.Description))
				}
			}
			return nil
		},
	}

	return cmd
}
