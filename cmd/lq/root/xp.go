package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newXPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xp",
		Short: "Adjust persona XP directly",
	}
	cmd.AddCommand(newXPGrantCmd(), newXPSetCmd(), newXPResetCmd())
	return cmd
}

func newXPGrantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grant <delta>",
		Short: "Grant (or deduct, with a negative delta) XP",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("delta is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid delta %q: %w", args[0], err)
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.GrantXP(ctx, delta)
			if err != nil {
				return err
			}
			printXPResult(cmd, res)
			return nil
		},
	}
}

func newXPSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <total>",
		Short: "Set the persona's lifetime XP total",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("total is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid total %q: %w", args[0], err)
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.SetXP(ctx, total)
			if err != nil {
				return err
			}
			printXPResult(cmd, res)
			return nil
		},
	}
}

func newXPResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the persona to level 1 with zero XP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.ResetProgress(ctx)
			if err != nil {
				return err
			}
			printXPResult(cmd, res)
			return nil
		},
	}
}

func printXPResult(cmd *cobra.Command, res *engine.ProgressResult) {
	p := res.Persona
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
		ui.Good.Render(ui.IconSparkle+" XP updated"),
		ui.Muted.Render(fmt.Sprintf("level %d, %d/%d toward next, %d total", p.Level, p.RemainderXP, p.Threshold, p.XPTotal)))
	if res.LeveledUp {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Level %d → %d\n", ui.BadgeLevelUp, res.LevelBefore, p.Level)
	}
	if res.LeveledDown {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Level %d → %d\n", ui.BadgeLevelDown, res.LevelBefore, p.Level)
	}
}
