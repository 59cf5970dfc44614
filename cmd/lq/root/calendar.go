package root

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"lifequest/internal/tui"
)

func newCalendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "calendar <habit-id>",
		Aliases: []string{"cal"},
		Short:   "Browse and toggle a habit's completion history",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("habit id is required")
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

			return tui.RunCalendar(ctx, svc, args[0], cmd.OutOrStdout())
		},
	}
}
