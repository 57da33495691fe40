package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yunohabits/yuno/internal/calendar"
	"github.com/yunohabits/yuno/internal/streak"
)

func StreakCmd() *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "streak [dates...]",
		Short: "Print current and highest streak for a list of YYYY-MM-DD dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if today == "" {
				today = calendar.Today()
			}
			if !calendar.Valid(today) {
				return fmt.Errorf("--today must be YYYY-MM-DD, got %q", today)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "current: %d\nhighest: %d\n",
				streak.CurrentAt(args, today), streak.Highest(args))
			return nil
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "anchor date (default: local today)")
	return cmd
}
