package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yunohabits/yuno/internal/xp"
)

func LevelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "level <total-xp>",
		Short: "Print the level derived from a cumulative XP total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("total xp must be a whole number: %w", err)
			}

			info := xp.Level(total)
			fmt.Fprintf(cmd.OutOrStdout(), "level %d: %d/%d xp (%.1f%%)\n",
				info.Level, info.CurrentLevelXP, info.NextLevelRequirement, info.ProgressPercent)
			return nil
		},
	}
}
