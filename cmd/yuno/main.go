package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/yunohabits/yuno/cmd/yuno/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "yuno",
		Short:        "Maintenance and inspection tools for yuno",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.LevelCmd())
	rootCmd.AddCommand(cmd.StreakCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
