package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagLevelsDir string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels",
	Long: `Shows the levels in play order. Use --levels-dir to inspect a
directory of custom level files instead of the built-in campaign.`,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory of level YAML files")
}

func runLevels(_ *cobra.Command, _ []string) error {
	lvls, err := loadLevels(flagLevelsDir)
	if err != nil {
		return err
	}

	maxIDLen := 2
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-3s  %-*s  %-7s  %-5s  %s\n", "#", maxIDLen, "ID", "Size", "Power", "Name")
	fmt.Printf("  %-3s  %-*s  %-7s  %-5s  %s\n", "-", maxIDLen, "--", "----", "-----", "----")
	for i, l := range lvls {
		power := "-"
		if l.Power > 0 {
			power = fmt.Sprintf("%d", l.Power)
		}
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fmt.Printf("  %-3d  %-*s  %-7s  %-5s  %s\n", i+1, maxIDLen, l.ID, size, power, l.Name)
	}
	return nil
}
