package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-skill practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeFn, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		stats, err := eng.Stats(cmd.Context(), userID(cmd))
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}

		fmt.Printf("%-28s  %-10s  %8s  %8s  %9s  %9s\n",
			"Skill", "Domain", "Attempts", "Correct", "Accuracy", "Avg time")
		fmt.Println(strings.Repeat("-", 82))
		for _, s := range stats {
			fmt.Printf("%-28s  %-10s  %8d  %8d  %8.0f%%  %8.1fs\n",
				s.Skill, s.Domain, s.Attempts, s.Correct,
				s.Accuracy()*100, s.AvgTimeMS/1000)
		}
		return nil
	},
}
