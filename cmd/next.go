package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var nextCmd = &cobra.Command{
	Use:   "next <skill>",
	Short: "Recommend the next difficulty tier",
	Long: `Next consults the learner's two most recent attempts on the skill:
both correct and fast moves up a tier, a miss or a consistently slow
pair moves down, anything else holds. New learners start at medium.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeFn, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		next, err := eng.NextDifficulty(cmd.Context(), userID(cmd), args[0])
		if err != nil {
			return err
		}
		fmt.Println(next)
		return nil
	},
}
