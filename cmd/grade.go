package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piepengu/mathdrill/internal/grader"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <skill>",
	Short: "Grade an answer against a generated item",
	Long: `Grade rebuilds the item for the given (skill, difficulty, seed) key,
checks the answer against its canonical solution, and records the
attempt. Free-response answers go in --answer; multiple-choice
selections in --choice.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, _ := cmd.Flags().GetString("difficulty")
		seed, _ := cmd.Flags().GetInt64("seed")
		answer, _ := cmd.Flags().GetString("answer")
		choice, _ := cmd.Flags().GetInt("choice")
		elapsed, _ := cmd.Flags().GetDuration("elapsed")

		eng, closeFn, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		res, err := eng.GradeSubmission(cmd.Context(), userID(cmd), args[0], difficulty, seed,
			grader.Submission{Answer: answer, ChoiceIndex: choice}, elapsed)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return nil
	},
}

func init() {
	gradeCmd.Flags().String("difficulty", "medium", "Difficulty tier: easy, medium, hard")
	gradeCmd.Flags().Int64("seed", 0, "Seed of the item being answered")
	gradeCmd.Flags().String("answer", "", "Free-response answer")
	gradeCmd.Flags().Int("choice", -1, "Selected choice index for multiple-choice items")
	gradeCmd.Flags().Duration("elapsed", 0, "Time spent solving, e.g. 12s")
	gradeCmd.MarkFlagRequired("seed")
}
