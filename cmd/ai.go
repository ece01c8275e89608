package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "AI-assisted item generation",
}

var aiGenerateCmd = &cobra.Command{
	Use:   "generate <skill>",
	Short: "Request an AI-drafted item through the guardrail pipeline",
	Long: `Requests one problem candidate from the configured AI provider and
validates it. The printed verdict always contains a servable item: the
accepted candidate, or a template fallback when the candidate was
rejected or the provider was unavailable.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, _ := cmd.Flags().GetString("difficulty")

		eng, closeFn, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		verdict, err := eng.GenerateViaAI(cmd.Context(), args[0], difficulty)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(verdict); err != nil {
			return fmt.Errorf("encode verdict: %w", err)
		}
		return nil
	},
}

var aiRecordCmd = &cobra.Command{
	Use:   "record <skill>",
	Short: "Record an attempt on an AI-drafted item",
	Long: `AI items carry no reproducible seed, so they are graded client-side.
This records the reported outcome into the learner's history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, _ := cmd.Flags().GetString("difficulty")
		correct, _ := cmd.Flags().GetBool("correct")
		answer, _ := cmd.Flags().GetString("correct-answer")
		elapsed, _ := cmd.Flags().GetDuration("elapsed")

		eng, closeFn, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		err = eng.RecordAIAttempt(cmd.Context(), userID(cmd), args[0], difficulty, correct, answer, elapsed)
		if err != nil {
			return err
		}
		fmt.Println("recorded")
		return nil
	},
}

func init() {
	aiGenerateCmd.Flags().String("difficulty", "medium", "Difficulty tier: easy, medium, hard")

	aiRecordCmd.Flags().String("difficulty", "medium", "Difficulty tier: easy, medium, hard")
	aiRecordCmd.Flags().Bool("correct", false, "Whether the answer was correct")
	aiRecordCmd.Flags().String("correct-answer", "", "The item's correct answer")
	aiRecordCmd.Flags().Duration("elapsed", 0, "Time spent solving, e.g. 12s")

	aiCmd.AddCommand(aiGenerateCmd)
	aiCmd.AddCommand(aiRecordCmd)
}
