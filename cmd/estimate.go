package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate a scaled score from practice history",
	Long: `Estimate maps overall accuracy onto the 200-800 scale with a
credible interval that narrows as attempts accumulate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeFn, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		est, err := eng.EstimateScore(cmd.Context(), userID(cmd))
		if err != nil {
			return err
		}

		fmt.Printf("Estimated score: %d  (95%% interval %d-%d)\n", est.Score, est.Low, est.High)
		if est.Attempts == 0 {
			fmt.Println("No attempts yet; the estimate is the prior midpoint.")
			return nil
		}
		fmt.Printf("Based on %d attempts at %.0f%% accuracy.\n", est.Attempts, est.Accuracy*100)
		return nil
	},
}
