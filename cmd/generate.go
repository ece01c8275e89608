package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piepengu/mathdrill/internal/itemgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate <skill>",
	Short: "Generate a deterministic practice item",
	Long: `Generate builds the practice item for a (skill, difficulty, seed) key
and prints it as JSON. The same key always yields the same item;
omitting --seed draws a fresh one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, _ := cmd.Flags().GetString("difficulty")
		seed, _ := cmd.Flags().GetInt64("seed")

		eng, closeFn, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		item, err := eng.GenerateItem(args[0], difficulty, seed)
		if err != nil {
			return err
		}
		return printItem(item)
	},
}

func init() {
	generateCmd.Flags().String("difficulty", "medium", "Difficulty tier: easy, medium, hard")
	generateCmd.Flags().Int64("seed", 0, "Item seed (0 draws a fresh seed)")
}

func printItem(item *itemgen.Item) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(item); err != nil {
		return fmt.Errorf("encode item: %w", err)
	}
	return nil
}
