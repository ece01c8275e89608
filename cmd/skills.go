package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piepengu/mathdrill/internal/skills"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List available skills",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%-26s  %-10s  %-8s  %s\n", "Skill", "Domain", "Answer", "Name")
		fmt.Println(strings.Repeat("-", 80))
		for _, sk := range skills.All() {
			info, _ := skills.Lookup(sk)
			fmt.Printf("%-26s  %-10s  %-8s  %s\n", sk, info.Domain, info.Kind, info.Name)
		}
	},
}
