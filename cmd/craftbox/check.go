package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/craftbox/internal/catalog"
	"github.com/hammamikhairi/craftbox/internal/crafting"
)

var checkCmd = &cobra.Command{
	Use:   "check <catalog.yaml>",
	Short: "Validate a recipe catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recipes, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, r := range recipes {
			line := fmt.Sprintf("ok  %-20s %d ingredients, %s", r.Output, len(r.Ingredients), r.Duration)
			if n := crafting.Overflow(r); n > 0 {
				line += fmt.Sprintf(" (warning: %d ingredients will not fit in the slots)", n)
			}
			fmt.Fprintln(out, line)
		}
		fmt.Fprintf(out, "%d recipes\n", len(recipes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
