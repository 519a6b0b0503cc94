package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/craftbox/internal/display"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Print the recipe catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, closer := newLogger(cfg)
		defer closer.Close()

		src, err := newCatalog(cfg, log)
		if err != nil {
			return err
		}
		list, err := src.List(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), display.RenderRecipes(list))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recipesCmd)
}
