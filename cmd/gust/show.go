// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gust-cli/internal/runtime"
)

// newShowCommand creates the `gust show` command.
func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show RECIPE",
		Short: "Print a recipe's definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jf, err := loadJustfile()
			if err != nil {
				return err
			}
			recipe := jf.RecipeByName(args[0])
			if recipe == nil {
				return &runtime.UnknownRecipeError{
					Name:       args[0],
					Suggestion: jf.Suggest(args[0]),
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), recipe.String())
			return nil
		},
	}
}
