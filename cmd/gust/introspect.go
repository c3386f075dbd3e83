// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gust-cli/internal/runtime"
)

// newDumpCommand creates the `gust dump` command.
func newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the justfile in canonical form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jf, err := loadJustfile()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), jf.String())
			return nil
		},
	}
}

// newSummaryCommand creates the `gust summary` command.
func newSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print recipe names, space separated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jf, err := loadJustfile()
			if err != nil {
				return err
			}
			names := make([]string, 0, len(jf.RecipeOrder))
			for _, recipe := range jf.PublicRecipes() {
				names = append(names, recipe.Name.Lexeme)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " "))
			return nil
		},
	}
}

// newVariablesCommand creates the `gust variables` command.
func newVariablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "variables",
		Short: "Print variable names, space separated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jf, err := loadJustfile()
			if err != nil {
				return err
			}
			names := make([]string, 0, len(jf.Assignments))
			for _, assignment := range jf.Assignments {
				names = append(names, assignment.Name.Lexeme)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " "))
			return nil
		},
	}
}

// newEvaluateCommand creates the `gust evaluate` command.
func newEvaluateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate [VARIABLE]",
		Short: "Evaluate all assignments and print their values",
		Long: `Evaluate every assignment, applying --set overrides, and print
name := "value" lines. With an argument, print just that variable's value.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jf, err := loadJustfile()
			if err != nil {
				return err
			}
			overrides := make(map[string]string)
			for _, pair := range setOverrides {
				name, value, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("invalid --set value %q: expected NAME=VALUE", pair)
				}
				overrides[name] = value
			}
			engine := runtime.NewEngine(jf, engineOptions(overrides))
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			value, err := engine.Evaluate(cmd.Context(), name)
			if err != nil {
				return err
			}
			if name != "" {
				fmt.Fprintln(cmd.OutOrStdout(), value)
			} else {
				fmt.Fprint(cmd.OutOrStdout(), value)
			}
			return nil
		},
	}
}
