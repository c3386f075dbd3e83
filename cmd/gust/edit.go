// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"gust-cli/internal/search"
)

// newEditCommand creates the `gust edit` command.
func newEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the justfile in $VISUAL, $EDITOR, or vim",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := justfilePath
			if path == "" {
				start := workingDir
				if start == "" {
					wd, err := os.Getwd()
					if err != nil {
						return err
					}
					start = wd
				}
				found, err := search.Justfile(start)
				if err != nil {
					return err
				}
				path = found
			}
			editor := os.Getenv("VISUAL")
			if editor == "" {
				editor = os.Getenv("EDITOR")
			}
			if editor == "" {
				editor = "vim"
			}
			editCmd := exec.CommandContext(cmd.Context(), editor, path)
			editCmd.Stdin = os.Stdin
			editCmd.Stdout = os.Stdout
			editCmd.Stderr = os.Stderr
			return editCmd.Run()
		},
	}
}
