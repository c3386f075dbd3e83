// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// starterJustfile is the content `gust init` writes.
const starterJustfile = "default:\n\techo 'Hello, world!'\n"

// newInitCommand creates the `gust init` command.
func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a starter justfile in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := workingDir
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = wd
			}
			path := filepath.Join(dir, "justfile")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("justfile already exists at %s", path)
			}
			if err := os.WriteFile(path, []byte(starterJustfile), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote justfile to %s\n", path)
			return nil
		},
	}
}
