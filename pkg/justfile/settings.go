// SPDX-License-Identifier: MPL-2.0

package justfile

import "strings"

type (
	// Settings holds the file-scoped "set" directives. The set of
	// recognized names is closed; the parser rejects unknown ones.
	Settings struct {
		// Shell overrides the dispatch shell ("set shell := ...").
		Shell string
		// ShellArgs are extra shell arguments accumulated by repeated
		// "set shell-args := ..." directives.
		ShellArgs []string
		// Export promotes every assignment to the child environment
		// ("set export").
		Export bool
		// Quiet suppresses line echoing for the whole file ("set quiet").
		Quiet bool
	}
)

// Setting directive names accepted by the parser.
const (
	settingShell     = "shell"
	settingShellArgs = "shell-args"
	settingExport    = "export"
	settingQuiet     = "quiet"
)

// String renders the directives in canonical form, one per line, or the
// empty string when every setting has its default value.
func (s *Settings) String() string {
	var lines []string
	if s.Shell != "" {
		lines = append(lines, "set "+settingShell+" := "+enquote(s.Shell))
	}
	for _, arg := range s.ShellArgs {
		lines = append(lines, "set "+settingShellArgs+" := "+enquote(arg))
	}
	if s.Export {
		lines = append(lines, "set "+settingExport)
	}
	if s.Quiet {
		lines = append(lines, "set "+settingQuiet)
	}
	return strings.Join(lines, "\n")
}
