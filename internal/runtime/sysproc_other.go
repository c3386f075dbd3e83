// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package runtime

import "os/exec"

// configureProcess is a no-op on platforms without POSIX process groups;
// cancellation falls back to killing the immediate child.
func configureProcess(_ *exec.Cmd) {}
