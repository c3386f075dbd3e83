// SPDX-License-Identifier: MPL-2.0

//go:build unix

package runtime

import (
	"os/exec"
	"syscall"
	"time"
)

// configureProcess places the child in its own process group so that
// cancellation terminates the whole group, not just the immediate shell.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}
	// Escalate to SIGKILL if the group ignores SIGTERM.
	cmd.WaitDelay = 5 * time.Second
}
