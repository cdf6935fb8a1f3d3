//go:build unix

package cmdexec

import (
	"os/exec"
	"syscall"
)

// setProcGroup starts the command in a new process group so killProcGroup can
// signal every child it spawns.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// killProcGroup sends SIGKILL to the command's whole process group.
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	// Negative PID targets the group.
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
