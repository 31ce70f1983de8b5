//go:build !windows

package process

import "syscall"

// KillGroup kills a process and all its children by sending SIGKILL to
// the process group (negative PID). Best-effort: the error is ignored,
// the caller has no recovery beyond this.
func KillGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
