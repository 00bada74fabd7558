//go:build !windows

// Package process terminates the browser process tree left behind by a PDF
// render.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, which
// takes the renderer's helper processes down with it.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Errors are ignored: the group may already be gone.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
