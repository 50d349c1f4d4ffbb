//go:build !windows

package containify

import (
	"os"
	"os/exec"
	"syscall"
)

// defaultShell returns the user's shell, falling back to /bin/bash.
func defaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/bash"
}

// shellCommand wraps a command line in a login shell invocation.
func shellCommand(command string) *exec.Cmd {
	return exec.Command(defaultShell(), "-lc", command)
}

// detachedProcAttr detaches a child into its own session so it survives the
// invoking process.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
