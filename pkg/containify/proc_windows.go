//go:build windows

package containify

import (
	"os"
	"os/exec"
	"syscall"
)

// defaultShell returns the command interpreter, falling back to cmd.exe.
func defaultShell() string {
	if shell := os.Getenv("COMSPEC"); shell != "" {
		return shell
	}
	return "cmd.exe"
}

// shellCommand wraps a command line in a cmd.exe invocation.
func shellCommand(command string) *exec.Cmd {
	return exec.Command(defaultShell(), "/C", command)
}

// detachedProcAttr detaches a child from the invoking console.
// DETACHED_PROCESS | CREATE_NEW_PROCESS_GROUP | CREATE_NO_WINDOW.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: 0x00000008 | 0x00000200 | 0x08000000}
}
