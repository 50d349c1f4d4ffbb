package containify

import (
	"errors"
	"os/exec"
)

// runForExitCode runs cmd to completion and returns its exit code. A
// non-zero exit is reported through the code, not as an error; an error
// means the command could not be run at all.
func runForExitCode(cmd *exec.Cmd) (int, error) {
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
