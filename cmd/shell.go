package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
)

func NewShellCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell <name>",
		Short: "Open an interactive shell inside a container",
		Args:  cobra.ExactArgs(1),
		RunE:  OpenShell,
	}
	return cmd
}

func shellError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while opening the shell: %s", iErr)
	return
}

func OpenShell(cmd *cobra.Command, args []string) (err error) {
	name := args[0]

	c, err := containify.NewContainify("")
	if err != nil {
		return shellError(err)
	}

	backend, err := c.BackendFor(name)
	if err != nil {
		return shellError(err)
	}

	code, err := backend.Shell(name)
	if err != nil {
		return shellError(err)
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}
