package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
)

func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <name> [command...]",
		Short: "Run a command inside a container",
		Long: `Run a command inside a container's workspace. The command exits with
the child's exit code. With --sh the command line is interpreted by the
container's shell instead of being executed directly.`,
		Args: cobra.MinimumNArgs(1),
		RunE: RunInContainer,
	}
	cmd.Flags().String("sh", "", "Run this command line through the container shell")

	return cmd
}

func runError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while running the command: %s", iErr)
	return
}

func RunInContainer(cmd *cobra.Command, args []string) (err error) {
	name := args[0]
	shellLine, _ := cmd.Flags().GetString("sh")

	if shellLine == "" && len(args) < 2 {
		return runError(fmt.Errorf("no command given for %s", name))
	}

	c, err := containify.NewContainify("")
	if err != nil {
		return runError(err)
	}

	backend, err := c.BackendFor(name)
	if err != nil {
		return runError(err)
	}

	var code int
	if shellLine != "" {
		code, err = backend.RunShellCommand(name, shellLine)
	} else {
		code, err = backend.Run(name, args[1:])
	}
	if err != nil {
		return runError(err)
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}
