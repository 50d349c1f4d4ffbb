package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/logger"
)

func NewStartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <name>",
		Short: "Start a container",
		Long: `Start a container. For the docker backend the engine container is
started if not already running. For the local backend the recorded startup
command, if any, is launched detached and its pid recorded.`,
		Args: cobra.ExactArgs(1),
		RunE: StartContainer,
	}
	return cmd
}

func startError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while starting the container: %s", iErr)
	return
}

func StartContainer(cmd *cobra.Command, args []string) (err error) {
	name := args[0]

	c, err := containify.NewContainify("")
	if err != nil {
		return startError(err)
	}

	backend, err := c.BackendFor(name)
	if err != nil {
		return startError(err)
	}

	if err = backend.Start(name); err != nil {
		return startError(err)
	}
	logger.Printf("Container %s started", name)
	return nil
}
