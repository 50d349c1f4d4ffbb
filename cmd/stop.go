package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/logger"
)

func NewStopCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop <name>",
		Short: "Stop a container",
		Long: `Stop a container. Stopping is best-effort: a container that is not
running, or whose process is already gone, stops silently.`,
		Args: cobra.ExactArgs(1),
		RunE: StopContainer,
	}
	return cmd
}

func stopError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while stopping the container: %s", iErr)
	return
}

func StopContainer(cmd *cobra.Command, args []string) (err error) {
	name := args[0]

	c, err := containify.NewContainify("")
	if err != nil {
		return stopError(err)
	}

	backend, err := c.BackendFor(name)
	if err != nil {
		return stopError(err)
	}

	backend.Stop(name)
	logger.Printf("Container %s stopped", name)
	return nil
}
