package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/logger"
)

func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a container and relocate its storage",
		Args:  cobra.ExactArgs(2),
		RunE:  RenameContainer,
	}
	return cmd
}

func renameError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while renaming the container: %s", iErr)
	return
}

func RenameContainer(cmd *cobra.Command, args []string) (err error) {
	c, err := containify.NewContainify("")
	if err != nil {
		return renameError(err)
	}

	if _, err = c.RenameContainer(args[0], args[1]); err != nil {
		return renameError(err)
	}
	logger.Printf("Renamed %s to %s", args[0], args[1])
	return nil
}
