package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/logger"
	"github.com/NoahWhiteson/Containify/pkg/tools"
)

func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a container and all of its data",
		Args:  cobra.ExactArgs(1),
		RunE:  DeleteContainer,
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func deleteError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while deleting the container: %s", iErr)
	return
}

func DeleteContainer(cmd *cobra.Command, args []string) (err error) {
	name := args[0]
	yes, _ := cmd.Flags().GetBool("yes")

	c, err := containify.NewContainify("")
	if err != nil {
		return deleteError(err)
	}

	backend, err := c.BackendFor(name)
	if err != nil {
		return deleteError(err)
	}

	if !yes && !tools.ConfirmOperation(fmt.Sprintf("Delete container %s and all of its data?", name)) {
		fmt.Println("Aborted.")
		return nil
	}

	if err = backend.Delete(name); err != nil {
		return deleteError(err)
	}
	logger.Printf("Container %s deleted", name)
	return nil
}
