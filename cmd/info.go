package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
)

func NewInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <name>",
		Short: "Show the metadata record of a container",
		Args:  cobra.ExactArgs(1),
		RunE:  ShowContainerInfo,
	}
	return cmd
}

func infoError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while reading the container: %s", iErr)
	return
}

func ShowContainerInfo(cmd *cobra.Command, args []string) error {
	c, err := containify.NewContainify("")
	if err != nil {
		return infoError(err)
	}

	rec, err := c.ReadRecord(args[0])
	if err != nil {
		return infoError(err)
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return infoError(err)
	}
	fmt.Println(string(out))
	return nil
}
