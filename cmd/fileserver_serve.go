package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
)

// NewFileServerServeCommand creates the hidden `fileserver-serve` command,
// the entry point of the detached process launched by `fileserver start`.
func NewFileServerServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "fileserver-serve",
		Short:  "Run the FTP file server in the foreground (hidden)",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE:   ServeFileServer,
	}
	return cmd
}

func ServeFileServer(cmd *cobra.Command, args []string) error {
	c, err := containify.NewContainify("")
	if err != nil {
		return fmt.Errorf("an error occurred while starting the fileserver: %s", err)
	}
	return c.ServeFTP()
}
