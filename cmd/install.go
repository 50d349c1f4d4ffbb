package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/logger"
)

func NewInstallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <name> [packages...]",
		Short: "Install packages inside a container",
		Long: `Install packages into a container's package environment. The package
installer is upgraded first; the operation aborts if that upgrade fails.
With no packages only the upgrade runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: InstallPackages,
	}
	return cmd
}

func installError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while installing packages: %s", iErr)
	return
}

func InstallPackages(cmd *cobra.Command, args []string) (err error) {
	name := args[0]
	packages := args[1:]

	c, err := containify.NewContainify("")
	if err != nil {
		return installError(err)
	}

	backend, err := c.BackendFor(name)
	if err != nil {
		return installError(err)
	}

	code, err := backend.Install(name, packages)
	if err != nil {
		return installError(err)
	}
	if code != 0 {
		os.Exit(code)
	}
	if len(packages) == 0 {
		logger.Printf("Package installer upgraded in %s", name)
	} else {
		logger.Printf("Installed %d package(s) into %s", len(packages), name)
	}
	return nil
}
