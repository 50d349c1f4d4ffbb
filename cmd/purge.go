package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/logger"
	"github.com/NoahWhiteson/Containify/pkg/tools"
)

func NewPurgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Remove all containers, settings and service files",
		Long: `Remove the whole installation: stop the fileserver if running, delete
every container, the settings file and the fileserver files, and remove the
root directory if it ends up empty.`,
		Args: cobra.NoArgs,
		RunE: PurgeInstallation,
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func purgeError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while purging the installation: %s", iErr)
	return
}

func PurgeInstallation(cmd *cobra.Command, args []string) (err error) {
	yes, _ := cmd.Flags().GetBool("yes")

	c, err := containify.NewContainify("")
	if err != nil {
		return purgeError(err)
	}

	if !yes && !tools.ConfirmOperation(fmt.Sprintf("Remove everything under %s?", c.Options.RootDir)) {
		fmt.Println("Aborted.")
		return nil
	}

	if stopErr := c.StopFileServer(); stopErr != nil {
		logger.Warnf("Could not stop fileserver: %v", stopErr)
	}

	if err = os.RemoveAll(c.Options.ContainersPath); err != nil {
		return purgeError(err)
	}
	for _, path := range []string{
		c.Options.SettingsPath,
		c.Options.FileServerConfigPath,
		c.Options.FileServerPidPath,
		filepath.Join(c.Options.RootDir, "fileserver.log"),
	} {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warnf("Could not remove %s: %v", path, rmErr)
		}
	}

	// Only an empty root is removed; anything else in it is not ours.
	if rmErr := os.Remove(c.Options.RootDir); rmErr != nil && !os.IsNotExist(rmErr) {
		logger.Printf("Root directory %s left in place (not empty)", c.Options.RootDir)
	}

	logger.Println("Installation purged.")
	return nil
}
