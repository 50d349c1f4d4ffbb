package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/logger"
)

func NewFileServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fileserver",
		Short: "Manage the background FTP file server",
		Long: `Manage the background FTP file server that exposes every container
workspace over one share. The server runs as a detached process and keeps
running after this command exits.`,
	}

	start := &cobra.Command{
		Use:   "start",
		Short: "Start the file server in the background",
		Args:  cobra.NoArgs,
		RunE:  StartFileServer,
	}
	start.Flags().String("host", "", "Address to listen on")
	start.Flags().Int("port", 0, "Port to listen on")
	start.Flags().String("user", "", "FTP username")
	start.Flags().String("password", "", "FTP password")

	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop the file server",
		Args:  cobra.NoArgs,
		RunE:  StopFileServer,
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show whether the file server is running",
		Args:  cobra.NoArgs,
		RunE:  FileServerStatus,
	}

	creds := &cobra.Command{
		Use:   "creds",
		Short: "Show the file server connection details",
		Args:  cobra.NoArgs,
		RunE:  FileServerCreds,
	}

	cmd.AddCommand(start, stop, status, creds)
	return cmd
}

func fileserverError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while managing the fileserver: %s", iErr)
	return
}

func StartFileServer(cmd *cobra.Command, args []string) (err error) {
	c, err := containify.NewContainify("")
	if err != nil {
		return fileserverError(err)
	}

	config, err := c.ReadFileServerConfig()
	if err != nil {
		return fileserverError(err)
	}
	if cmd.Flags().Changed("host") {
		config.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		config.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("user") {
		config.User, _ = cmd.Flags().GetString("user")
	}
	if cmd.Flags().Changed("password") {
		config.Password, _ = cmd.Flags().GetString("password")
	}

	if err = c.StartFileServer(config); err != nil {
		return fileserverError(err)
	}
	return nil
}

func StopFileServer(cmd *cobra.Command, args []string) (err error) {
	c, err := containify.NewContainify("")
	if err != nil {
		return fileserverError(err)
	}

	if err = c.StopFileServer(); err != nil {
		return fileserverError(err)
	}
	logger.Println("Fileserver stopped.")
	return nil
}

func FileServerStatus(cmd *cobra.Command, args []string) (err error) {
	c, err := containify.NewContainify("")
	if err != nil {
		return fileserverError(err)
	}

	if running, pid := c.FileServerRunning(); running {
		fmt.Printf("Fileserver running with pid %d\n", pid)
	} else {
		fmt.Println("Fileserver not running.")
	}
	return nil
}

func FileServerCreds(cmd *cobra.Command, args []string) (err error) {
	c, err := containify.NewContainify("")
	if err != nil {
		return fileserverError(err)
	}

	config, err := c.ReadFileServerConfig()
	if err != nil {
		return fileserverError(err)
	}
	fmt.Printf("ftp://%s:%d\n", config.Host, config.Port)
	fmt.Printf("user: %s\n", config.User)
	fmt.Printf("password: %s\n", config.Password)
	return nil
}
