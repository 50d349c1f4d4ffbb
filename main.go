package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/cmd"
	"github.com/NoahWhiteson/Containify/pkg/logger"
)

var version = "0.0.1"

func main() {
	rootCmd := &cobra.Command{
		Use:   "containify",
		Short: "lightweight dual-backend container manager",
		Long: `containify provisions lightweight containers backed either by a local
process sandbox or by the Docker engine, and manages them through one
uniform lifecycle.`,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			verbose, _ := c.Flags().GetBool("verbose")
			logger.SetVerbose(verbose)
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(cmd.NewCreateCommand())
	rootCmd.AddCommand(cmd.NewListCommand())
	rootCmd.AddCommand(cmd.NewInfoCommand())
	rootCmd.AddCommand(cmd.NewRunCommand())
	rootCmd.AddCommand(cmd.NewShellCommand())
	rootCmd.AddCommand(cmd.NewInstallCommand())
	rootCmd.AddCommand(cmd.NewStartCommand())
	rootCmd.AddCommand(cmd.NewStopCommand())
	rootCmd.AddCommand(cmd.NewStatsCommand())
	rootCmd.AddCommand(cmd.NewStatusCommand())
	rootCmd.AddCommand(cmd.NewRenameCommand())
	rootCmd.AddCommand(cmd.NewLimitsCommand())
	rootCmd.AddCommand(cmd.NewStartupCommand())
	rootCmd.AddCommand(cmd.NewSettingsCommand())
	rootCmd.AddCommand(cmd.NewDeleteCommand())
	rootCmd.AddCommand(cmd.NewPurgeCommand())
	rootCmd.AddCommand(cmd.NewFileServerCommand())
	rootCmd.AddCommand(cmd.NewFileServerServeCommand())
	rootCmd.AddCommand(cmd.NewAuditCommand())
	rootCmd.AddCommand(cmd.NewGenSchemaCommand())
	rootCmd.AddCommand(cmd.NewValidateCommand())

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
