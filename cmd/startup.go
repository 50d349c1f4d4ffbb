package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/logger"
	"github.com/NoahWhiteson/Containify/pkg/types"
)

func NewStartupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "startup <name> [command...]",
		Short: "Show or set the startup command of a container",
		Long: `Show or set the command launched by "start" on the local backend.
Without arguments the current startup command is printed; with --clear it
is removed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: EditStartupCommand,
	}
	cmd.Flags().Bool("clear", false, "Remove the startup command")

	return cmd
}

func startupError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while editing the startup command: %s", iErr)
	return
}

func EditStartupCommand(cmd *cobra.Command, args []string) (err error) {
	name := args[0]
	clear, _ := cmd.Flags().GetBool("clear")

	c, err := containify.NewContainify("")
	if err != nil {
		return startupError(err)
	}

	if !clear && len(args) < 2 {
		rec, readErr := c.ReadRecord(name)
		if readErr != nil {
			return startupError(readErr)
		}
		if rec.BackendState.StartupCommand == "" {
			fmt.Println("No startup command set.")
		} else {
			fmt.Println(rec.BackendState.StartupCommand)
		}
		return nil
	}

	command := ""
	if !clear {
		command = strings.Join(args[1:], " ")
	}
	if _, err = c.UpdateRecord(name, func(r *types.Record) {
		r.BackendState.StartupCommand = command
	}); err != nil {
		return startupError(err)
	}

	if clear {
		logger.Printf("Startup command cleared for %s", name)
	} else {
		logger.Printf("Startup command for %s set to: %s", name, command)
	}
	return nil
}
