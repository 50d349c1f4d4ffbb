package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
)

func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <name>",
		Short: "Show a resource usage snapshot for a container",
		Args:  cobra.ExactArgs(1),
		RunE:  ShowStats,
	}
	return cmd
}

func statsError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while sampling stats: %s", iErr)
	return
}

func ShowStats(cmd *cobra.Command, args []string) error {
	c, err := containify.NewContainify("")
	if err != nil {
		return statsError(err)
	}

	snapshot := c.Stats(args[0])

	out, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return statsError(err)
	}
	fmt.Println(string(out))
	return nil
}
