package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/tools"
	"github.com/NoahWhiteson/Containify/pkg/types"
)

func NewLimitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limits <name>",
		Short: "Show or edit the resource limits of a container",
		Long: `Show or edit the recorded resource limits of a container. Without
flags the current limits are printed. Edited limits take effect on the next
start for the docker backend; the local backend records them without
enforcement.`,
		Args: cobra.ExactArgs(1),
		RunE: EditLimits,
	}
	cmd.Flags().String("ram", "", "Memory limit, e.g. 512m or 2g (0 = unset)")
	cmd.Flags().String("storage", "", "Storage limit, e.g. 1024m or 4g (0 = unset)")
	cmd.Flags().Uint("cpu", 0, "CPU limit as percent of all CPUs, 1-100")

	return cmd
}

func limitsError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while editing limits: %s", iErr)
	return
}

func EditLimits(cmd *cobra.Command, args []string) (err error) {
	name := args[0]

	c, err := containify.NewContainify("")
	if err != nil {
		return limitsError(err)
	}

	edited := cmd.Flags().Changed("ram") || cmd.Flags().Changed("storage") || cmd.Flags().Changed("cpu")
	if !edited {
		rec, readErr := c.ReadRecord(name)
		if readErr != nil {
			return limitsError(readErr)
		}
		out, marshalErr := json.MarshalIndent(rec.Limits, "", "  ")
		if marshalErr != nil {
			return limitsError(marshalErr)
		}
		fmt.Println(string(out))
		return nil
	}

	rec, err := c.ReadRecord(name)
	if err != nil {
		return limitsError(err)
	}
	next := rec.Limits
	if cmd.Flags().Changed("ram") {
		value, _ := cmd.Flags().GetString("ram")
		if next.MemoryMB, err = tools.ParseSizeToMB(value); err != nil {
			return limitsError(err)
		}
	}
	if cmd.Flags().Changed("storage") {
		value, _ := cmd.Flags().GetString("storage")
		if next.StorageMB, err = tools.ParseSizeToMB(value); err != nil {
			return limitsError(err)
		}
	}
	if cmd.Flags().Changed("cpu") {
		next.CPUPercent, _ = cmd.Flags().GetUint("cpu")
	}
	if err = containify.ValidateLimits(next); err != nil {
		return limitsError(err)
	}

	rec, err = c.UpdateRecord(name, func(r *types.Record) {
		r.Limits = next
	})
	if err != nil {
		return limitsError(err)
	}

	out, err := json.MarshalIndent(rec.Limits, "", "  ")
	if err != nil {
		return limitsError(err)
	}
	fmt.Println(string(out))
	return nil
}
