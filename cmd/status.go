package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/tools"
	"github.com/NoahWhiteson/Containify/pkg/types"
)

func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show host resources and the state of every container",
		Args:  cobra.NoArgs,
		RunE:  ShowStatus,
	}

	cmd.Flags().BoolP("json", "j", false, "Print output in JSON format")

	return cmd
}

func statusError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while building the status report: %s", iErr)
	return
}

func ShowStatus(cmd *cobra.Command, args []string) error {
	jsonFlag, _ := cmd.Flags().GetBool("json")

	c, err := containify.NewContainify("")
	if err != nil {
		return statusError(err)
	}

	report, err := c.StatusReport()
	if err != nil {
		return statusError(err)
	}

	if jsonFlag {
		full := struct {
			System     *types.SystemResources `json:"system,omitempty"`
			Containers types.StatusReport     `json:"containers"`
		}{Containers: report}
		if resources, resErr := c.SystemResources(); resErr == nil {
			full.System = &resources
		}
		out, marshalErr := json.MarshalIndent(full, "", "  ")
		if marshalErr != nil {
			return statusError(marshalErr)
		}
		fmt.Println(string(out))
		return nil
	}

	if resources, resErr := c.SystemResources(); resErr == nil {
		fmt.Printf("Host: %d/%d MB RAM free, %d logical / %d physical CPUs, %d/%d GB disk free\n",
			resources.AvailableRAMMB, resources.TotalRAMMB,
			resources.CPUCountLogical, resources.CPUCountPhysical,
			resources.DiskFreeGB, resources.DiskTotalGB)
	}
	fmt.Printf("Containers: %d total (%d local, %d docker)\n\n", report.Total, report.Local, report.Docker)

	header := []string{"Name", "Backend", "Status", "CPU %", "Mem MB", "Uptime s"}
	data := [][]string{}
	for _, cs := range report.Containers {
		uptime := "-"
		if cs.Snapshot.UptimeSeconds != nil {
			uptime = fmt.Sprintf("%d", *cs.Snapshot.UptimeSeconds)
		}
		data = append(data, []string{
			cs.Name,
			string(cs.Backend),
			cs.Snapshot.Status,
			fmt.Sprintf("%.1f", cs.Snapshot.CPUPercent),
			fmt.Sprintf("%d", cs.Snapshot.MemUsageBytes/1024/1024),
			uptime,
		})
	}
	tools.ShowTable(header, data)

	agg := report.Aggregates
	fmt.Printf("\nCPU avg/max/min: %.1f / %.1f / %.1f %%\n", agg.CPUAvgPercent, agg.CPUMaxPercent, agg.CPUMinPercent)
	fmt.Printf("Mem total/max/min: %d / %d / %d MB\n",
		agg.MemTotalBytes/1024/1024, agg.MemMaxBytes/1024/1024, agg.MemMinBytes/1024/1024)
	return nil
}
