package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/tools"
)

func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all containers",
		Args:  cobra.NoArgs,
		RunE:  ListContainers,
	}

	cmd.Flags().BoolP("json", "j", false, "Print output in JSON format")

	return cmd
}

func listError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while listing containers: %s", iErr)
	return
}

func ListContainers(cmd *cobra.Command, args []string) error {
	jsonFlag, err := cmd.Flags().GetBool("json")
	if err != nil {
		return listError(err)
	}

	c, err := containify.NewContainify("")
	if err != nil {
		return listError(err)
	}

	records, err := c.ListRecords()
	if err != nil {
		return listError(err)
	}

	if !jsonFlag {
		header := []string{"Name", "Backend", "CPU %", "RAM MB", "Storage MB", "Created"}
		data := [][]string{}
		for _, rec := range records {
			data = append(data, []string{
				rec.Name,
				string(rec.Backend),
				fmt.Sprintf("%d", rec.Limits.CPUPercent),
				fmt.Sprintf("%d", rec.Limits.MemoryMB),
				fmt.Sprintf("%d", rec.Limits.StorageMB),
				rec.CreatedAt.Format(time.RFC3339),
			})
		}
		tools.ShowTable(header, data)
		return nil
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return listError(err)
	}
	fmt.Println(string(out))
	return nil
}
