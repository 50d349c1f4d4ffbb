package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/logger"
	"github.com/NoahWhiteson/Containify/pkg/tools"
	"github.com/NoahWhiteson/Containify/pkg/types"
)

func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new container",
		Long: `Create a new container on the local process-sandbox backend or the
docker backend. Limits not given on the command line come from the
installation defaults in settings.json.`,
		Args: cobra.ExactArgs(1),
		RunE: CreateContainer,
	}
	cmd.Flags().StringP("backend", "b", "", "Backend to use: local or docker")
	cmd.Flags().String("ram", "", "Memory limit, e.g. 512m or 2g (0 = unset)")
	cmd.Flags().String("storage", "", "Storage limit, e.g. 1024m or 4g (0 = unset)")
	cmd.Flags().Uint("cpu", 0, "CPU limit as percent of all CPUs, 1-100")

	return cmd
}

func createError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while creating the container: %s", iErr)
	return
}

func CreateContainer(cmd *cobra.Command, args []string) (err error) {
	name := args[0]

	c, err := containify.NewContainify("")
	if err != nil {
		return createError(err)
	}

	settings, err := c.ReadSettings()
	if err != nil {
		return createError(err)
	}

	backend := settings.Defaults.Backend
	if cmd.Flags().Changed("backend") {
		value, _ := cmd.Flags().GetString("backend")
		backend = types.Backend(value)
	}
	if backend != types.BackendLocal && backend != types.BackendDocker {
		return createError(fmt.Errorf("unknown backend %q, expected local or docker", backend))
	}

	limits := types.Limits{
		MemoryMB:   settings.Defaults.RAMMB,
		StorageMB:  settings.Defaults.StorageMB,
		CPUPercent: settings.Defaults.CPUPercent,
	}
	if cmd.Flags().Changed("ram") {
		value, _ := cmd.Flags().GetString("ram")
		if limits.MemoryMB, err = tools.ParseSizeToMB(value); err != nil {
			return createError(err)
		}
	}
	if cmd.Flags().Changed("storage") {
		value, _ := cmd.Flags().GetString("storage")
		if limits.StorageMB, err = tools.ParseSizeToMB(value); err != nil {
			return createError(err)
		}
	}
	if cmd.Flags().Changed("cpu") {
		limits.CPUPercent, _ = cmd.Flags().GetUint("cpu")
	}

	logger.Printf("Creating %s container %s...", backend, name)
	rec, err := c.Backend(backend).Create(name, limits)
	if err != nil {
		return createError(err)
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return createError(err)
	}
	fmt.Println(string(out))

	if resources, resErr := c.SystemResources(); resErr == nil {
		logger.Printf("Host resources: %d/%d MB RAM free, %d logical CPUs, %d/%d GB disk free",
			resources.AvailableRAMMB, resources.TotalRAMMB,
			resources.CPUCountLogical,
			resources.DiskFreeGB, resources.DiskTotalGB)
	}
	return nil
}
