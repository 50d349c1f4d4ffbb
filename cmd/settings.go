package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/tools"
	"github.com/NoahWhiteson/Containify/pkg/types"
)

func NewSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or edit the installation settings",
		Long: `Show or edit the installation-wide settings. Without flags the merged
settings are printed. Edits are persisted to settings.json and apply to
future creates.`,
		Args: cobra.NoArgs,
		RunE: EditSettings,
	}
	cmd.Flags().String("default-backend", "", "Default backend for new containers: local or docker")
	cmd.Flags().String("default-ram", "", "Default memory limit, e.g. 512m or 2g")
	cmd.Flags().String("default-storage", "", "Default storage limit, e.g. 1024m or 4g")
	cmd.Flags().Uint("default-cpu", 0, "Default CPU limit as percent of all CPUs, 1-100")
	cmd.Flags().String("theme", "", "Theme name")

	return cmd
}

func settingsError(iErr error) (err error) {
	err = fmt.Errorf("an error occurred while editing settings: %s", iErr)
	return
}

func EditSettings(cmd *cobra.Command, args []string) (err error) {
	c, err := containify.NewContainify("")
	if err != nil {
		return settingsError(err)
	}

	settings, err := c.EnsureSettings()
	if err != nil {
		return settingsError(err)
	}

	edited := false
	if cmd.Flags().Changed("default-backend") {
		value, _ := cmd.Flags().GetString("default-backend")
		backend := types.Backend(value)
		if backend != types.BackendLocal && backend != types.BackendDocker {
			return settingsError(fmt.Errorf("unknown backend %q, expected local or docker", value))
		}
		settings.Defaults.Backend = backend
		edited = true
	}
	if cmd.Flags().Changed("default-ram") {
		value, _ := cmd.Flags().GetString("default-ram")
		if settings.Defaults.RAMMB, err = tools.ParseSizeToMB(value); err != nil {
			return settingsError(err)
		}
		edited = true
	}
	if cmd.Flags().Changed("default-storage") {
		value, _ := cmd.Flags().GetString("default-storage")
		if settings.Defaults.StorageMB, err = tools.ParseSizeToMB(value); err != nil {
			return settingsError(err)
		}
		edited = true
	}
	if cmd.Flags().Changed("default-cpu") {
		settings.Defaults.CPUPercent, _ = cmd.Flags().GetUint("default-cpu")
		edited = true
	}
	if cmd.Flags().Changed("theme") {
		settings.Theme.Name, _ = cmd.Flags().GetString("theme")
		edited = true
	}

	if edited {
		if err = containify.ValidateLimits(types.Limits{
			MemoryMB:   settings.Defaults.RAMMB,
			StorageMB:  settings.Defaults.StorageMB,
			CPUPercent: settings.Defaults.CPUPercent,
		}); err != nil {
			return settingsError(err)
		}
		if err = c.WriteSettings(settings); err != nil {
			return settingsError(err)
		}
	}

	out, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return settingsError(err)
	}
	fmt.Println(string(out))
	return nil
}
