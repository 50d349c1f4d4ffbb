package containify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/NoahWhiteson/Containify/pkg/types"
)

// DefaultSettings returns the installation settings used when settings.json
// is missing or partial. The theme colors double as the reference palette
// for presentation layers.
func DefaultSettings() types.Settings {
	return types.Settings{
		Theme: types.ThemeConfig{
			Name: "default",
			Colors: map[string]string{
				"primary":   "#4F8EF7",
				"secondary": "#9B5DE5",
				"success":   "#2EC27E",
				"warning":   "#F5A623",
				"error":     "#E03131",
			},
		},
		Defaults: types.CreateDefaults{
			Backend:    types.BackendLocal,
			RAMMB:      512,
			StorageMB:  1024,
			CPUPercent: 100,
		},
		FTP: DefaultFileServerConfig(),
	}
}

// ReadSettings loads settings.json merged over the defaults, so partial
// files and files from older releases keep working. A missing file yields
// the defaults.
func (c *Containify) ReadSettings() (types.Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(c.Options.SettingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("reading settings: %w", err)
	}
	if err = json.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("parsing settings: %w", err)
	}
	return settings, nil
}

// WriteSettings persists the settings atomically, stamping an installation
// id if one was never assigned.
func (c *Containify) WriteSettings(settings types.Settings) error {
	if settings.InstallationID == "" {
		settings.InstallationID = uuid.NewString()
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	dir := filepath.Dir(c.Options.SettingsPath)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.Options.SettingsPath)
}

// EnsureSettings reads the settings and persists them once if no
// installation id has been assigned yet, so every installation ends up with
// a stable identity.
func (c *Containify) EnsureSettings() (types.Settings, error) {
	settings, err := c.ReadSettings()
	if err != nil {
		return settings, err
	}
	if settings.InstallationID != "" {
		return settings, nil
	}
	settings.InstallationID = uuid.NewString()
	if err = c.WriteSettings(settings); err != nil {
		return settings, err
	}
	return settings, nil
}
