package types

// ThemeConfig is the color theme consumed by the presentation layer. The
// core only persists it.
type ThemeConfig struct {
	Name   string            `json:"name"`
	Colors map[string]string `json:"colors"`
}

// CreateDefaults are the limits and backend applied when a container is
// created without explicit values.
type CreateDefaults struct {
	Backend    Backend `json:"backend"`
	RAMMB      uint    `json:"ram_mb"`
	StorageMB  uint    `json:"storage_mb"`
	CPUPercent uint    `json:"cpu_percent"`
}

// FileServerConfig is the persisted configuration of the background FTP
// side-service.
type FileServerConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// Settings is the installation-wide configuration stored in settings.json.
type Settings struct {
	// InstallationID is a uuid stamped on first write, identifying this
	// installation in engine container labels and diagnostics.
	InstallationID string `json:"installation_id,omitempty"`

	Theme    ThemeConfig      `json:"theme"`
	Defaults CreateDefaults   `json:"defaults"`
	FTP      FileServerConfig `json:"ftp"`
}
