package types

// Options is the resolved configuration for one Containify invocation.
// Everything the core needs is threaded through this struct instead of being
// looked up from the process environment at call sites.
type Options struct {
	// RootDir is the top-level directory under which all containers,
	// settings and fileserver state live.
	RootDir string `json:"root_dir"`

	// ContainersPath is RootDir/containers.
	ContainersPath string `json:"containers_path"`

	// SettingsPath is the settings.json location under RootDir.
	SettingsPath string `json:"settings_path"`

	// FileServerConfigPath and FileServerPidPath are the fileserver.json
	// and fileserver.pid locations under RootDir.
	FileServerConfigPath string `json:"fileserver_config_path"`
	FileServerPidPath    string `json:"fileserver_pid_path"`

	// Image is the base image used by the docker backend.
	Image string `json:"image"`
}
