package types

import "time"

// CurrentSchemaVersion is the metadata record format version written by this
// build. Older records without the field decode as version 0 and are still
// accepted by readers.
const CurrentSchemaVersion = 1

// Backend identifies the execution substrate of a container. It is stored in
// the metadata record and is immutable after creation.
type Backend string

const (
	// BackendLocal is the process-sandbox substrate: a workspace directory
	// plus an isolated Python environment, no kernel-level isolation.
	BackendLocal Backend = "local"

	// BackendDocker is the managed substrate: a container created and
	// controlled through the Docker engine API.
	BackendDocker Backend = "docker"
)

// Limits is the declared resource budget for a container. Zero means unset
// for memory and storage. Enforcement depends on the backend: the Docker
// backend translates these into engine constructs, the local backend only
// records them.
type Limits struct {
	MemoryMB   uint `json:"memory_mb" jsonschema:"minimum=0"`
	StorageMB  uint `json:"storage_mb" jsonschema:"minimum=0"`
	CPUPercent uint `json:"cpu_percent" jsonschema:"minimum=1,maximum=100"`
}

// Paths holds the derived on-disk locations of a container. They are stored
// for convenience and debugging; identity always comes from the name.
type Paths struct {
	Root         string `json:"root"`
	ContainerDir string `json:"container_dir"`
	WorkspaceDir string `json:"workspace_dir"`
}

// DockerData is the engine-specific portion of a record for the docker
// backend.
type DockerData struct {
	ContainerID string `json:"container_id"`
	Image       string `json:"image"`
}

// BackendData carries backend-specific opaque fields. Only the docker
// backend populates it.
type BackendData struct {
	Docker *DockerData `json:"docker,omitempty"`
}

// BackendState holds mutable fields that are not tied to backend identity.
type BackendState struct {
	// StartupCommand is an optional shell command launched by the start
	// operation of the local backend.
	StartupCommand string `json:"startup_command,omitempty"`

	// StartupPid is the process id recorded when a startup command was
	// launched. Stop and stats for the local backend act on it.
	StartupPid int `json:"startup_pid,omitempty"`
}

// Record is the per-container metadata document. One metadata.json per
// container directory, and it is the authoritative existence and identity
// record for that container.
type Record struct {
	SchemaVersion int          `json:"schema_version"`
	Name          string       `json:"name" jsonschema:"pattern=^[A-Za-z0-9._-]+$"`
	Backend       Backend      `json:"backend" jsonschema:"enum=local,enum=docker"`
	Limits        Limits       `json:"limits"`
	Paths         Paths        `json:"paths"`
	BackendData   BackendData  `json:"backend_data"`
	BackendState  BackendState `json:"backend_state"`
	CreatedAt     time.Time    `json:"created_at"`
}
