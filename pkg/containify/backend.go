package containify

import (
	"github.com/NoahWhiteson/Containify/pkg/types"
)

// Backend is the uniform lifecycle contract shared by the two execution
// substrates. The set of implementations is closed: LocalBackend and
// DockerBackend, selected through the persisted backend enum.
//
// Run, Shell and Install block until the child process or remote exec call
// completes and return its exit code. Stop is best-effort and never reports
// a failure; Stats never fails and degrades to a zeroed snapshot instead.
type Backend interface {
	Kind() types.Backend
	Create(name string, limits types.Limits) (types.Record, error)
	Run(name string, command []string) (int, error)
	RunShellCommand(name string, command string) (int, error)
	Shell(name string) (int, error)
	Install(name string, packages []string) (int, error)
	Start(name string) error
	Stop(name string)
	Stats(name string) types.StatsSnapshot
	Delete(name string) error
}

// Local returns the process-sandbox backend.
func (c *Containify) Local() *LocalBackend {
	return &LocalBackend{c: c}
}

// Docker returns the managed-container backend.
func (c *Containify) Docker() *DockerBackend {
	return &DockerBackend{c: c}
}

// Backend returns the backend implementation for the given kind. The docker
// backend is the fallback for the non-local kind; callers obtain the kind
// from Resolve or from a stored record, both of which only ever yield the
// two declared values.
func (c *Containify) Backend(kind types.Backend) Backend {
	if kind == types.BackendLocal {
		return c.Local()
	}
	return c.Docker()
}

// BackendFor resolves a bare container name to its owning backend. It
// returns ErrNotFound when no record claims the name.
func (c *Containify) BackendFor(name string) (Backend, error) {
	kind, ok := c.Resolve(name)
	if !ok {
		return nil, fmtNotFound(name)
	}
	return c.Backend(kind), nil
}
