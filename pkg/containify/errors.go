package containify

import "errors"

// ErrNotFound is returned when an operation references a container name with
// no resolvable metadata.
var ErrNotFound = errors.New("container not found")

// ErrAlreadyExists is returned when a create or rename targets a name whose
// container directory already exists, regardless of backend.
var ErrAlreadyExists = errors.New("container already exists")

// ErrInvalidName is returned when a container name contains characters
// outside [A-Za-z0-9._-] or is empty.
var ErrInvalidName = errors.New("invalid container name")

// ErrInvalidLimits is returned when a limit declaration fails validation
// before any side effect.
var ErrInvalidLimits = errors.New("invalid limits")

// ErrEngineUnavailable is returned when the Docker engine is not configured
// or not reachable.
var ErrEngineUnavailable = errors.New("docker engine is not available")

// ErrMissingEngineID is returned when a docker-backed record carries no
// engine container id. It signals metadata corruption.
var ErrMissingEngineID = errors.New("missing docker container id in metadata")

// ErrPullFailed is returned when the base image cannot be pulled.
var ErrPullFailed = errors.New("image pull failed")
