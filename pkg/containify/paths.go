package containify

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateName checks that a container name is non-empty and made of
// alphanumerics, dots, underscores and dashes only.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q must match [A-Za-z0-9._-]+", ErrInvalidName, name)
	}
	// "." and ".." would resolve outside the containers directory.
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ContainerDir returns root/containers/<name>. Purely derived, callable
// before the record exists.
func (c *Containify) ContainerDir(name string) string {
	return filepath.Join(c.Options.ContainersPath, name)
}

// WorkspaceDir returns the workspace directory of a container.
func (c *Containify) WorkspaceDir(name string) string {
	return filepath.Join(c.ContainerDir(name), "workspace")
}

// EnvDir returns the isolated package environment directory of a local
// container.
func (c *Containify) EnvDir(name string) string {
	return filepath.Join(c.ContainerDir(name), "env")
}

// MetadataPath returns the metadata.json location of a container.
func (c *Containify) MetadataPath(name string) string {
	return filepath.Join(c.ContainerDir(name), "metadata.json")
}

// envBinDir returns the binary subdirectory of the package environment:
// env/bin on unix, env/Scripts on Windows.
func (c *Containify) envBinDir(name string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(c.EnvDir(name), "Scripts")
	}
	return filepath.Join(c.EnvDir(name), "bin")
}

// envPython returns the sandboxed Python interpreter path of a local
// container.
func (c *Containify) envPython(name string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(c.envBinDir(name), "python.exe")
	}
	return filepath.Join(c.envBinDir(name), "python")
}
