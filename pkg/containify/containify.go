package containify

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/NoahWhiteson/Containify/pkg/types"
)

// DefaultImage is the base image for docker-backed containers when nothing
// else is configured.
const DefaultImage = "python:3.11-slim"

// Containify is the entry point to the core. It carries the resolved
// configuration for one invocation; all operations hang off it so that the
// root directory is threaded explicitly instead of read from ambient state.
type Containify struct {
	Options types.Options
	Ctx     context.Context
}

// NewContainify resolves the root directory and derived paths, creates the
// containers directory if missing, and returns a ready instance.
//
// Root resolution priority:
//  1. the explicit rootOverride argument,
//  2. the CONTAINIFY_ROOT environment variable,
//  3. the platform default (/containify, C:\containify on Windows).
func NewContainify(rootOverride string) (c Containify, err error) {
	root := rootOverride
	if root == "" {
		root = os.Getenv("CONTAINIFY_ROOT")
	}
	if root == "" {
		root = defaultRootDir()
	}

	image := os.Getenv("CONTAINIFY_DOCKER_IMAGE")
	if image == "" {
		image = DefaultImage
	}

	c.Options = types.Options{
		RootDir:              root,
		ContainersPath:       filepath.Join(root, "containers"),
		SettingsPath:         filepath.Join(root, "settings.json"),
		FileServerConfigPath: filepath.Join(root, "fileserver.json"),
		FileServerPidPath:    filepath.Join(root, "fileserver.pid"),
		Image:                image,
	}
	c.Ctx = context.Background()

	err = os.MkdirAll(c.Options.ContainersPath, 0755)
	if err != nil {
		return
	}
	return
}

// defaultRootDir returns the platform default installation root.
func defaultRootDir() string {
	if runtime.GOOS == "windows" {
		return `C:\containify`
	}
	return "/containify"
}
