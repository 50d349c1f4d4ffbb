package containify

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoahWhiteson/Containify/pkg/types"
)

func TestFileServerConfigDefaults(t *testing.T) {
	c := newTestContainify(t)

	config, err := c.ReadFileServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", config.Host)
	assert.Equal(t, 2121, config.Port)
	assert.Equal(t, "containify", config.User)
	assert.Equal(t, "containify", config.Password)
}

func TestFileServerConfigMerge(t *testing.T) {
	c := newTestContainify(t)
	require.NoError(t, os.WriteFile(c.Options.FileServerConfigPath, []byte(`{"port": 2222}`), 0600))

	config, err := c.ReadFileServerConfig()
	require.NoError(t, err)
	assert.Equal(t, 2222, config.Port)
	assert.Equal(t, "127.0.0.1", config.Host)
	assert.Equal(t, "containify", config.User)
}

func TestFileServerConfigRoundTrip(t *testing.T) {
	c := newTestContainify(t)

	want := types.FileServerConfig{Host: "0.0.0.0", Port: 2222, User: "dev", Password: "secret"}
	require.NoError(t, c.WriteFileServerConfig(want))

	got, err := c.ReadFileServerConfig()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileServerRunningNoPidfile(t *testing.T) {
	c := newTestContainify(t)

	running, pid := c.FileServerRunning()
	assert.False(t, running)
	assert.Zero(t, pid)
}

func TestFileServerRunningGarbagePidfile(t *testing.T) {
	c := newTestContainify(t)
	require.NoError(t, os.WriteFile(c.Options.FileServerPidPath, []byte("not a pid"), 0644))

	running, _ := c.FileServerRunning()
	assert.False(t, running)
	assert.NoFileExists(t, c.Options.FileServerPidPath)
}

func TestFileServerRunningLivePid(t *testing.T) {
	c := newTestContainify(t)

	// The test process itself is a process known to be alive.
	own := os.Getpid()
	require.NoError(t, os.WriteFile(c.Options.FileServerPidPath, []byte(strconv.Itoa(own)), 0644))

	running, pid := c.FileServerRunning()
	assert.True(t, running)
	assert.Equal(t, own, pid)
}

func TestStopFileServerWhenNotRunning(t *testing.T) {
	c := newTestContainify(t)
	assert.NoError(t, c.StopFileServer())
}

func TestFTPDriverAuth(t *testing.T) {
	c := newTestContainify(t)
	driver := &ftpDriver{
		config:  types.FileServerConfig{Host: "127.0.0.1", Port: 2121, User: "u", Password: "p"},
		rootDir: c.Options.ContainersPath,
	}

	fs, err := driver.AuthUser(nil, "u", "p")
	require.NoError(t, err)
	assert.NotNil(t, fs)

	_, err = driver.AuthUser(nil, "u", "wrong")
	assert.Error(t, err)
	_, err = driver.AuthUser(nil, "nobody", "p")
	assert.Error(t, err)
}

func TestFTPDriverSettings(t *testing.T) {
	driver := &ftpDriver{config: types.FileServerConfig{Host: "127.0.0.1", Port: 2121}}

	settings, err := driver.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:2121", settings.ListenAddr)

	_, err = driver.GetTLSConfig()
	assert.Error(t, err)
}
