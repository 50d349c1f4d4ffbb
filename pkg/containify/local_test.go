package containify

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/shirou/gopsutil/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoahWhiteson/Containify/pkg/types"
)

// requirePython skips tests that provision a real sandbox when no host
// interpreter is available.
func requirePython(t *testing.T) {
	t.Helper()
	if _, err := hostPython(); err != nil {
		t.Skip("no python interpreter on PATH")
	}
}

func TestLocalCreateProvisionsSandbox(t *testing.T) {
	requirePython(t)
	c := newTestContainify(t)
	limits := types.Limits{MemoryMB: 256, StorageMB: 512, CPUPercent: 50}

	rec, err := c.Local().Create("demo", limits)
	require.NoError(t, err)
	assert.Equal(t, limits, rec.Limits)
	assert.Equal(t, types.BackendLocal, rec.Backend)

	assert.DirExists(t, c.WorkspaceDir("demo"))
	assert.FileExists(t, c.envPython("demo"))

	stored, err := c.ReadRecord("demo")
	require.NoError(t, err)
	assert.Equal(t, limits, stored.Limits)
}

func TestLocalCreateRejectsInvalidLimits(t *testing.T) {
	c := newTestContainify(t)

	_, err := c.Local().Create("demo", types.Limits{CPUPercent: 0})
	assert.ErrorIs(t, err, ErrInvalidLimits)
	assert.NoDirExists(t, c.ContainerDir("demo"))

	_, err = c.Local().Create("demo", types.Limits{CPUPercent: 101})
	assert.ErrorIs(t, err, ErrInvalidLimits)
}

func TestLocalCreateDuplicate(t *testing.T) {
	c := newTestContainify(t)
	fabricateContainer(t, c, "demo", types.BackendLocal, types.Limits{CPUPercent: 100})

	_, err := c.Local().Create("demo", types.Limits{CPUPercent: 100})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestLocalRunNotFound(t *testing.T) {
	c := newTestContainify(t)

	_, err := c.Local().Run("missing", []string{"true"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalRunInWorkspace(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a unix shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no sh on PATH")
	}
	c := newTestContainify(t)
	fabricateContainer(t, c, "demo", types.BackendLocal, types.Limits{CPUPercent: 100})

	// Output streams are inherited, so assert through the filesystem: the
	// command runs with the workspace as its working directory.
	code, err := c.Local().Run("demo", []string{"sh", "-c", "echo hi > out.txt"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	data, err := os.ReadFile(filepath.Join(c.WorkspaceDir("demo"), "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(data))
}

func TestLocalRunExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a unix shell")
	}
	c := newTestContainify(t)
	fabricateContainer(t, c, "demo", types.BackendLocal, types.Limits{CPUPercent: 100})

	code, err := c.Local().Run("demo", []string{"sh", "-c", "exit 7"})
	require.NoError(t, err)
	assert.Equal(t, 7, code)
}

func TestLocalSandboxEnv(t *testing.T) {
	c := newTestContainify(t)
	b := c.Local()

	env := b.sandboxEnv("demo")

	var path, virtualEnv, pipUser string
	for _, kv := range env {
		switch {
		case len(kv) >= 5 && kv[:5] == "PATH=":
			path = kv[5:]
		case len(kv) >= 12 && kv[:12] == "VIRTUAL_ENV=":
			virtualEnv = kv[12:]
		case len(kv) >= 9 && kv[:9] == "PIP_USER=":
			pipUser = kv[9:]
		}
	}
	assert.Equal(t, c.EnvDir("demo"), virtualEnv)
	assert.Equal(t, "0", pipUser)
	assert.Equal(t, c.envBinDir("demo"), filepath.SplitList(path)[0])
}

func TestLocalStatsNeverFails(t *testing.T) {
	c := newTestContainify(t)

	// Unknown container: degraded unknown snapshot, not an error.
	snapshot := c.Local().Stats("missing")
	assert.Equal(t, types.StatusUnknown, snapshot.Status)
	assert.NotEmpty(t, snapshot.Degraded)

	// Fresh container without a recorded pid: zeroed unknown snapshot.
	fabricateContainer(t, c, "demo", types.BackendLocal, types.Limits{CPUPercent: 100})
	snapshot = c.Local().Stats("demo")
	assert.Equal(t, types.StatusUnknown, snapshot.Status)
	assert.Zero(t, snapshot.CPUPercent)
	assert.Zero(t, snapshot.MemUsageBytes)
	assert.Nil(t, snapshot.UptimeSeconds)
}

func TestLocalStopWithoutPidIsNoop(t *testing.T) {
	c := newTestContainify(t)
	fabricateContainer(t, c, "demo", types.BackendLocal, types.Limits{CPUPercent: 100})

	c.Local().Stop("demo")

	rec, err := c.ReadRecord("demo")
	require.NoError(t, err)
	assert.Zero(t, rec.BackendState.StartupPid)
}

func TestLocalStartWithoutStartupCommand(t *testing.T) {
	c := newTestContainify(t)
	fabricateContainer(t, c, "demo", types.BackendLocal, types.Limits{CPUPercent: 100})

	require.NoError(t, c.Local().Start("demo"))

	rec, err := c.ReadRecord("demo")
	require.NoError(t, err)
	assert.Zero(t, rec.BackendState.StartupPid)
}

func TestLocalStartRecordsPid(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a unix shell")
	}
	c := newTestContainify(t)
	fabricateContainer(t, c, "demo", types.BackendLocal, types.Limits{CPUPercent: 100})

	_, err := c.UpdateRecord("demo", func(r *types.Record) {
		r.BackendState.StartupCommand = "sleep 30"
	})
	require.NoError(t, err)

	require.NoError(t, c.Local().Start("demo"))

	rec, err := c.ReadRecord("demo")
	require.NoError(t, err)
	require.NotZero(t, rec.BackendState.StartupPid)

	snapshot := c.Local().Stats("demo")
	assert.Equal(t, types.StatusRunning, snapshot.Status)

	c.Local().Stop("demo")
	rec, err = c.ReadRecord("demo")
	require.NoError(t, err)
	assert.Zero(t, rec.BackendState.StartupPid)
}

func TestTerminateWithTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a unix sleep")
	}
	cmd := exec.Command("sleep", "30")
	require.NoError(t, cmd.Start())
	// Reap the child as soon as it dies so it cannot linger as a zombie.
	go cmd.Wait()

	p, err := process.NewProcess(int32(cmd.Process.Pid))
	require.NoError(t, err)

	// A live child exits on the terminate signal well within the timeout.
	assert.NoError(t, terminateWithTimeout(p, 5*time.Second))
}

func TestLocalDeleteIdempotent(t *testing.T) {
	c := newTestContainify(t)
	fabricateContainer(t, c, "demo", types.BackendLocal, types.Limits{CPUPercent: 100})

	require.NoError(t, c.Local().Delete("demo"))
	assert.NoDirExists(t, c.ContainerDir("demo"))

	// Deleting again is a no-op.
	require.NoError(t, c.Local().Delete("demo"))

	_, err := c.ReadRecord("demo")
	assert.ErrorIs(t, err, ErrNotFound)
}
