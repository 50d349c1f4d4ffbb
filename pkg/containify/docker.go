package containify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	dockertypes "github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/cpu"

	"github.com/NoahWhiteson/Containify/pkg/logger"
	"github.com/NoahWhiteson/Containify/pkg/tools"
	"github.com/NoahWhiteson/Containify/pkg/types"
)

// workspaceMountPath is the fixed in-container mount point of the host
// workspace directory.
const workspaceMountPath = "/workspace"

// DockerBackend delegates container lifecycle to the Docker engine. The
// engine connection is opened per call, not pooled; each operation is
// independent.
type DockerBackend struct {
	c *Containify
}

func (b *DockerBackend) Kind() types.Backend {
	return types.BackendDocker
}

// engineClient opens a connection to the engine from the environment and
// verifies it is reachable.
func (b *DockerBackend) engineClient() (*client.Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	if _, err = cli.Ping(b.c.Ctx); err != nil {
		cli.Close()
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	return cli, nil
}

// engineContainerName returns the engine-side name for a container.
func engineContainerName(name string) string {
	return "containify-" + name
}

// nanoCPUs translates a "percent of all CPUs" limit into the engine's
// absolute CPU-time quota: percent/100 x logical CPUs x 1e9 ns.
func nanoCPUs(percent uint, logicalCPUs int) int64 {
	return int64(float64(percent) / 100.0 * float64(logicalCPUs) * 1_000_000_000)
}

// memoryBytes translates a MB limit into bytes. Zero means unset and is
// reported as zero so callers can omit the ceiling entirely.
func memoryBytes(memoryMB uint) int64 {
	return int64(memoryMB) * 1024 * 1024
}

// Create pulls the base image, translates the declared limits into engine
// constructs and creates an engine container bound to the host workspace.
// The engine container is created stopped with a placeholder sleep process
// as its command. Any failure after the directory is claimed rolls the
// directory back.
func (b *DockerBackend) Create(name string, limits types.Limits) (rec types.Record, err error) {
	if err = ValidateLimits(limits); err != nil {
		return
	}
	if err = tools.ValidateImageName(b.c.Options.Image); err != nil {
		return
	}
	if err = b.c.createContainerDir(name); err != nil {
		return
	}

	cli, err := b.engineClient()
	if err != nil {
		b.c.rollbackContainerDir(name)
		return
	}
	defer cli.Close()

	if err = b.pullImage(cli); err != nil {
		b.c.rollbackContainerDir(name)
		return
	}

	logicalCPUs, countErr := cpu.Counts(true)
	if countErr != nil || logicalCPUs < 1 {
		logicalCPUs = 1
	}

	resources := container.Resources{
		NanoCPUs: nanoCPUs(limits.CPUPercent, logicalCPUs),
	}
	if limits.MemoryMB > 0 {
		resources.Memory = memoryBytes(limits.MemoryMB)
	}

	labels := map[string]string{"containify.name": name}
	if settings, settingsErr := b.c.EnsureSettings(); settingsErr == nil {
		labels["containify.installation"] = settings.InstallationID
	}

	created, err := cli.ContainerCreate(b.c.Ctx,
		&container.Config{
			Image:      b.c.Options.Image,
			OpenStdin:  true,
			Tty:        true,
			WorkingDir: workspaceMountPath,
			Cmd:        []string{"sleep", "infinity"},
			Labels:     labels,
		},
		&container.HostConfig{
			Binds:     []string{b.c.WorkspaceDir(name) + ":" + workspaceMountPath + ":rw"},
			Resources: resources,
		},
		nil, nil, engineContainerName(name))
	if err != nil {
		b.c.rollbackContainerDir(name)
		err = fmt.Errorf("creating engine container for %s: %w", name, err)
		return
	}

	rec = b.c.newRecord(name, types.BackendDocker, limits)
	rec.BackendData.Docker = &types.DockerData{
		ContainerID: created.ID,
		Image:       b.c.Options.Image,
	}
	if err = b.c.WriteRecord(name, rec); err != nil {
		cli.ContainerRemove(b.c.Ctx, created.ID, container.RemoveOptions{Force: true})
		b.c.rollbackContainerDir(name)
		return
	}
	return
}

// pullImage pulls the configured base image, draining the progress stream
// through a byte counter.
func (b *DockerBackend) pullImage(cli *client.Client) error {
	rc, err := cli.ImagePull(b.c.Ctx, b.c.Options.Image, dockertypes.ImagePullOptions{})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPullFailed, b.c.Options.Image, err)
	}
	defer rc.Close()

	bar := progressbar.DefaultBytes(-1, "pulling "+b.c.Options.Image)
	defer bar.Close()
	if _, err = io.Copy(bar, rc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPullFailed, b.c.Options.Image, err)
	}
	return nil
}

// containerID resolves the engine container id from metadata. A record
// without one signals metadata corruption.
func (b *DockerBackend) containerID(name string) (string, error) {
	rec, err := b.c.ReadRecord(name)
	if err != nil {
		return "", err
	}
	if rec.BackendData.Docker == nil || rec.BackendData.Docker.ContainerID == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingEngineID, name)
	}
	return rec.BackendData.Docker.ContainerID, nil
}

// ensureRunning starts the engine container if it is not already running.
func (b *DockerBackend) ensureRunning(cli *client.Client, id string) error {
	inspect, err := cli.ContainerInspect(b.c.Ctx, id)
	if err != nil {
		return err
	}
	if inspect.State != nil && inspect.State.Running {
		return nil
	}
	return cli.ContainerStart(b.c.Ctx, id, container.StartOptions{})
}

// Run executes command inside the engine container, prints the combined
// output and returns the exec exit code, 0 when the engine reports none.
func (b *DockerBackend) Run(name string, command []string) (int, error) {
	id, err := b.containerID(name)
	if err != nil {
		return -1, err
	}

	cli, err := b.engineClient()
	if err != nil {
		return -1, err
	}
	defer cli.Close()

	if err = b.ensureRunning(cli, id); err != nil {
		return -1, err
	}
	return b.execCapture(cli, id, command)
}

// RunShellCommand executes a command line through the container's shell.
func (b *DockerBackend) RunShellCommand(name string, command string) (int, error) {
	return b.Run(name, []string{"/bin/sh", "-lc", command})
}

// execCapture runs a non-interactive exec, captures the multiplexed output
// into one combined buffer and prints it.
func (b *DockerBackend) execCapture(cli *client.Client, id string, command []string) (int, error) {
	execResp, err := cli.ContainerExecCreate(b.c.Ctx, id, dockertypes.ExecConfig{
		Cmd:          command,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return -1, fmt.Errorf("exec create: %w", err)
	}

	attach, err := cli.ContainerExecAttach(b.c.Ctx, execResp.ID, dockertypes.ExecStartCheck{})
	if err != nil {
		return -1, fmt.Errorf("exec attach: %w", err)
	}
	defer attach.Close()

	var combined bytes.Buffer
	if _, err = stdcopy.StdCopy(&combined, &combined, attach.Reader); err != nil {
		return -1, fmt.Errorf("exec read: %w", err)
	}
	if combined.Len() > 0 {
		fmt.Print(combined.String())
	}

	inspect, err := cli.ContainerExecInspect(b.c.Ctx, execResp.ID)
	if err != nil {
		// The command ran; without an inspectable result the engine
		// reports no exit code.
		return 0, nil
	}
	return inspect.ExitCode, nil
}

// Shell attaches an interactive shell through the docker CLI. The CLI is
// used deliberately: the programmatic exec API does not provide full TTY
// semantics.
func (b *DockerBackend) Shell(name string) (int, error) {
	id, err := b.containerID(name)
	if err != nil {
		return -1, err
	}

	cli, err := b.engineClient()
	if err != nil {
		return -1, err
	}
	defer cli.Close()

	if err = b.ensureRunning(cli, id); err != nil {
		return -1, err
	}

	dockerCLI := os.Getenv("DOCKER_CLI")
	if dockerCLI == "" {
		dockerCLI = "docker"
	}
	cmd := exec.Command(dockerCLI, "exec", "-it", id, "/bin/bash")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return runForExitCode(cmd)
}

// Install upgrades pip inside the container first and aborts on failure,
// then installs the named packages.
func (b *DockerBackend) Install(name string, packages []string) (int, error) {
	id, err := b.containerID(name)
	if err != nil {
		return -1, err
	}

	cli, err := b.engineClient()
	if err != nil {
		return -1, err
	}
	defer cli.Close()

	if err = b.ensureRunning(cli, id); err != nil {
		return -1, err
	}

	code, err := b.execCapture(cli, id, []string{"python", "-m", "pip", "install", "--upgrade", "pip"})
	if err != nil {
		return code, err
	}
	if code != 0 {
		return code, fmt.Errorf("pip upgrade failed with exit code %d", code)
	}

	if len(packages) == 0 {
		return 0, nil
	}
	cmd := append([]string{"python", "-m", "pip", "install"}, packages...)
	return b.execCapture(cli, id, cmd)
}

// Start ensures the engine container is running. Idempotent.
func (b *DockerBackend) Start(name string) error {
	id, err := b.containerID(name)
	if err != nil {
		return err
	}

	cli, err := b.engineClient()
	if err != nil {
		return err
	}
	defer cli.Close()

	return b.ensureRunning(cli, id)
}

// Stop stops the engine container with a ten second grace period. Failures
// are swallowed: stopping is advisory and the container may already be
// gone.
func (b *DockerBackend) Stop(name string) {
	id, err := b.containerID(name)
	if err != nil {
		return
	}

	cli, err := b.engineClient()
	if err != nil {
		return
	}
	defer cli.Close()

	inspect, err := cli.ContainerInspect(b.c.Ctx, id)
	if err != nil || inspect.State == nil || !inspect.State.Running {
		return
	}

	timeout := 10
	if err = cli.ContainerStop(b.c.Ctx, id, container.StopOptions{Timeout: &timeout}); err != nil {
		logger.Debugf("stopping %s: %v", name, err)
	}
}

// Stats queries the engine for a one-shot resource sample. CPU% comes from
// the delta of cumulative counters between the sample and its pre-sample;
// uptime from the recorded start timestamp while running. Query failures
// degrade to a zeroed snapshot.
func (b *DockerBackend) Stats(name string) types.StatsSnapshot {
	id, err := b.containerID(name)
	if err != nil {
		return types.StatsSnapshot{Status: types.StatusUnknown, Degraded: err.Error()}
	}

	cli, err := b.engineClient()
	if err != nil {
		return types.StatsSnapshot{Status: types.StatusUnknown, Degraded: err.Error()}
	}
	defer cli.Close()

	inspect, err := cli.ContainerInspect(b.c.Ctx, id)
	if err != nil {
		return types.StatsSnapshot{Status: types.StatusUnknown, Degraded: err.Error()}
	}
	status := types.StatusUnknown
	running := false
	if inspect.State != nil {
		running = inspect.State.Running
		if running {
			status = types.StatusRunning
		} else {
			status = types.StatusStopped
		}
	}

	resp, err := cli.ContainerStats(b.c.Ctx, id, false)
	if err != nil {
		return types.StatsSnapshot{Status: status, Degraded: err.Error()}
	}
	defer resp.Body.Close()

	var stats dockertypes.StatsJSON
	if err = json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return types.StatsSnapshot{Status: status, Degraded: err.Error()}
	}

	snapshot := types.StatsSnapshot{
		CPUPercent:    cpuPercentFromStats(&stats),
		MemUsageBytes: stats.MemoryStats.Usage,
		MemLimitBytes: stats.MemoryStats.Limit,
		Status:        status,
	}
	if running && inspect.State != nil {
		if startedAt, parseErr := time.Parse(time.RFC3339Nano, inspect.State.StartedAt); parseErr == nil {
			uptime := int64(time.Since(startedAt).Seconds())
			snapshot.UptimeSeconds = &uptime
		}
	}
	return snapshot
}

// cpuPercentFromStats derives a CPU percentage from the cumulative CPU-time
// counters of one engine sample: the container delta over the system delta,
// scaled by the online CPU count. Non-positive deltas report 0.
func cpuPercentFromStats(s *dockertypes.StatsJSON) float64 {
	cpuDelta := float64(s.CPUStats.CPUUsage.TotalUsage) - float64(s.PreCPUStats.CPUUsage.TotalUsage)
	systemDelta := float64(s.CPUStats.SystemUsage) - float64(s.PreCPUStats.SystemUsage)
	if cpuDelta <= 0 || systemDelta <= 0 {
		return 0
	}

	online := int(s.CPUStats.OnlineCPUs)
	if online == 0 {
		online = len(s.CPUStats.CPUUsage.PercpuUsage)
	}
	if online == 0 {
		online = 1
	}
	return cpuDelta / systemDelta * float64(online) * 100.0
}

// Delete force-removes the engine container, then removes the host
// directory regardless of the engine-side outcome. The filesystem record is
// authoritative; engine state is advisory and best-effort to clean up.
func (b *DockerBackend) Delete(name string) error {
	if id, err := b.containerID(name); err == nil {
		if cli, cliErr := b.engineClient(); cliErr == nil {
			if rmErr := cli.ContainerRemove(b.c.Ctx, id, container.RemoveOptions{Force: true}); rmErr != nil {
				logger.Debugf("removing engine container for %s: %v", name, rmErr)
			}
			cli.Close()
		}
	}
	return os.RemoveAll(b.c.ContainerDir(name))
}
