package containify

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/process"

	"github.com/NoahWhiteson/Containify/pkg/logger"
	"github.com/NoahWhiteson/Containify/pkg/types"
)

// LocalBackend is the process-sandbox substrate: a workspace directory plus
// an isolated Python environment under env/. Isolation is a dedicated
// filesystem workspace and a private package environment, not process or
// network isolation, and declared limits are recorded but not enforced.
type LocalBackend struct {
	c *Containify
}

func (b *LocalBackend) Kind() types.Backend {
	return types.BackendLocal
}

// Create claims the container directory, provisions the package environment
// and writes the metadata record. Any provisioning failure rolls the
// directory back so no half-created container is left behind.
func (b *LocalBackend) Create(name string, limits types.Limits) (rec types.Record, err error) {
	if err = ValidateLimits(limits); err != nil {
		return
	}
	if err = b.c.createContainerDir(name); err != nil {
		return
	}

	if err = b.provisionEnv(name); err != nil {
		b.c.rollbackContainerDir(name)
		return
	}

	rec = b.c.newRecord(name, types.BackendLocal, limits)
	if err = b.c.WriteRecord(name, rec); err != nil {
		b.c.rollbackContainerDir(name)
		return
	}
	return
}

// provisionEnv creates the isolated Python environment under env/ using the
// host interpreter's venv module, which seeds pip into it.
func (b *LocalBackend) provisionEnv(name string) error {
	python, err := hostPython()
	if err != nil {
		return err
	}

	cmd := exec.Command(python, "-m", "venv", b.c.EnvDir(name))
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("provisioning environment for %s: %w: %s", name, err, out)
	}
	return nil
}

// hostPython locates the host Python interpreter used to seed sandboxes.
func hostPython() (string, error) {
	for _, candidate := range []string{"python3", "python"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no python interpreter found on PATH")
}

// sandboxEnv returns the process environment for commands running inside
// the sandbox: the environment's binary directory is prepended to PATH and
// VIRTUAL_ENV points at the environment root. PIP_USER is cleared so pip
// installs into the sandbox instead of the user site.
func (b *LocalBackend) sandboxEnv(name string) []string {
	env := os.Environ()
	binDir := b.c.envBinDir(name)

	out := make([]string, 0, len(env)+3)
	for _, kv := range env {
		if len(kv) >= 5 && kv[:5] == "PATH=" {
			out = append(out, "PATH="+binDir+string(os.PathListSeparator)+kv[5:])
			continue
		}
		out = append(out, kv)
	}
	out = append(out, "VIRTUAL_ENV="+b.c.EnvDir(name))
	out = append(out, "PIP_USER=0")
	return out
}

// Run executes command with the workspace as working directory and the
// sandbox environment applied. Standard streams are inherited; the child's
// exit code is returned.
func (b *LocalBackend) Run(name string, command []string) (int, error) {
	if _, err := b.c.ReadRecord(name); err != nil {
		return -1, err
	}
	if len(command) == 0 {
		return -1, errors.New("empty command")
	}

	cmd := exec.Command(command[0], command[1:]...)
	return b.runInWorkspace(name, cmd)
}

// RunShellCommand executes a single shell command line through the user's
// shell inside the sandbox.
func (b *LocalBackend) RunShellCommand(name string, command string) (int, error) {
	if _, err := b.c.ReadRecord(name); err != nil {
		return -1, err
	}
	return b.runInWorkspace(name, shellCommand(command))
}

// Shell launches the user's interactive shell in the workspace.
func (b *LocalBackend) Shell(name string) (int, error) {
	if _, err := b.c.ReadRecord(name); err != nil {
		return -1, err
	}
	return b.runInWorkspace(name, exec.Command(defaultShell()))
}

// runInWorkspace finalizes cmd with the sandbox environment and workspace
// working directory, inherits stdio and waits for completion.
func (b *LocalBackend) runInWorkspace(name string, cmd *exec.Cmd) (int, error) {
	if err := os.MkdirAll(b.c.WorkspaceDir(name), 0755); err != nil {
		return -1, err
	}
	cmd.Dir = b.c.WorkspaceDir(name)
	cmd.Env = b.sandboxEnv(name)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return runForExitCode(cmd)
}

// Install upgrades pip first and aborts if that fails, then installs the
// named packages. Installing zero packages after a successful upgrade
// returns 0.
func (b *LocalBackend) Install(name string, packages []string) (int, error) {
	if _, err := b.c.ReadRecord(name); err != nil {
		return -1, err
	}
	python := b.c.envPython(name)

	code, err := b.runInWorkspace(name, exec.Command(python, "-m", "pip", "install", "--upgrade", "pip"))
	if err != nil {
		return code, err
	}
	if code != 0 {
		return code, fmt.Errorf("pip upgrade failed with exit code %d", code)
	}

	if len(packages) == 0 {
		return 0, nil
	}
	args := append([]string{"-m", "pip", "install"}, packages...)
	return b.runInWorkspace(name, exec.Command(python, args...))
}

// Start launches the recorded startup command, if any, detached in the
// workspace and records its pid for later stop and stats calls. Without a
// startup command it is a no-op.
func (b *LocalBackend) Start(name string) error {
	rec, err := b.c.ReadRecord(name)
	if err != nil {
		return err
	}
	if rec.BackendState.StartupCommand == "" {
		return nil
	}

	logPath := filepath.Join(b.c.ContainerDir(name), "startup.log")
	logF, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer logF.Close()

	cmd := shellCommand(rec.BackendState.StartupCommand)
	cmd.Dir = b.c.WorkspaceDir(name)
	cmd.Env = b.sandboxEnv(name)
	cmd.Stdout = logF
	cmd.Stderr = logF
	cmd.SysProcAttr = detachedProcAttr()

	if err = cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	pid := cmd.Process.Pid
	if err = cmd.Process.Release(); err != nil {
		logger.Warnf("failed to release startup process %d: %v", pid, err)
	}

	_, err = b.c.UpdateRecord(name, func(r *types.Record) {
		r.BackendState.StartupPid = pid
	})
	return err
}

// Stop terminates the recorded startup process, waiting up to five seconds
// before escalating to a kill. All errors are swallowed: the process may
// already be gone, and local filesystem state stays authoritative.
func (b *LocalBackend) Stop(name string) {
	rec, err := b.c.ReadRecord(name)
	if err != nil || rec.BackendState.StartupPid == 0 {
		return
	}

	p, err := process.NewProcess(int32(rec.BackendState.StartupPid))
	if err == nil {
		terminateWithTimeout(p, 5*time.Second)
	}

	b.c.UpdateRecord(name, func(r *types.Record) {
		r.BackendState.StartupPid = 0
	})
}

// terminateWithTimeout sends a terminate signal, polls for exit up to the
// timeout and kills the process if it is still alive.
func terminateWithTimeout(p *process.Process, timeout time.Duration) error {
	if err := p.Terminate(); err != nil {
		return err
	}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if running, err := p.IsRunning(); err != nil || !running {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return p.Kill()
}

// Stats reports a snapshot from the recorded startup pid when it is alive,
// and a zeroed unknown snapshot otherwise. It never fails.
func (b *LocalBackend) Stats(name string) types.StatsSnapshot {
	rec, err := b.c.ReadRecord(name)
	if err != nil {
		return types.StatsSnapshot{Status: types.StatusUnknown, Degraded: err.Error()}
	}
	pid := rec.BackendState.StartupPid
	if pid == 0 {
		return types.StatsSnapshot{Status: types.StatusUnknown}
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return types.StatsSnapshot{Status: types.StatusStopped, Degraded: err.Error()}
	}

	snapshot := types.StatsSnapshot{Status: types.StatusStopped}
	if running, runErr := p.IsRunning(); runErr == nil && running {
		snapshot.Status = types.StatusRunning
	}
	if cpu, cpuErr := p.Percent(100 * time.Millisecond); cpuErr == nil {
		snapshot.CPUPercent = cpu
	}
	if memInfo, memErr := p.MemoryInfo(); memErr == nil {
		snapshot.MemUsageBytes = memInfo.RSS
	}
	if createdMs, ctErr := p.CreateTime(); ctErr == nil && createdMs > 0 {
		uptime := time.Now().UnixMilli()/1000 - createdMs/1000
		snapshot.UptimeSeconds = &uptime
	}
	return snapshot
}

// Delete removes the container directory recursively. Deleting a
// nonexistent container is a no-op, not an error.
func (b *LocalBackend) Delete(name string) error {
	return os.RemoveAll(b.c.ContainerDir(name))
}
