package containify

import (
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ftpserver "github.com/fclairamb/ftpserverlib"
	"github.com/shirou/gopsutil/process"
	"github.com/spf13/afero"

	"github.com/NoahWhiteson/Containify/pkg/logger"
	"github.com/NoahWhiteson/Containify/pkg/types"
)

// DefaultFileServerConfig returns the FTP side-service defaults. The
// loopback bind keeps the clear-text service private to the host unless
// reconfigured.
func DefaultFileServerConfig() types.FileServerConfig {
	return types.FileServerConfig{
		Host:     "127.0.0.1",
		Port:     2121,
		User:     "containify",
		Password: "containify",
	}
}

// ReadFileServerConfig loads the fileserver config merged over the
// defaults. A missing file yields the defaults.
func (c *Containify) ReadFileServerConfig() (types.FileServerConfig, error) {
	config := DefaultFileServerConfig()

	data, err := os.ReadFile(c.Options.FileServerConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, fmt.Errorf("reading fileserver config: %w", err)
	}
	if err = json.Unmarshal(data, &config); err != nil {
		return DefaultFileServerConfig(), fmt.Errorf("parsing fileserver config: %w", err)
	}
	return config, nil
}

// WriteFileServerConfig persists the fileserver config.
func (c *Containify) WriteFileServerConfig(config types.FileServerConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(c.Options.FileServerConfigPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.Options.FileServerConfigPath, data, 0o600)
}

// FileServerRunning reports whether the pidfile points at a live process.
// A stale pidfile is removed on the way.
func (c *Containify) FileServerRunning() (bool, int) {
	data, err := os.ReadFile(c.Options.FileServerPidPath)
	if err != nil {
		return false, 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		os.Remove(c.Options.FileServerPidPath)
		return false, 0
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		os.Remove(c.Options.FileServerPidPath)
		return false, 0
	}
	running, err := p.IsRunning()
	if err != nil || !running {
		os.Remove(c.Options.FileServerPidPath)
		return false, 0
	}
	return true, pid
}

// StartFileServer launches the FTP service as a detached re-execution of
// this binary and records its pid. Starting twice is an error.
func (c *Containify) StartFileServer(config types.FileServerConfig) error {
	if running, pid := c.FileServerRunning(); running {
		return fmt.Errorf("fileserver already running with pid %d", pid)
	}
	if err := c.WriteFileServerConfig(config); err != nil {
		return err
	}

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating own executable: %w", err)
	}

	logPath := filepath.Join(c.Options.RootDir, "fileserver.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()

	cmd := exec.Command(self, "fileserver-serve")
	cmd.Dir = c.Options.RootDir
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = detachedProcAttr()
	if err = cmd.Start(); err != nil {
		return fmt.Errorf("starting fileserver: %w", err)
	}
	pid := cmd.Process.Pid
	if err = cmd.Process.Release(); err != nil {
		logger.Debugf("releasing fileserver process: %v", err)
	}

	if err = os.WriteFile(c.Options.FileServerPidPath, []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("writing pidfile: %w", err)
	}
	logger.Printf("Fileserver started on %s:%d (pid %d)", config.Host, config.Port, pid)
	return nil
}

// StopFileServer terminates the recorded service process and its children
// and clears the pidfile. Stopping an already stopped service is not an
// error.
func (c *Containify) StopFileServer() error {
	running, pid := c.FileServerRunning()
	if !running {
		return nil
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		os.Remove(c.Options.FileServerPidPath)
		return nil
	}

	if children, childErr := p.Children(); childErr == nil {
		for _, child := range children {
			if termErr := terminateWithTimeout(child, 3*time.Second); termErr != nil {
				logger.Debugf("terminating fileserver child %d: %v", child.Pid, termErr)
			}
		}
	}
	if err = terminateWithTimeout(p, 5*time.Second); err != nil {
		logger.Debugf("terminating fileserver %d: %v", pid, err)
	}
	return os.Remove(c.Options.FileServerPidPath)
}

// ServeFTP runs the FTP server in the foreground until it fails or the
// process is terminated. It serves the containers directory so every
// workspace is reachable from one share.
func (c *Containify) ServeFTP() error {
	config, err := c.ReadFileServerConfig()
	if err != nil {
		return err
	}
	driver := &ftpDriver{
		config:  config,
		rootDir: c.Options.ContainersPath,
	}
	server := ftpserver.NewFtpServer(driver)
	logger.Printf("Serving FTP on %s:%d from %s", config.Host, config.Port, driver.rootDir)
	return server.ListenAndServe()
}

// ftpDriver adapts the persisted fileserver config to the ftpserverlib
// driver contract. Each authenticated client gets a filesystem rooted at
// the containers directory.
type ftpDriver struct {
	config  types.FileServerConfig
	rootDir string
}

func (d *ftpDriver) GetSettings() (*ftpserver.Settings, error) {
	return &ftpserver.Settings{
		ListenAddr: fmt.Sprintf("%s:%d", d.config.Host, d.config.Port),
	}, nil
}

func (d *ftpDriver) ClientConnected(cc ftpserver.ClientContext) (string, error) {
	return "Containify FTP ready", nil
}

func (d *ftpDriver) ClientDisconnected(cc ftpserver.ClientContext) {
}

func (d *ftpDriver) AuthUser(cc ftpserver.ClientContext, user, pass string) (ftpserver.ClientDriver, error) {
	if user != d.config.User || pass != d.config.Password {
		return nil, errors.New("invalid credentials")
	}
	return afero.NewBasePathFs(afero.NewOsFs(), d.rootDir), nil
}

func (d *ftpDriver) GetTLSConfig() (*tls.Config, error) {
	return nil, errors.New("TLS is not configured")
}
