package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/yoas/yoas/pkg/errors"
)

const (
	// EnvLogsFolder names the directory holding the database and log files.
	EnvLogsFolder = "DB_N_LOGS_FOLDER"
	// EnvHost is the server bind host.
	EnvHost = "HOST"
	// EnvPort is the server bind port.
	EnvPort = "PORT"

	// DefaultLogsFolder is used when DB_N_LOGS_FOLDER is not set.
	DefaultLogsFolder = "db_n_logs"
	// DefaultHost is used when HOST is not set.
	DefaultHost = "0.0.0.0"
	// DefaultPort is used when PORT is not set.
	DefaultPort = "8000"

	// logTimeLayout renders local time as YYYY-MM-DD__HH-MM-SS followed
	// immediately by the numeric UTC offset, e.g. 2025-01-15__10-30-00+0000.
	logTimeLayout = "2006-01-02__15-04-05-0700"
)

// Config holds the launcher configuration, materialized once from the
// environment so no component reads env vars past startup.
type Config struct {
	// Host and Port the launched server binds to.
	Host string
	Port string

	// LogsFolder receives one append-mode log file per launch.
	LogsFolder string

	// ServerPath is the binary to start. Empty means the current executable.
	ServerPath string
	// ServerArgs are passed to the server binary. Empty means ["serve"].
	ServerArgs []string

	// Clock supplies the launch timestamp. Nil means time.Now.
	Clock func() time.Time
}

// NewConfig returns a Config with defaults, overridden by the environment
// variables DB_N_LOGS_FOLDER, HOST, and PORT when set.
func NewConfig() *Config {
	cfg := &Config{
		Host:       DefaultHost,
		Port:       DefaultPort,
		LogsFolder: DefaultLogsFolder,
	}

	if v := os.Getenv(EnvLogsFolder); v != "" {
		cfg.LogsFolder = v
	}
	if v := os.Getenv(EnvHost); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		cfg.Port = v
	}

	return cfg
}

// Result describes a successfully requested launch. It says nothing about
// the eventual health of the server process.
type Result struct {
	PID     int    `json:"pid" yaml:"pid"`
	LogPath string `json:"log_path" yaml:"log_path"`
}

// LogFilePath returns the log file path for a launch at time t.
func (c *Config) LogFilePath(t time.Time) string {
	return filepath.Join(c.LogsFolder, t.Format(logTimeLayout)+".log")
}

// now returns the configured clock's current time.
func (c *Config) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// ensureLogsFolder creates the log directory and any missing parents.
// Safe to call when the directory already exists.
func (c *Config) ensureLogsFolder() error {
	if err := os.MkdirAll(c.LogsFolder, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to create log directory %q", c.LogsFolder), err)
	}
	return nil
}

// prepare creates the log directory and opens the append-mode log file.
func (c *Config) prepare() (*os.File, error) {
	if err := c.ensureLogsFolder(); err != nil {
		return nil, err
	}

	path := c.LogFilePath(c.now())
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to open log file %q", path), err)
	}
	return f, nil
}

// command builds the server invocation with stdout and stderr redirected to
// the log file and the bind address plus log folder passed via environment.
func (c *Config) command(logFile *os.File) (*exec.Cmd, error) {
	path := c.ServerPath
	if path == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal,
				"failed to resolve server executable", err)
		}
		path = exe
	}

	args := c.ServerArgs
	if len(args) == 0 {
		args = []string{"serve"}
	}

	cmd := exec.Command(path, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Stdin = nil
	cmd.Env = append(os.Environ(),
		EnvHost+"="+c.Host,
		EnvPort+"="+c.Port,
		EnvLogsFolder+"="+c.LogsFolder,
	)

	return cmd, nil
}

// Launch starts the server as a detached process: its own session, immune to
// the termination of the invoking shell, with combined output appended to a
// timestamped log file. The launcher's own file handle is closed on every
// exit path; the child keeps its inherited descriptors.
//
// Two launches within the same second share a log file name; append mode
// keeps both runs' output.
func Launch(cfg *Config) (*Result, error) {
	logFile, err := cfg.prepare()
	if err != nil {
		return nil, err
	}
	defer logFile.Close()

	cmd, err := cfg.command(logFile)
	if err != nil {
		return nil, err
	}
	cmd.SysProcAttr = detachedProcAttr()

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to start server %q", cmd.Path), err)
	}

	res := &Result{PID: cmd.Process.Pid, LogPath: logFile.Name()}

	// Detach: the launcher never waits on, supervises, or restarts the child.
	if err := cmd.Process.Release(); err != nil {
		return res, errors.Wrap(errors.ErrCodeInternal,
			"failed to release server process handle", err)
	}

	return res, nil
}

// Run performs the same log-directory-plus-redirect preparation as Launch but
// keeps the server in the foreground, blocking until it exits. This is the
// container entrypoint mode, where PID 1 must not detach.
func Run(cfg *Config) error {
	logFile, err := cfg.prepare()
	if err != nil {
		return err
	}
	defer logFile.Close()

	cmd, err := cfg.command(logFile)
	if err != nil {
		return err
	}

	if err := cmd.Run(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("server %q exited", cmd.Path), err)
	}
	return nil
}
