package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	sidecarHost      = "127.0.0.1"
	sidecarPort      = 3100
	sidecarRuntime   = "node"
	readinessTimeout = 15 * time.Second

	stdoutLogName = "node-server-stdout.log"
	stderrLogName = "node-server-stderr.log"
)

// SidecarConfig is computed once at launch and immutable afterwards.
type SidecarConfig struct {
	ServerRoot string
	EntryFile  string
	DataRoot   string
	Host       string
	Port       int
	StdoutLog  string
	StderrLog  string
	Env        map[string]string
}

// sidecarProcess is the slice of a running child the supervisor needs.
// Tests substitute fakes that count kill/wait pairs.
type sidecarProcess interface {
	Kill() error
	Wait() error
}

// runningCmd adapts exec.Cmd to sidecarProcess.
type runningCmd struct{ cmd *exec.Cmd }

func (r *runningCmd) Kill() error { return r.cmd.Process.Kill() }
func (r *runningCmd) Wait() error { return r.cmd.Wait() }

// Package-level hooks for testing. In production, these use the real
// implementations.
var (
	startSidecar   = defaultStartSidecar
	probeReadiness = waitForServer
)

func defaultStartSidecar(cmd *exec.Cmd) (sidecarProcess, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &runningCmd{cmd: cmd}, nil
}

// SidecarSupervisor spawns the UI server process and guarantees it is
// terminated exactly once, whichever exit path fires first. The handle is
// accessed only through take semantics, so the shutdown hook and the signal
// handler can race without a double kill.
type SidecarSupervisor struct {
	mu       sync.Mutex
	proc     sidecarProcess
	cfg      *SidecarConfig
	launchID string
}

// NewSidecarSupervisor creates an empty supervisor; nothing runs until Launch.
func NewSidecarSupervisor() *SidecarSupervisor {
	return &SidecarSupervisor{}
}

// URL returns the loopback endpoint the sidecar serves on.
func (s *SidecarSupervisor) URL() string {
	return fmt.Sprintf("http://%s:%d", sidecarHost, sidecarPort)
}

func (s *SidecarSupervisor) addr() string {
	return fmt.Sprintf("%s:%d", sidecarHost, sidecarPort)
}

// resolveConfig computes the immutable launch configuration from the data
// root and server root resolvers.
func (s *SidecarSupervisor) resolveConfig() (*SidecarConfig, error) {
	serverRoot, err := resolveServerRoot()
	if err != nil {
		return nil, err
	}

	dataRoot := resolveDataRoot()
	logDir := filepath.Join(dataRoot, "logs")

	return &SidecarConfig{
		ServerRoot: serverRoot,
		EntryFile:  filepath.Join(serverRoot, serverEntryName),
		DataRoot:   dataRoot,
		Host:       sidecarHost,
		Port:       sidecarPort,
		StdoutLog:  filepath.Join(logDir, stdoutLogName),
		StderrLog:  filepath.Join(logDir, stderrLogName),
		Env: map[string]string{
			"PLUTODUCK_DATA_DIR__ROOT": dataRoot,
			"HOSTNAME":                 sidecarHost,
			"PORT":                     strconv.Itoa(sidecarPort),
		},
	}, nil
}

// Launch spawns the sidecar and waits for its port to accept connections.
// In dev mode nothing is spawned: the dev tooling owns the server. A
// readiness timeout is only a warning; the UI can still recover once the
// server catches up.
func (s *SidecarSupervisor) Launch() error {
	if isDevMode() {
		logf("[sidecar] dev mode - skipping spawn (wails dev serves the frontend)")
		return nil
	}

	cfg, err := s.resolveConfig()
	if err != nil {
		return err
	}

	stdout, err := os.Create(cfg.StdoutLog)
	if err != nil {
		return fmt.Errorf("%w: create stdout log: %v", ErrFilesystemSetup, err)
	}
	stderr, err := os.Create(cfg.StderrLog)
	if err != nil {
		stdout.Close()
		return fmt.Errorf("%w: create stderr log: %v", ErrFilesystemSetup, err)
	}

	if _, err := os.Stat(cfg.EntryFile); err != nil {
		stdout.Close()
		stderr.Close()
		return fmt.Errorf("%w: sidecar entry not found at %s", ErrConfigurationMissing, cfg.EntryFile)
	}

	cmd := buildSidecarCommand(cfg, stdout, stderr)

	launchID := uuid.NewString()
	logf("[sidecar] launching %s (launch=%s, data root %s)", cfg.EntryFile, launchID, cfg.DataRoot)

	proc, err := startSidecar(cmd)
	if err != nil {
		stdout.Close()
		stderr.Close()
		return fmt.Errorf("%w: %v", ErrSpawnFailure, err)
	}

	// The child owns the log files from here on; the shell never writes them.
	stdout.Close()
	stderr.Close()

	s.mu.Lock()
	s.proc = proc
	s.cfg = cfg
	s.launchID = launchID
	s.mu.Unlock()

	logf("[sidecar] server process spawned on %s (launch=%s)", s.URL(), launchID)

	if !probeReadiness(s.addr(), readinessTimeout) {
		logf("[sidecar] server did not become ready within %s (launch=%s)", readinessTimeout, launchID)
	}

	return nil
}

// buildSidecarCommand prepares the node invocation. Split out so tests can
// inspect the working directory, arguments and environment without spawning
// anything.
func buildSidecarCommand(cfg *SidecarConfig, stdout, stderr *os.File) *exec.Cmd {
	cmd := exec.Command(sidecarRuntime, serverEntryName)
	cmd.Dir = cfg.ServerRoot
	cmd.Env = os.Environ()
	for name, value := range cfg.Env {
		cmd.Env = append(cmd.Env, name+"="+value)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd
}

// take removes and returns the process handle. The first caller wins; later
// callers see nil and do nothing.
func (s *SidecarSupervisor) take() sidecarProcess {
	s.mu.Lock()
	defer s.mu.Unlock()
	proc := s.proc
	s.proc = nil
	return proc
}

// Stop terminates the sidecar if this caller is the one that took the
// handle. Safe to call from multiple exit paths; only the first does work.
func (s *SidecarSupervisor) Stop() {
	proc := s.take()
	if proc == nil {
		return
	}

	logf("[sidecar] stopping server process")
	if err := proc.Kill(); err != nil {
		logf("[sidecar] kill failed: %v", err)
	}
	_ = proc.Wait()
	logf("[sidecar] server process stopped")
}

// Running reports whether the supervisor still owns a live process handle.
func (s *SidecarSupervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proc != nil
}

// Config returns the resolved launch configuration, or nil before a release
// launch has happened.
func (s *SidecarSupervisor) Config() *SidecarConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// LaunchID identifies the current spawn in log lines across the shell and
// the sidecar's own log files.
func (s *SidecarSupervisor) LaunchID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.launchID
}
