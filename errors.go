package main

import "errors"

// Supervisor failure kinds. They are wrapped with %w so callers can classify
// a failure with errors.Is while the message still names the offending path.
var (
	// ErrConfigurationMissing means the sidecar assets or the resource
	// directory could not be found.
	ErrConfigurationMissing = errors.New("configuration missing")

	// ErrFilesystemSetup means a log or data directory could not be created.
	ErrFilesystemSetup = errors.New("filesystem setup failed")

	// ErrSpawnFailure means the sidecar child process could not be started.
	ErrSpawnFailure = errors.New("sidecar spawn failed")
)
