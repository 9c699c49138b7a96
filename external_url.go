package main

import (
	"errors"
	"fmt"
	"os/exec"
	goruntime "runtime"
	"strings"
)

// errURLNotAllowed is returned verbatim to the UI for non-http(s) input.
var errURLNotAllowed = errors.New("Only http(s) URLs are allowed")

// Package-level hook for testing: runs the platform browser launcher to
// completion.
var runBrowserLauncher = defaultRunBrowserLauncher

func defaultRunBrowserLauncher(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// browserLauncher returns the platform command that opens a URL in the
// default browser.
func browserLauncher(url string) (string, []string) {
	switch goruntime.GOOS {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/C", "start", "", url}
	default:
		return "xdg-open", []string{url}
	}
}

// openExternalURL validates rawURL and hands it to the system browser.
// Anything that is not plain http(s) is refused before a process is spawned.
func openExternalURL(rawURL string) error {
	trimmed := strings.TrimSpace(rawURL)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return errURLNotAllowed
	}

	name, args := browserLauncher(trimmed)
	err := runBrowserLauncher(name, args...)
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("Browser command failed with status: %d", exitErr.ExitCode())
	}
	return fmt.Errorf("Failed to launch browser: %v", err)
}
