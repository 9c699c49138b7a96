package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Log file for debugging - can be read by the developer while the shell runs
// without a console attached.
var debugLogFile *os.File

func init() {
	logPath := filepath.Join(os.TempDir(), "pluto-duck-desktop-debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err == nil {
		debugLogFile = f
		fmt.Fprintf(debugLogFile, "=== Pluto Duck Desktop Debug Log ===\n")
		fmt.Fprintf(debugLogFile, "Started: %s\n", time.Now().Format(time.RFC3339))
		fmt.Fprintf(debugLogFile, "Log file: %s\n\n", logPath)
		debugLogFile.Sync()
	}
}

// logf writes a line to both the standard logger and the debug log file.
func logf(format string, args ...interface{}) {
	log.Printf(format, args...)

	if debugLogFile != nil {
		timestamp := time.Now().Format("15:04:05.000")
		fmt.Fprintf(debugLogFile, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
		debugLogFile.Sync()
	}
}
