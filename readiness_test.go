package main

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForServer_SucceedsWhenListening(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	assert.True(t, waitForServer(ln.Addr().String(), 2*time.Second))
}

func TestWaitForServer_TimesOutWhenNothingListens(t *testing.T) {
	// Grab a free port, then close it so nothing accepts there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	start := time.Now()
	assert.False(t, waitForServer(addr, 500*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 500*time.Millisecond)
}

func TestWaitForServer_BadEndpointFailsImmediately(t *testing.T) {
	start := time.Now()
	assert.False(t, waitForServer("definitely:not:an:endpoint", 5*time.Second))
	assert.Less(t, time.Since(start), probeInterval)
}

func TestWaitForServer_SucceedsOnceServerAppears(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	// Re-listen on the same port shortly after the probe starts.
	go func() {
		time.Sleep(300 * time.Millisecond)
		if late, err := net.Listen("tcp", addr); err == nil {
			defer late.Close()
			time.Sleep(2 * time.Second)
		}
	}()

	assert.True(t, waitForServer(addr, 3*time.Second))
}
