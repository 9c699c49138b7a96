package main

import (
	"net"
	"time"
)

const (
	probeConnectTimeout = 400 * time.Millisecond
	probeInterval       = 200 * time.Millisecond
)

// waitForServer polls addr until a TCP connection succeeds or the deadline
// elapses. Listen-readiness is enough: the sidecar only accepts once it can
// serve. The probe never writes, so the server sees nothing beyond an
// accept/close pair.
func waitForServer(addr string, timeout time.Duration) bool {
	if _, err := net.ResolveTCPAddr("tcp", addr); err != nil {
		return false
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, probeConnectTimeout)
		if err == nil {
			conn.Close()
			return true
		}
		time.Sleep(probeInterval)
	}
	return false
}
