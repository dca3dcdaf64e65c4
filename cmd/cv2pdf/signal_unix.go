//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals stop exports and drain the server.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
