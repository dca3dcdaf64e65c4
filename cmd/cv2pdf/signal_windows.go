//go:build windows

package main

import "os"

// shutdownSignals stop exports and drain the server. SIGTERM does not
// exist on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}
