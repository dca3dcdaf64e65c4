// Package process terminates the Chrome process tree left behind by a
// browser launcher.
package process

import "errors"

// ErrInvalidPID rejects pids that would address the caller's own group.
var ErrInvalidPID = errors.New("invalid pid")
