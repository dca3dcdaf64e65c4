//go:build windows

package process

import (
	"fmt"
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills pid and its children with taskkill.
func KillProcessGroup(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	if err := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run(); err != nil { // #nosec G204 -- pid is an integer
		return fmt.Errorf("killing process tree %d: %w", pid, err)
	}
	return nil
}
