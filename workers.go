package cv2pdf

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one export runs.
	MinWorkers = 1

	// MaxWorkers caps concurrent exports. Each one holds three browser tabs.
	MaxWorkers = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ResolveWorkers determines how many exports run at once.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return min(workers, MaxWorkers)
	}

	// GOMAXPROCS honours container quotas once automaxprocs has run.
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	return max(MinWorkers, min(n, MaxWorkers))
}
