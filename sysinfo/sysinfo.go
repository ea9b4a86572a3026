// Package sysinfo reports a human-readable label for the machine a benchmark
// ran on.
package sysinfo

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
)

// CPULabel returns the CPU model string with the logical core count, falling
// back to a GOOS/GOARCH label when detection fails. Callers compute it once
// at run start and attach it to the report metadata.
func CPULabel() string {
	info, err := cpu.Info()
	if err != nil || len(info) == 0 {
		return fallbackLabel()
	}

	model := strings.TrimSpace(info[0].ModelName)
	if model == "" {
		return fallbackLabel()
	}

	return fmt.Sprintf("%s (%d cores)", model, runtime.NumCPU())
}

func fallbackLabel() string {
	return fmt.Sprintf(
		"%s/%s (%d cores)", runtime.GOOS, runtime.GOARCH, runtime.NumCPU(),
	)
}
