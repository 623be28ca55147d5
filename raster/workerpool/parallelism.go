// Copyright 2025 The go-raster Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"os"
	"runtime"
	"strconv"
)

// WorkersEnvVar overrides the detected parallelism when set to a positive
// integer.
const WorkersEnvVar = "RASTER_WORKERS"

// WorkersEnv returns the worker count from RASTER_WORKERS, or 0 when unset or
// not a positive integer.
func WorkersEnv() int {
	val := os.Getenv(WorkersEnvVar)
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// AvailableParallelism returns the number of workers a parallel call should
// use by default: RASTER_WORKERS if set, else the number of CPUs this process
// may run on, capped by GOMAXPROCS. Returns 0 only if nothing is known.
func AvailableParallelism() int {
	if n := WorkersEnv(); n > 0 {
		return n
	}
	procs := runtime.GOMAXPROCS(0)
	if n := affinityCount(); n > 0 && n < procs {
		return n
	}
	return procs
}
