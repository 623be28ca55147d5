// Copyright 2025 The go-raster Authors. SPDX-License-Identifier: Apache-2.0

//go:build linux

package workerpool

import "golang.org/x/sys/unix"

// affinityCount returns the number of CPUs in this process's affinity mask,
// which is narrower than NumCPU under taskset or cgroup cpusets.
func affinityCount() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 0
	}
	return set.Count()
}
