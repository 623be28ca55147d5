// Copyright 2025 The go-raster Authors. SPDX-License-Identifier: Apache-2.0

//go:build !linux

package workerpool

func affinityCount() int {
	return 0
}
