// Copyright 2025 go-raster Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package perf counts transform invocations and how many of them took the
// parallel path.
package perf

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Counters tracks transform invocations. The zero value is ready to use and
// safe for concurrent use. A Counters must not be copied after first use.
type Counters struct {
	total    atomic.Uint64
	_        cpu.CacheLinePad
	parallel atomic.Uint64
}

// Record counts one invocation, and one parallel invocation if parallel.
func (c *Counters) Record(parallel bool) {
	c.total.Add(1)
	if parallel {
		c.parallel.Add(1)
	}
}

// Total returns the number of recorded invocations.
func (c *Counters) Total() uint64 {
	return c.total.Load()
}

// Parallel returns the number of recorded parallel invocations.
func (c *Counters) Parallel() uint64 {
	return c.parallel.Load()
}

// Efficiency returns Parallel/Total, or 0 if nothing was recorded.
func (c *Counters) Efficiency() float64 {
	return c.Snapshot().Efficiency()
}

// Reset zeroes both counters.
func (c *Counters) Reset() {
	c.total.Store(0)
	c.parallel.Store(0)
}

// Snapshot returns the current counts.
func (c *Counters) Snapshot() Snapshot {
	// Parallel is read first so a concurrent Record can't make it exceed Total.
	parallel := c.parallel.Load()
	return Snapshot{Total: c.total.Load(), Parallel: parallel}
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Total    uint64
	Parallel uint64
}

// Efficiency returns Parallel/Total, or 0 if Total is 0.
func (s Snapshot) Efficiency() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Parallel) / float64(s.Total)
}

// String implements fmt.Stringer.
func (s Snapshot) String() string {
	return fmt.Sprintf("%d ops, %d parallel (%.2f%%)", s.Total, s.Parallel, s.Efficiency()*100)
}
