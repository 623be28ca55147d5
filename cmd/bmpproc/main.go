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

// Command bmpproc rotates and blurs BMP images, sequentially or in parallel.
//
// Usage:
//
//	bmpproc process example.bmp              # sequential
//	bmpproc process -p -t 8 example.bmp      # 8 workers
//	bmpproc bench -t 4 -i 5 example.bmp      # sequential vs parallel timings
//	bmpproc bench --scaling 16 example.bmp   # speedup for 1..16 workers
//
// process writes <stem>_rotated_clockwise.bmp, <stem>_filtered_clockwise.bmp,
// <stem>_rotated_counter_clockwise.bmp and <stem>_filtered_counter_clockwise.bmp
// into the output directory.
//
// Set RASTER_WORKERS to change the default worker count.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
