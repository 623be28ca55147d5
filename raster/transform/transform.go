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

// Package transform rotates and blurs row-padded pixel buffers.
//
// Every transform has a sequential form and a Parallel form taking a worker
// count. Both run the same per-row kernel, the parallel form over row chunks
// from workerpool.Partition, so their outputs are byte-identical.
//
// Transforms validate the buffer against the image geometry before touching
// anything, return a freshly allocated buffer, and update the image geometry
// when the dimensions change:
//
//	pix, err = transform.RotateClockwiseParallel(img, pix, 0) // 0 = all CPUs
//	pix, err = transform.Blur(img, pix)
//
// Each successful call is recorded in the image's perf.Counters.
package transform

import (
	"fmt"

	"github.com/ajroetker/go-raster/raster"
	"github.com/ajroetker/go-raster/raster/perf"
	"github.com/ajroetker/go-raster/raster/workerpool"
)

// Image is the descriptor a transform reads and updates.
// *bmp.Image implements it.
type Image interface {
	Geometry() raster.Geometry
	SetGeometry(raster.Geometry)
	Counters() *perf.Counters
}

// runFunc executes chunks over rows offset by offset and returns when all
// are done. workerpool.Spawn and (*workerpool.Pool).Run both qualify.
type runFunc func(chunks []workerpool.Chunk, offset int, fn func(start, end int))

// executor carries the parallel settings of one call. A nil executor means
// sequential execution.
type executor struct {
	workers int
	run     runFunc

	// Set by rows for reporting.
	used   int
	chunks int
}

func spawn(workers int) *executor {
	return &executor{workers: workers, run: workerpool.Spawn}
}

// rows runs fn over [offset, offset+total), either directly or partitioned.
func (x *executor) rows(total, offset int, fn func(start, end int)) {
	if total <= 0 {
		return
	}
	if x == nil {
		fn(offset, offset+total)
		return
	}
	x.used = workerpool.ResolveWorkers(total, x.workers)
	chunks := workerpool.Partition(total, x.used)
	x.chunks = len(chunks)
	x.run(chunks, offset, fn)
}

func checkBuffer(op string, img Image, pix raster.Buffer) (raster.Geometry, error) {
	g := img.Geometry()
	if err := g.Validate(); err != nil {
		return g, fmt.Errorf("%s: %w", op, err)
	}
	if len(pix) != g.Size() {
		return g, raster.SizeMismatch(op, len(pix), g.Size())
	}
	return g, nil
}

// RotateClockwise rotates pix 90° clockwise and swaps the image dimensions.
func RotateClockwise(img Image, pix raster.Buffer) (raster.Buffer, error) {
	return rotate(img, pix, clockwise, nil)
}

// RotateClockwiseParallel is RotateClockwise with source rows split across
// workers goroutines. workers <= 0 uses all available CPUs.
func RotateClockwiseParallel(img Image, pix raster.Buffer, workers int) (raster.Buffer, error) {
	return rotate(img, pix, clockwise, spawn(workers))
}

// RotateCounterClockwise rotates pix 90° counter-clockwise and swaps the
// image dimensions.
func RotateCounterClockwise(img Image, pix raster.Buffer) (raster.Buffer, error) {
	return rotate(img, pix, counterClockwise, nil)
}

// RotateCounterClockwiseParallel is RotateCounterClockwise with source rows
// split across workers goroutines. workers <= 0 uses all available CPUs.
func RotateCounterClockwiseParallel(img Image, pix raster.Buffer, workers int) (raster.Buffer, error) {
	return rotate(img, pix, counterClockwise, spawn(workers))
}

// Blur applies a 3×3 Gaussian kernel to the interior pixels of pix.
// Border rows and columns are copied unchanged.
func Blur(img Image, pix raster.Buffer) (raster.Buffer, error) {
	return blur(img, pix, nil)
}

// BlurParallel is Blur with interior rows split across workers goroutines.
// workers <= 0 uses all available CPUs.
func BlurParallel(img Image, pix raster.Buffer, workers int) (raster.Buffer, error) {
	return blur(img, pix, spawn(workers))
}
