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

package transform

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ajroetker/go-raster/raster"
	"github.com/ajroetker/go-raster/raster/workerpool"
)

// Op identifies a transform.
type Op int

const (
	OpRotateClockwise Op = iota
	OpRotateCounterClockwise
	OpBlur
)

// String returns the name accepted by ParseOp.
func (op Op) String() string {
	switch op {
	case OpRotateClockwise:
		return "rotate-cw"
	case OpRotateCounterClockwise:
		return "rotate-ccw"
	case OpBlur:
		return "blur"
	default:
		return "unknown"
	}
}

// ParseOp parses an operation name as returned by Op.String.
func ParseOp(name string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rotate-cw", "cw":
		return OpRotateClockwise, nil
	case "rotate-ccw", "ccw":
		return OpRotateCounterClockwise, nil
	case "blur", "gaussian":
		return OpBlur, nil
	}
	return 0, fmt.Errorf("%w: unknown operation %q", raster.ErrValidation, name)
}

// Options configures an Engine.
type Options struct {
	// Parallel selects the parallel form of every transform.
	Parallel bool
	// Workers is the requested worker count for parallel transforms.
	// If <= 0, all available CPUs are used (see workerpool.AvailableParallelism).
	Workers int
	// Pool, if set, runs parallel chunks on a persistent pool instead of
	// spawning goroutines per call. The caller owns and closes it.
	Pool *workerpool.Pool
	// Logger receives a Debug record per transform. Defaults to discarding.
	Logger *slog.Logger
}

// Engine applies transforms with a fixed configuration.
// It holds no per-image state and is safe for concurrent use on distinct
// images.
type Engine struct {
	opts Options
	log  *slog.Logger
}

// NewEngine returns an Engine for opts.
func NewEngine(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{opts: opts, log: log}
}

// Parallel reports whether the engine uses the parallel forms.
func (e *Engine) Parallel() bool {
	return e.opts.Parallel
}

func (e *Engine) executor() *executor {
	if !e.opts.Parallel {
		return nil
	}
	x := spawn(e.opts.Workers)
	if e.opts.Pool != nil {
		x.run = e.opts.Pool.Run
	}
	return x
}

// Apply runs op on img and pix.
func (e *Engine) Apply(op Op, img Image, pix raster.Buffer) (raster.Buffer, error) {
	x := e.executor()
	start := time.Now()

	var out raster.Buffer
	var err error
	switch op {
	case OpRotateClockwise:
		out, err = rotate(img, pix, clockwise, x)
	case OpRotateCounterClockwise:
		out, err = rotate(img, pix, counterClockwise, x)
	case OpBlur:
		out, err = blur(img, pix, x)
	default:
		return nil, fmt.Errorf("%w: unknown operation %d", raster.ErrValidation, int(op))
	}
	if err != nil {
		return nil, err
	}

	attrs := []any{"op", op, "geometry", img.Geometry(), "elapsed", time.Since(start)}
	if x != nil {
		attrs = append(attrs, "workers", x.used, "chunks", x.chunks)
	}
	e.log.Debug("transform completed", attrs...)
	return out, nil
}

// RotateClockwise applies OpRotateClockwise.
func (e *Engine) RotateClockwise(img Image, pix raster.Buffer) (raster.Buffer, error) {
	return e.Apply(OpRotateClockwise, img, pix)
}

// RotateCounterClockwise applies OpRotateCounterClockwise.
func (e *Engine) RotateCounterClockwise(img Image, pix raster.Buffer) (raster.Buffer, error) {
	return e.Apply(OpRotateCounterClockwise, img, pix)
}

// Blur applies OpBlur.
func (e *Engine) Blur(img Image, pix raster.Buffer) (raster.Buffer, error) {
	return e.Apply(OpBlur, img, pix)
}

// Pipeline applies ops in order, feeding each output to the next.
// It stops at the first error; img then reflects the last successful op.
func (e *Engine) Pipeline(img Image, pix raster.Buffer, ops ...Op) (raster.Buffer, error) {
	for i, op := range ops {
		out, err := e.Apply(op, img, pix)
		if err != nil {
			return nil, fmt.Errorf("pipeline step %d (%s): %w", i, op, err)
		}
		pix = out
	}
	return pix, nil
}
