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

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-raster/raster"
	"github.com/ajroetker/go-raster/raster/bmp"
	"github.com/ajroetker/go-raster/raster/transform"
	"github.com/ajroetker/go-raster/raster/workerpool"
)

type benchOptions struct {
	*rootOptions
	threads    int
	iterations int
	scaling    int
}

func newBenchCmd(root *rootOptions) *cobra.Command {
	opts := benchOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "bench [input.bmp]",
		Short: "Compare sequential and parallel transform timings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.iterations <= 0 {
				return fmt.Errorf("%w: --iterations must be positive", raster.ErrValidation)
			}
			return runBench(cmd.Context(), cmd.OutOrStdout(), inputArg(args), opts)
		},
	}
	cmd.Flags().IntVarP(&opts.threads, "threads", "t", 0, "number of workers (0 = auto)")
	cmd.Flags().IntVarP(&opts.iterations, "iterations", "i", 5, "runs per measurement")
	cmd.Flags().IntVar(&opts.scaling, "scaling", 0, "measure every worker count from 1 to N instead")
	return cmd
}

// benchResult compares the two forms of one transform.
type benchResult struct {
	op         transform.Op
	workers    int
	sequential time.Duration
	parallel   time.Duration
}

func (r benchResult) speedup() float64 {
	if r.parallel <= 0 {
		return 0
	}
	return float64(r.sequential) / float64(r.parallel)
}

func (r benchResult) efficiency() float64 {
	return r.speedup() / float64(r.workers)
}

func runBench(ctx context.Context, w io.Writer, input string, opts benchOptions) error {
	p := printer()
	log := opts.logger()

	if opts.scaling <= 0 {
		workers := opts.threads
		if workers <= 0 {
			workers = workerpool.AvailableParallelism()
		}
		pool := workerpool.New(workers)
		defer pool.Close()

		p.Fprintf(w, "Benchmark: %s, %d workers, %d iterations\n", input, workers, opts.iterations)
		for _, op := range []transform.Op{transform.OpRotateClockwise, transform.OpBlur} {
			res, err := benchmark(ctx, input, op, pool, opts.iterations)
			if err != nil {
				return err
			}
			p.Fprintf(w, "%-10s sequential %v, parallel %v, speedup %.2fx, efficiency %.1f%%\n",
				op, res.sequential, res.parallel, res.speedup(), res.efficiency()*100)
		}
		return nil
	}

	best := map[transform.Op][]benchResult{}
	for workers := 1; workers <= opts.scaling; workers++ {
		pool := workerpool.New(workers)
		for _, op := range []transform.Op{transform.OpRotateClockwise, transform.OpBlur} {
			res, err := benchmark(ctx, input, op, pool, opts.iterations)
			if err != nil {
				pool.Close()
				return err
			}
			best[op] = append(best[op], res)
			log.Debug("scaling step", "op", op, "workers", workers, "speedup", res.speedup(), "chunks", pool.Served())
		}
		pool.Close()
		p.Fprintf(w, "Workers: %2d | rotation speedup: %.2fx | blur speedup: %.2fx\n", workers,
			best[transform.OpRotateClockwise][workers-1].speedup(), best[transform.OpBlur][workers-1].speedup())
	}

	for _, op := range []transform.Op{transform.OpRotateClockwise, transform.OpBlur} {
		top := lo.MaxBy(best[op], func(a, b benchResult) bool {
			return a.speedup() > b.speedup()
		})
		p.Fprintf(w, "Best %s speedup: %.2fx with %d workers\n", op, top.speedup(), top.workers)
	}
	return nil
}

// benchmark times op on a freshly loaded copy of input, iterations times
// for each form, and returns the mean durations. The parallel form runs on
// pool with one worker per pool goroutine.
func benchmark(ctx context.Context, input string, op transform.Op, pool *workerpool.Pool, iterations int) (benchResult, error) {
	workers := pool.Workers()
	res := benchResult{op: op, workers: workers}
	engines := []struct {
		engine *transform.Engine
		total  *time.Duration
	}{
		{transform.NewEngine(transform.Options{}), &res.sequential},
		{transform.NewEngine(transform.Options{Parallel: true, Workers: workers, Pool: pool}), &res.parallel},
	}

	for _, e := range engines {
		for range iterations {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			img, err := bmp.Load(input)
			if err != nil {
				return res, err
			}
			pix, err := img.ReadPixels()
			if err != nil {
				return res, err
			}
			start := time.Now()
			if _, err := e.engine.Apply(op, img, pix); err != nil {
				return res, err
			}
			*e.total += time.Since(start)
		}
		*e.total /= time.Duration(iterations)
	}
	return res, nil
}
