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
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-raster/raster/bmp"
	"github.com/ajroetker/go-raster/raster/perf"
	"github.com/ajroetker/go-raster/raster/transform"
)

type processOptions struct {
	*rootOptions
	parallel bool
	threads  int
	outDir   string
}

func newProcessCmd(root *rootOptions) *cobra.Command {
	opts := processOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "process [input.bmp]",
		Short: "Rotate the image both ways and blur each result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("threads") {
				opts.parallel = true
			}
			return runProcess(cmd.Context(), cmd.OutOrStdout(), inputArg(args), opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.parallel, "parallel", "p", false, "use the parallel transforms")
	cmd.Flags().IntVarP(&opts.threads, "threads", "t", 0, "number of workers (0 = auto, implies --parallel)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "output directory")
	return cmd
}

// chain is one rotate-then-blur sequence.
type chain struct {
	rotate        transform.Op
	rotatedSuffix string
	blurredSuffix string
}

var chains = []chain{
	{transform.OpRotateClockwise, "rotated_clockwise", "filtered_clockwise"},
	{transform.OpRotateCounterClockwise, "rotated_counter_clockwise", "filtered_counter_clockwise"},
}

// chainResult reports one finished chain.
type chainResult struct {
	outputs []string
	rotate  time.Duration
	blur    time.Duration
	stats   perf.Snapshot
}

func runProcess(ctx context.Context, w io.Writer, input string, opts processOptions) error {
	p := printer()
	start := time.Now()

	img, err := bmp.Load(input)
	if err != nil {
		return err
	}
	p.Fprintf(w, "Input file: %s\n", input)
	p.Fprintf(w, "  Width: %d pixels\n", img.Width())
	p.Fprintf(w, "  Height: %d pixels\n", img.Height())
	p.Fprintf(w, "  Bits per pixel: %d\n", img.BitsPerPixel())
	p.Fprintf(w, "  Data size: %d bytes\n", img.DataSize())
	p.Fprintf(w, "  Memory usage: %d bytes\n", img.MemoryUsage())

	engine := transform.NewEngine(transform.Options{
		Parallel: opts.parallel,
		Workers:  opts.threads,
		Logger:   opts.logger(),
	})
	if engine.Parallel() {
		p.Fprintf(w, "Parallel processing: enabled (%s workers)\n", workersLabel(opts.threads))
	} else {
		p.Fprintf(w, "Parallel processing: disabled\n")
	}

	// The chains share nothing but the input path, so they run concurrently.
	results := make([]chainResult, len(chains))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range chains {
		g.Go(func() error {
			res, err := runChain(ctx, engine, input, opts.outDir, c)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, c := range chains {
		res := results[i]
		p.Fprintf(w, "\n--- %s ---\n", c.rotate)
		p.Fprintf(w, "Rotation: %v, blur: %v\n", res.rotate.Round(time.Microsecond), res.blur.Round(time.Microsecond))
		for _, out := range res.outputs {
			p.Fprintf(w, "Saved %s\n", out)
		}
		p.Fprintf(w, "Performance: %s\n", res.stats)
	}
	p.Fprintf(w, "\nTotal processing time: %v\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func runChain(ctx context.Context, engine *transform.Engine, input, outDir string, c chain) (chainResult, error) {
	var res chainResult

	img, err := bmp.Load(input)
	if err != nil {
		return res, err
	}
	pix, err := img.ReadPixels()
	if err != nil {
		return res, err
	}

	steps := []struct {
		op     transform.Op
		suffix string
		took   *time.Duration
	}{
		{c.rotate, c.rotatedSuffix, &res.rotate},
		{transform.OpBlur, c.blurredSuffix, &res.blur},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		start := time.Now()
		if pix, err = engine.Apply(step.op, img, pix); err != nil {
			return res, err
		}
		*step.took = time.Since(start)

		out := outputName(outDir, input, step.suffix)
		if err := img.Save(out, pix); err != nil {
			return res, err
		}
		res.outputs = append(res.outputs, out)
	}

	res.stats = img.Counters().Snapshot()
	return res, nil
}

func workersLabel(n int) string {
	if n <= 0 {
		return "auto"
	}
	return printer().Sprintf("%d", n)
}
