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
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/go-raster/raster"
	"github.com/ajroetker/go-raster/raster/bmp"
)

// newImage returns an image with random pixel bytes and zero padding.
func newImage(t testing.TB, width, height, bpp int) (*bmp.Image, raster.Buffer) {
	t.Helper()
	img, err := bmp.New(width, height, bpp)
	if err != nil {
		t.Fatalf("bmp.New(%d, %d, %d): %v", width, height, bpp, err)
	}
	g := img.Geometry()
	pix := raster.NewBuffer(g)
	rng := rand.New(rand.NewPCG(uint64(width), uint64(height*bpp)))
	for y := 0; y < height; y++ {
		row := pix.RowPixels(g, y)
		for i := range row {
			row[i] = byte(rng.UintN(256))
		}
	}
	return img, pix
}

// pixelAt returns the bytes of pixel (x, y).
func pixelAt(pix raster.Buffer, g raster.Geometry, x, y int) []byte {
	o := g.Offset(x, y, 0)
	return pix[o : o+g.BytesPerPixel()]
}

func checkPadding(t *testing.T, pix raster.Buffer, g raster.Geometry) {
	t.Helper()
	for y := 0; y < g.Height; y++ {
		row := pix.Row(g, y)
		for i := g.Width * g.BytesPerPixel(); i < g.Stride; i++ {
			if row[i] != 0 {
				t.Fatalf("padding byte %d of row %d = %d, want 0", i, y, row[i])
			}
		}
	}
}

func TestRotateClockwiseMapping(t *testing.T) {
	img, pix := newImage(t, 5, 3, 24)
	src := img.Geometry()

	out, err := RotateClockwise(img, pix)
	if err != nil {
		t.Fatal(err)
	}

	dst := img.Geometry()
	want := raster.Geometry{Width: 3, Height: 5, BitsPerPixel: 24, Stride: 12}
	if diff := cmp.Diff(want, dst); diff != "" {
		t.Fatalf("geometry mismatch (-want +got):\n%s", diff)
	}
	if len(out) != dst.Size() {
		t.Fatalf("len(out) = %d, want %d", len(out), dst.Size())
	}

	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			got := pixelAt(out, dst, y, src.Width-1-x)
			if diff := cmp.Diff(pixelAt(pix, src, x, y), got); diff != "" {
				t.Errorf("pixel (%d,%d) mismatch (-want +got):\n%s", x, y, diff)
			}
		}
	}
	checkPadding(t, out, dst)
}

func TestRotateCounterClockwiseMapping(t *testing.T) {
	img, pix := newImage(t, 5, 3, 32)
	src := img.Geometry()

	out, err := RotateCounterClockwise(img, pix)
	if err != nil {
		t.Fatal(err)
	}

	dst := img.Geometry()
	if dst.Width != 3 || dst.Height != 5 || dst.Stride != 12 {
		t.Fatalf("geometry: got %v, want 3x5 stride 12", dst)
	}
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			got := pixelAt(out, dst, src.Height-1-y, x)
			if diff := cmp.Diff(pixelAt(pix, src, x, y), got); diff != "" {
				t.Errorf("pixel (%d,%d) mismatch (-want +got):\n%s", x, y, diff)
			}
		}
	}
}

func TestRotateOrderFour(t *testing.T) {
	for _, size := range [][3]int{{5, 3, 24}, {1, 7, 24}, {6, 6, 32}, {13, 2, 32}} {
		t.Run(fmt.Sprintf("%dx%d@%d", size[0], size[1], size[2]), func(t *testing.T) {
			img, pix := newImage(t, size[0], size[1], size[2])
			orig := img.Geometry()

			out := pix
			for i := range 4 {
				var err error
				out, err = RotateClockwise(img, out)
				if err != nil {
					t.Fatalf("rotation %d: %v", i, err)
				}
				checkPadding(t, out, img.Geometry())
			}
			if diff := cmp.Diff(orig, img.Geometry()); diff != "" {
				t.Errorf("geometry after 4 rotations (-want +got):\n%s", diff)
			}
			if !out.Equal(pix) {
				t.Error("4 clockwise rotations should restore the pixels")
			}

			out, err := RotateClockwise(img, pix)
			if err != nil {
				t.Fatal(err)
			}
			out, err = RotateCounterClockwise(img, out)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(orig, img.Geometry()); diff != "" {
				t.Errorf("geometry after cw+ccw (-want +got):\n%s", diff)
			}
			if !out.Equal(pix) {
				t.Error("clockwise then counter-clockwise should restore the pixels")
			}
		})
	}
}

type transformPair struct {
	name       string
	sequential func(Image, raster.Buffer) (raster.Buffer, error)
	parallel   func(Image, raster.Buffer, int) (raster.Buffer, error)
}

var pairs = []transformPair{
	{"RotateClockwise", RotateClockwise, RotateClockwiseParallel},
	{"RotateCounterClockwise", RotateCounterClockwise, RotateCounterClockwiseParallel},
	{"Blur", Blur, BlurParallel},
}

func TestParallelEquivalence(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 3}, {3, 2}, {5, 3}, {4, 4}, {17, 13}, {64, 33}, {3, 101}}
	workers := []int{1, 2, 3, 8, 100, 0, -1}

	for _, p := range pairs {
		for _, bpp := range []int{24, 32} {
			for _, size := range sizes {
				seqImg, pix := newImage(t, size[0], size[1], bpp)
				want, err := p.sequential(seqImg, pix.Clone())
				if err != nil {
					t.Fatalf("%s %dx%d: %v", p.name, size[0], size[1], err)
				}

				for _, w := range workers {
					name := fmt.Sprintf("%s/%dx%d@%d/workers=%d", p.name, size[0], size[1], bpp, w)
					parImg, _ := newImage(t, size[0], size[1], bpp)
					got, err := p.parallel(parImg, pix.Clone(), w)
					if err != nil {
						t.Fatalf("%s: %v", name, err)
					}
					if diff := cmp.Diff(seqImg.Geometry(), parImg.Geometry()); diff != "" {
						t.Errorf("%s: geometry mismatch (-seq +par):\n%s", name, diff)
					}
					if !got.Equal(want) {
						t.Errorf("%s: parallel output differs from sequential", name)
					}
				}
			}
		}
	}
}

func TestKernelsIgnoreSourcePadding(t *testing.T) {
	for _, tp := range pairs {
		t.Run(tp.name, func(t *testing.T) {
			cleanImg, clean := newImage(t, 5, 4, 24)
			dirtyImg, dirty := newImage(t, 5, 4, 24)
			g := dirtyImg.Geometry()
			for y := 0; y < g.Height; y++ {
				row := dirty.Row(g, y)
				for i := g.Width * g.BytesPerPixel(); i < g.Stride; i++ {
					row[i] = 0xff
				}
			}

			want, err := tp.sequential(cleanImg, clean)
			if err != nil {
				t.Fatal(err)
			}
			got, err := tp.parallel(dirtyImg, dirty, 2)
			if err != nil {
				t.Fatal(err)
			}
			out := dirtyImg.Geometry()
			for y := 0; y < out.Height; y++ {
				if !bytes.Equal(got.RowPixels(out, y), want.RowPixels(out, y)) {
					t.Errorf("row %d pixels differ when the source padding is dirty", y)
				}
			}
		})
	}
}

func TestBlurPreservesBorders(t *testing.T) {
	img, pix := newImage(t, 9, 7, 24)
	g := img.Geometry()

	out, err := BlurParallel(img, pix, 3)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if x != 0 && x != g.Width-1 && y != 0 && y != g.Height-1 {
				continue
			}
			if diff := cmp.Diff(pixelAt(pix, g, x, y), pixelAt(out, g, x, y)); diff != "" {
				t.Errorf("border pixel (%d,%d) changed (-in +out):\n%s", x, y, diff)
			}
		}
	}
	checkPadding(t, out, g)
}

func TestBlurUniform(t *testing.T) {
	img, err := bmp.New(8, 6, 32)
	if err != nil {
		t.Fatal(err)
	}
	g := img.Geometry()
	pix := raster.NewBuffer(g)
	pix.Fill(g, []byte{12, 200, 255, 7})

	out, err := Blur(img, pix)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Equal(pix) {
		t.Error("blur of a uniform image should be a no-op")
	}
}

func TestBlurKernel(t *testing.T) {
	img, err := bmp.New(3, 3, 24)
	if err != nil {
		t.Fatal(err)
	}
	g := img.Geometry()
	pix := raster.NewBuffer(g)
	// Channel 0: a single bright pixel in the center.
	// Channel 1: a bright top-left corner.
	// Channel 2: 255 everywhere except the center.
	pix.Set(g, 1, 1, 0, 200)
	pix.Set(g, 0, 0, 1, 255)
	for y := range 3 {
		for x := range 3 {
			if x != 1 || y != 1 {
				pix.Set(g, x, y, 2, 255)
			}
		}
	}

	out, err := Blur(img, pix)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		c    int
		want byte
	}{
		{0, 50},  // 4*200/16
		{1, 16},  // (255 + 8) / 16, rounded
		{2, 191}, // (12*255 + 8) / 16, rounded
	}
	for _, tt := range tests {
		if got := out.At(g, 1, 1, tt.c); got != tt.want {
			t.Errorf("center channel %d = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestBlurSmallImages(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {2, 2}, {1, 5}, {5, 2}} {
		img, pix := newImage(t, size[0], size[1], 24)
		out, err := BlurParallel(img, pix, 4)
		if err != nil {
			t.Fatal(err)
		}
		if !out.Equal(pix) {
			t.Errorf("%dx%d: image without interior should be unchanged", size[0], size[1])
		}
	}
}

func TestSizeMismatch(t *testing.T) {
	for _, p := range pairs {
		for _, delta := range []int{-1, 1} {
			img, pix := newImage(t, 5, 3, 24)
			before := img.Geometry()
			bad := make(raster.Buffer, len(pix)+delta)

			for _, call := range []func() (raster.Buffer, error){
				func() (raster.Buffer, error) { return p.sequential(img, bad) },
				func() (raster.Buffer, error) { return p.parallel(img, bad, 4) },
			} {
				out, err := call()
				if !errors.Is(err, raster.ErrValidation) {
					t.Errorf("%s: got %v, want ErrValidation", p.name, err)
				}
				if out != nil {
					t.Errorf("%s: returned a buffer on error", p.name)
				}
			}
			if diff := cmp.Diff(before, img.Geometry()); diff != "" {
				t.Errorf("%s: geometry changed on error (-before +after):\n%s", p.name, diff)
			}
			if n := img.Counters().Total(); n != 0 {
				t.Errorf("%s: failed calls recorded %d operations", p.name, n)
			}
		}
	}
}

func TestCounters(t *testing.T) {
	img, pix := newImage(t, 6, 4, 24)

	var err error
	steps := []func(){
		func() { pix, err = RotateClockwise(img, pix) },
		func() { pix, err = RotateClockwiseParallel(img, pix, 2) },
		func() { pix, err = Blur(img, pix) },
		func() { pix, err = BlurParallel(img, pix, 0) },
		func() { pix, err = RotateCounterClockwiseParallel(img, pix, 3) },
	}
	for i, step := range steps {
		step()
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	c := img.Counters()
	if c.Total() != 5 || c.Parallel() != 3 {
		t.Errorf("counters: total=%d parallel=%d, want 5/3", c.Total(), c.Parallel())
	}
	if got := c.Efficiency(); got != 0.6 {
		t.Errorf("Efficiency() = %v, want 0.6", got)
	}
	c.Reset()
	if c.Total() != 0 || c.Efficiency() != 0 {
		t.Errorf("after Reset: total=%d efficiency=%v", c.Total(), c.Efficiency())
	}
}
