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

import "github.com/ajroetker/go-raster/raster"

type rotation int

const (
	clockwise rotation = iota
	counterClockwise
)

// target maps source pixel (x, y) of a w×h image to its rotated position.
func (r rotation) target(x, y, w, h int) (int, int) {
	if r == clockwise {
		return y, w - 1 - x
	}
	return h - 1 - y, x
}

func (r rotation) String() string {
	if r == clockwise {
		return "rotate clockwise"
	}
	return "rotate counter-clockwise"
}

func rotate(img Image, pix raster.Buffer, r rotation, x *executor) (raster.Buffer, error) {
	src, err := checkBuffer(r.String(), img, pix)
	if err != nil {
		return nil, err
	}

	dst := src.Rotated()
	out := raster.NewBuffer(dst)

	x.rows(src.Height, 0, func(start, end int) {
		rotateRows(r, pix, out, src, dst, start, end)
	})

	img.SetGeometry(dst)
	img.Counters().Record(x != nil)
	return out, nil
}

// rotateRows moves source rows [y0, y1) into their rotated positions.
// Each source row lands in its own destination column, so concurrent calls
// over disjoint row ranges write disjoint bytes.
func rotateRows(r rotation, in, out raster.Buffer, src, dst raster.Geometry, y0, y1 int) {
	bpp := src.BytesPerPixel()
	for y := y0; y < y1; y++ {
		row := in.RowPixels(src, y)
		for x := 0; x < src.Width; x++ {
			nx, ny := r.target(x, y, src.Width, src.Height)
			if nx >= dst.Width || ny >= dst.Height {
				continue
			}
			o := dst.Offset(nx, ny, 0)
			copy(out[o:o+bpp], row[x*bpp:])
		}
	}
}
