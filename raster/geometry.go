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

package raster

import "fmt"

// RowAlign is the byte alignment of every row.
const RowAlign = 4

// Geometry describes the layout of a row-padded pixel buffer.
type Geometry struct {
	Width        int // pixels per row
	Height       int // rows
	BitsPerPixel int // 24 or 32
	Stride       int // bytes per row, including padding
}

// RowStride returns the number of bytes per row for width pixels of
// bytesPerPixel bytes each, rounded up to a multiple of RowAlign.
func RowStride(width, bytesPerPixel int) int {
	return (width*bytesPerPixel + RowAlign - 1) &^ (RowAlign - 1)
}

// NewGeometry returns the geometry of a width×height image with the given
// pixel depth. The result is not validated; see Validate.
func NewGeometry(width, height, bitsPerPixel int) Geometry {
	return Geometry{
		Width:        width,
		Height:       height,
		BitsPerPixel: bitsPerPixel,
		Stride:       RowStride(width, bitsPerPixel/8),
	}
}

// BytesPerPixel returns the number of bytes per pixel.
func (g Geometry) BytesPerPixel() int {
	return g.BitsPerPixel / 8
}

// Size returns the total buffer size in bytes.
func (g Geometry) Size() int {
	return g.Stride * g.Height
}

// Offset returns the byte offset of channel c of pixel (x, y).
// No bounds checking is performed.
func (g Geometry) Offset(x, y, c int) int {
	return y*g.Stride + x*g.BytesPerPixel() + c
}

// Rotated returns the geometry with width and height swapped and the stride
// recomputed for the new width.
func (g Geometry) Rotated() Geometry {
	return NewGeometry(g.Height, g.Width, g.BitsPerPixel)
}

// Validate reports whether g describes a supported, non-empty image.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: invalid image dimensions %dx%d", ErrValidation, g.Width, g.Height)
	}
	if g.BitsPerPixel != 24 && g.BitsPerPixel != 32 {
		return fmt.Errorf("%w: unsupported bits per pixel: %d", ErrValidation, g.BitsPerPixel)
	}
	if g.Size() <= 0 {
		return fmt.Errorf("%w: invalid data size %d", ErrValidation, g.Size())
	}
	return nil
}

// String implements fmt.Stringer.
func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d@%dbpp (stride %d)", g.Width, g.Height, g.BitsPerPixel, g.Stride)
}
