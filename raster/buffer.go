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

import "bytes"

// Buffer holds pixel data laid out according to a Geometry.
// Bytes past Width*BytesPerPixel within a row are padding and stay zero.
type Buffer []byte

// NewBuffer allocates a zeroed buffer for g.
func NewBuffer(g Geometry) Buffer {
	if g.Size() <= 0 {
		return nil
	}
	return make(Buffer, g.Size())
}

// Row returns a mutable slice for row y, including padding.
func (b Buffer) Row(g Geometry, y int) []byte {
	if y < 0 || y >= g.Height || len(b) < g.Size() {
		return nil
	}
	start := y * g.Stride
	return b[start : start+g.Stride]
}

// RowPixels returns a mutable slice for row y limited to the pixel bytes
// (excluding padding).
func (b Buffer) RowPixels(g Geometry, y int) []byte {
	row := b.Row(g, y)
	if row == nil {
		return nil
	}
	return row[:g.Width*g.BytesPerPixel()]
}

// At returns channel c of pixel (x, y), or 0 when out of bounds.
func (b Buffer) At(g Geometry, x, y, c int) byte {
	if !inBounds(b, g, x, y, c) {
		return 0
	}
	return b[g.Offset(x, y, c)]
}

// Set sets channel c of pixel (x, y). Out-of-bounds writes are ignored.
func (b Buffer) Set(g Geometry, x, y, c int, v byte) {
	if !inBounds(b, g, x, y, c) {
		return
	}
	b[g.Offset(x, y, c)] = v
}

func inBounds(b Buffer, g Geometry, x, y, c int) bool {
	return x >= 0 && x < g.Width &&
		y >= 0 && y < g.Height &&
		c >= 0 && c < g.BytesPerPixel() &&
		len(b) >= g.Size()
}

// Clone creates a deep copy of the buffer.
func (b Buffer) Clone() Buffer {
	if b == nil {
		return nil
	}
	clone := make(Buffer, len(b))
	copy(clone, b)
	return clone
}

// Fill sets every pixel to pixel, which must hold BytesPerPixel bytes.
// Padding is left untouched.
func (b Buffer) Fill(g Geometry, pixel []byte) {
	bpp := g.BytesPerPixel()
	if len(pixel) < bpp {
		return
	}
	for y := 0; y < g.Height; y++ {
		row := b.RowPixels(g, y)
		for i := 0; i+bpp <= len(row); i += bpp {
			copy(row[i:i+bpp], pixel)
		}
	}
}

// Equal reports whether b and other hold the same bytes.
func (b Buffer) Equal(other Buffer) bool {
	return bytes.Equal(b, other)
}
