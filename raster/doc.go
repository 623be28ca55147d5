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

// Package raster provides the row-padded pixel buffer shared by the codec
// and the transform engine.
//
// A Buffer is a flat byte slice holding Height rows of Stride bytes each.
// Every pixel occupies BytesPerPixel contiguous bytes and each row is padded
// to a multiple of 4 bytes, matching the BMP on-disk layout so decoded data
// can be transformed without repacking.
//
// # Addressing
//
//	g := raster.NewGeometry(640, 480, 24)
//	pix := raster.NewBuffer(g)
//	pix[g.Offset(x, y, c)] = 0xff
//
// # Errors
//
// Operations in this module fail with errors wrapping one of two sentinels:
//
//	ErrIO         - open/read/write/seek failures and short reads
//	ErrValidation - bad dimensions, unsupported depth, size mismatches
//
// Use errors.Is to distinguish them.
package raster
