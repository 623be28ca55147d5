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

// Package bmp reads and writes uncompressed 24- and 32-bit BMP files.
//
// The layout is a 14-byte BITMAPFILEHEADER, a 40-byte BITMAPINFOHEADER, an
// optional color table, then bottom-up rows padded to 4 bytes:
//
//	offset 0              file header (signature, file size, data offset)
//	offset 14             info header (width, height, bpp, compression, ...)
//	offset 54             color table, data offset - 54 bytes
//	offset data offset    pixel rows, stride * height bytes
//
// Header fields this package does not manage are passed through verbatim.
// The color table is not held in memory: Encode re-reads it from the file
// the image was loaded from, so that file must still exist and be unchanged.
//
// Usage:
//
//	img, err := bmp.Load("in.bmp")
//	pix, err := img.ReadPixels()
//	pix, err = transform.RotateClockwise(img, pix)
//	err = img.Save("out.bmp", pix)
package bmp
