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

package bmp

import (
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/ajroetker/go-raster/raster"
	"github.com/ajroetker/go-raster/raster/perf"
)

// signature is "BM" read as a little-endian uint16.
const signature = 0x4d42

// Image describes a BMP file: its original headers, the current geometry of
// its pixel buffer, and where its color table came from.
//
// The geometry changes as transforms are applied (see SetGeometry); the
// headers and color table provenance are fixed at Load and only reconciled
// with the current geometry when encoding.
type Image struct {
	file fileHeader
	info infoHeader

	geom raster.Geometry

	// Color table provenance, captured once.
	path           string
	dataOffset     int
	colorTableSize int

	counters perf.Counters
}

// Load reads and validates the headers of the BMP file at path.
// Pixel data is read separately with ReadPixels.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", raster.ErrIO, err)
	}
	defer f.Close()

	img := &Image{path: path}
	if _, err := io.ReadFull(f, img.file[:]); err != nil {
		return nil, fmt.Errorf("%w: %s: failed to read file header: %w", raster.ErrIO, path, err)
	}
	if _, err := io.ReadFull(f, img.info[:]); err != nil {
		return nil, fmt.Errorf("%w: %s: failed to read info header: %w", raster.ErrIO, path, err)
	}

	img.geom = raster.NewGeometry(
		img.info.get(infoWidth),
		img.info.get(infoHeight),
		img.info.get(infoBitCount),
	)
	if err := img.geom.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	img.dataOffset = img.file.get(fileDataOffset)
	img.colorTableSize = img.dataOffset - HeaderSize
	if img.colorTableSize < 0 {
		return nil, fmt.Errorf("%w: %s: pixel data offset %d overlaps the headers", raster.ErrValidation, path, img.dataOffset)
	}

	return img, nil
}

// New returns an in-memory image of the given size with freshly built
// headers and no color table. It has no source file; Save and Encode work,
// ReadPixels does not.
func New(width, height, bitsPerPixel int) (*Image, error) {
	g := raster.NewGeometry(width, height, bitsPerPixel)
	if err := g.Validate(); err != nil {
		return nil, err
	}

	img := &Image{geom: g, dataOffset: HeaderSize}
	img.file.set(fileSignature, signature)
	img.file.set(fileSize, HeaderSize+g.Size())
	img.file.set(fileDataOffset, HeaderSize)

	img.info.set(infoSize, InfoHeaderSize)
	img.info.set(infoWidth, width)
	img.info.set(infoHeight, height)
	img.info.set(infoPlanes, 1)
	img.info.set(infoBitCount, bitsPerPixel)
	img.info.set(infoCompression, biRGB)
	img.info.set(infoImageSize, g.Size())
	img.info.set(infoXPelsPerM, defaultPelsPerMeter)
	img.info.set(infoYPelsPerM, defaultPelsPerMeter)

	return img, nil
}

// Geometry returns the current geometry.
func (img *Image) Geometry() raster.Geometry {
	return img.geom
}

// SetGeometry replaces the current geometry. Transforms that change the
// image dimensions call this; the original headers are left untouched.
func (img *Image) SetGeometry(g raster.Geometry) {
	img.geom = g
}

// Counters returns the performance counters of this image.
func (img *Image) Counters() *perf.Counters {
	return &img.counters
}

// Width returns the current width in pixels.
func (img *Image) Width() int { return img.geom.Width }

// Height returns the current height in pixels.
func (img *Image) Height() int { return img.geom.Height }

// BitsPerPixel returns the pixel depth, 24 or 32.
func (img *Image) BitsPerPixel() int { return img.geom.BitsPerPixel }

// DataSize returns the expected pixel buffer size for the current geometry.
func (img *Image) DataSize() int { return img.geom.Size() }

// Path returns the file the image was loaded from, or "" for New images.
func (img *Image) Path() string { return img.path }

// ColorTableSize returns the size of the color table carried over from the
// source file.
func (img *Image) ColorTableSize() int { return img.colorTableSize }

// MemoryUsage estimates the bytes held by the image and a pixel buffer of
// the current geometry.
func (img *Image) MemoryUsage() int {
	return int(unsafe.Sizeof(*img)) + len(img.path) + img.geom.Size()
}

// ReadPixels reads the pixel data from the source file.
// The buffer has exactly DataSize bytes, so it must be called before any
// transform changes the geometry.
func (img *Image) ReadPixels() (raster.Buffer, error) {
	if img.path == "" {
		return nil, fmt.Errorf("%w: image has no source file", raster.ErrIO)
	}
	f, err := os.Open(img.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", raster.ErrIO, err)
	}
	defer f.Close()

	if _, err := f.Seek(int64(img.dataOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", raster.ErrIO, img.path, err)
	}
	pix := make(raster.Buffer, img.geom.Size())
	if _, err := io.ReadFull(f, pix); err != nil {
		return nil, fmt.Errorf("%w: %s: failed to read complete image data: %w", raster.ErrIO, img.path, err)
	}
	return pix, nil
}
