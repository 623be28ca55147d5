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
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"

	"github.com/ajroetker/go-raster/raster"
)

// filePerm is the mode of files written by Save.
const filePerm = 0o644

// headers returns the file and info headers describing pix under the
// current geometry. Fields other than sizes, offsets, dimensions and
// compression are copied from the original headers.
func (img *Image) headers() (fileHeader, infoHeader) {
	file, info := img.file, img.info

	dataOffset := HeaderSize + img.colorTableSize
	file.set(fileSize, dataOffset+img.geom.Size())
	file.set(fileDataOffset, dataOffset)

	info.set(infoWidth, img.geom.Width)
	info.set(infoHeight, img.geom.Height)
	info.set(infoImageSize, img.geom.Size())
	info.set(infoCompression, biRGB)

	return file, info
}

// colorTable re-reads the color table from the source file.
func (img *Image) colorTable() ([]byte, error) {
	if img.colorTableSize == 0 {
		return nil, nil
	}
	f, err := os.Open(img.path)
	if err != nil {
		return nil, fmt.Errorf("%w: color table: %w", raster.ErrIO, err)
	}
	defer f.Close()

	table := make([]byte, img.colorTableSize)
	if _, err := f.ReadAt(table, HeaderSize); err != nil {
		return nil, fmt.Errorf("%w: %s: failed to read color table: %w", raster.ErrIO, img.path, err)
	}
	return table, nil
}

// Encode writes img as a BMP file to w: headers patched for the current
// geometry, the original color table, then pix.
func (img *Image) Encode(w io.Writer, pix raster.Buffer) error {
	if len(pix) != img.geom.Size() {
		return raster.SizeMismatch("encode", len(pix), img.geom.Size())
	}
	table, err := img.colorTable()
	if err != nil {
		return err
	}

	file, info := img.headers()
	for _, part := range [][]byte{file[:], info[:], table, pix} {
		if len(part) == 0 {
			continue
		}
		if _, err := w.Write(part); err != nil {
			return fmt.Errorf("%w: %w", raster.ErrIO, err)
		}
	}
	return nil
}

// Save encodes img and pix and atomically replaces the file at path.
// On failure the destination is left as it was.
// path may be the image's own source file.
func (img *Image) Save(path string, pix raster.Buffer) error {
	var buf bytes.Buffer
	buf.Grow(HeaderSize + img.colorTableSize + len(pix))
	if err := img.Encode(&buf, pix); err != nil {
		return err
	}
	if err := renameio.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("%w: %w", raster.ErrIO, err)
	}
	return nil
}
