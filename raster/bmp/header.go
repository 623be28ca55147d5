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

import "encoding/binary"

// Header sizes in bytes.
const (
	FileHeaderSize = 14
	InfoHeaderSize = 40

	// HeaderSize is the offset of the color table, if any.
	HeaderSize = FileHeaderSize + InfoHeaderSize
)

// field locates a little-endian integer inside a header blob.
type field struct {
	off, size int
}

// BITMAPFILEHEADER fields.
var (
	fileSignature  = field{0, 2}
	fileSize       = field{2, 4}
	fileDataOffset = field{10, 4}
)

// BITMAPINFOHEADER fields.
var (
	infoSize        = field{0, 4}
	infoWidth       = field{4, 4}
	infoHeight      = field{8, 4}
	infoPlanes      = field{12, 2}
	infoBitCount    = field{14, 2}
	infoCompression = field{16, 4}
	infoImageSize   = field{20, 4}
	infoXPelsPerM   = field{24, 4}
	infoYPelsPerM   = field{28, 4}
)

// defaultPelsPerMeter is 72 DPI.
const defaultPelsPerMeter = 2835

// biRGB is the uncompressed compression tag.
const biRGB = 0

type (
	fileHeader [FileHeaderSize]byte
	infoHeader [InfoHeaderSize]byte
)

// getField reads f from b as a signed integer of f.size bytes.
func getField(b []byte, f field) int {
	switch f.size {
	case 2:
		return int(int16(binary.LittleEndian.Uint16(b[f.off:])))
	default:
		return int(int32(binary.LittleEndian.Uint32(b[f.off:])))
	}
}

// setField writes the low f.size bytes of v into b.
func setField(b []byte, f field, v int) {
	switch f.size {
	case 2:
		binary.LittleEndian.PutUint16(b[f.off:], uint16(v))
	default:
		binary.LittleEndian.PutUint32(b[f.off:], uint32(v))
	}
}

func (h *fileHeader) get(f field) int    { return getField(h[:], f) }
func (h *fileHeader) set(f field, v int) { setField(h[:], f, v) }
func (h *infoHeader) get(f field) int    { return getField(h[:], f) }
func (h *infoHeader) set(f field, v int) { setField(h[:], f, v) }
