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

// gaussian3 is the 3×3 Gaussian kernel scaled by kernelScale.
var gaussian3 = [3][3]int{
	{1, 2, 1},
	{2, 4, 2},
	{1, 2, 1},
}

const (
	kernelScale = 16
	kernelShift = 4
)

func blur(img Image, pix raster.Buffer, x *executor) (raster.Buffer, error) {
	g, err := checkBuffer("blur", img, pix)
	if err != nil {
		return nil, err
	}

	out := pix.Clone()
	if g.Width > 2 {
		x.rows(g.Height-2, 1, func(start, end int) {
			blurRows(pix, out, g, start, end)
		})
	}

	img.Counters().Record(x != nil)
	return out, nil
}

// blurRows writes blurred interior pixels of rows [y0, y1) to out, reading
// only from in.
func blurRows(in, out raster.Buffer, g raster.Geometry, y0, y1 int) {
	bpp := g.BytesPerPixel()
	for y := y0; y < y1; y++ {
		above := in.RowPixels(g, y-1)
		row := in.RowPixels(g, y)
		below := in.RowPixels(g, y+1)
		dst := out.RowPixels(g, y)

		for i := bpp; i < (g.Width-1)*bpp; i++ {
			l, r := i-bpp, i+bpp
			sum := gaussian3[0][0]*int(above[l]) + gaussian3[0][1]*int(above[i]) + gaussian3[0][2]*int(above[r]) +
				gaussian3[1][0]*int(row[l]) + gaussian3[1][1]*int(row[i]) + gaussian3[1][2]*int(row[r]) +
				gaussian3[2][0]*int(below[l]) + gaussian3[2][1]*int(below[i]) + gaussian3[2][2]*int(below[r])
			dst[i] = clampByte((sum + kernelScale/2) >> kernelShift)
		}
	}
}

func clampByte(v int) byte {
	return byte(max(0, min(v, 255)))
}
