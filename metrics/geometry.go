// seehuhn.de/go/riscosfont - a library for reading RISC OS outline fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package metrics

import "seehuhn.de/go/geom/rect"

// GlyphExtents returns the character bounding boxes in text space units,
// indexed like the per-character arrays.  The result is nil if the file
// has no bounding box data.
func (info *Info) GlyphExtents() []rect.Rect {
	if info.BBoxes == nil {
		return nil
	}
	res := make([]rect.Rect, len(info.BBoxes))
	for i, b := range info.BBoxes {
		res[i] = rect.Rect{
			LLx: float64(b.X0) / 1000,
			LLy: float64(b.Y0) / 1000,
			URx: float64(b.X1) / 1000,
			URy: float64(b.Y1) / 1000,
		}
	}
	return res
}

// Widths returns the horizontal advance of each character in text space
// units.  The result is nil if the file has no per-character x-offsets.
func (info *Info) Widths() []float64 {
	if info.XOffsets == nil {
		return nil
	}
	res := make([]float64, len(info.XOffsets))
	for i, w := range info.XOffsets {
		res[i] = float64(w) / 1000
	}
	return res
}
