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

// Package riscosfont provides support for reading the font files used by the
// RISC OS font manager.
//
// A RISC OS font consists of a metrics file ("IntMetrics"), containing
// character widths, bounding boxes and kerning pairs, and an outline file
// ("Outlines"), containing the glyph paths together with hinting data.
// The two file types are decoded by the sub-packages
// [seehuhn.de/go/riscosfont/metrics] and [seehuhn.de/go/riscosfont/outlines].
//
// Both decoders operate on a complete in-memory copy of the file:
//
//	data, err := os.ReadFile("Outlines")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	font, err := outlines.Read(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	... use font.Character(code) to access glyph outlines ...
//
// Decoding is all-or-nothing.  Malformed input results in either a
// [*FormatError] or a [*BoundsError]; no partial results are returned.
package riscosfont
