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

import (
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/riscosfont/parser"
)

// Miscellaneous holds the font-wide information from the additional data
// block of a metrics file.
type Miscellaneous struct {
	BBox BBox

	// DefaultXOffset and DefaultYOffset are only stored if the file has
	// per-character offsets in the respective direction, and are zero
	// otherwise.
	DefaultXOffset funit.Int16
	DefaultYOffset funit.Int16

	ItalicHOffsetPerEm int16
	UnderlinePosition  int8  // in 1/256 em
	UnderlineThickness uint8 // in 1/256 em

	CapHeight funit.Int16
	XHeight   funit.Int16
	Descender funit.Int16
	Ascender  funit.Int16
}

func readMiscellaneous(p *parser.Parser, flags Flags) (*Miscellaneous, error) {
	var bbox [4]int16
	for i := range bbox {
		x, err := p.ReadInt16()
		if err != nil {
			return nil, err
		}
		bbox[i] = x
	}
	misc := &Miscellaneous{
		BBox: BBox{
			X0: funit.Int16(bbox[0]),
			Y0: funit.Int16(bbox[1]),
			X1: funit.Int16(bbox[2]),
			Y1: funit.Int16(bbox[3]),
		},
	}

	if flags.HasXOffsets() {
		x, err := p.ReadInt16()
		if err != nil {
			return nil, err
		}
		misc.DefaultXOffset = funit.Int16(x)
	}
	if flags.HasYOffsets() {
		y, err := p.ReadInt16()
		if err != nil {
			return nil, err
		}
		misc.DefaultYOffset = funit.Int16(y)
	}

	italic, err := p.ReadInt16()
	if err != nil {
		return nil, err
	}
	misc.ItalicHOffsetPerEm = italic

	buf, err := p.ReadBytes(2)
	if err != nil {
		return nil, err
	}
	misc.UnderlinePosition = int8(buf[0])
	misc.UnderlineThickness = buf[1]

	var vertical [4]int16
	for i := range vertical {
		x, err := p.ReadInt16()
		if err != nil {
			return nil, err
		}
		vertical[i] = x
	}
	misc.CapHeight = funit.Int16(vertical[0])
	misc.XHeight = funit.Int16(vertical[1])
	misc.Descender = funit.Int16(vertical[2])
	misc.Ascender = funit.Int16(vertical[3])

	return misc, nil
}
