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

// Package metrics reads RISC OS font metrics files ("IntMetrics").
//
// A metrics file lists, for every character of a font, the bounding box and
// the advance vector.  Optionally, the file contains additional font-wide
// information and a kerning table.  All dimensions are given in 1/1000 em.
package metrics

import (
	"strings"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/riscosfont"
	"seehuhn.de/go/riscosfont/bitfield"
	"seehuhn.de/go/riscosfont/parser"
)

const nameLength = 40

// nameTrailer lists the characters removed from the end of a font name.
// U+0085 is not included.
const nameTrailer = " \t\n\v\f\r\u00a0"

// Flags is the flags byte from the header of a metrics file.
// Note that bits 0-2 have inverted sense: a set bit means the
// corresponding data is absent.
type Flags uint8

// HasBBoxes reports whether the file contains per-character bounding boxes.
func (f Flags) HasBBoxes() bool {
	return bitfield.IsClear(uint32(f), 0)
}

// HasXOffsets reports whether the file contains per-character x-offsets.
func (f Flags) HasXOffsets() bool {
	return bitfield.IsClear(uint32(f), 1)
}

// HasYOffsets reports whether the file contains per-character y-offsets.
func (f Flags) HasYOffsets() bool {
	return bitfield.IsClear(uint32(f), 2)
}

// HasExtraData reports whether the miscellaneous data and the kerning
// table follow the per-character metrics.
func (f Flags) HasExtraData() bool {
	return bitfield.IsSet(uint32(f), 3)
}

// HasMapSize reports whether an explicit character map size is stored.
// Otherwise the character map has 256 entries.
func (f Flags) HasMapSize() bool {
	return bitfield.IsSet(uint32(f), 5)
}

// Has16BitKerning reports whether kerning pairs use 16-bit character codes.
func (f Flags) Has16BitKerning() bool {
	return bitfield.IsSet(uint32(f), 6)
}

// BBox is a bounding box, given by two corner points.
type BBox struct {
	X0, Y0, X1, Y1 funit.Int16
}

// Rect16 converts the bounding box to a funit.Rect16.
func (b BBox) Rect16() funit.Rect16 {
	return funit.Rect16{LLx: b.X0, LLy: b.Y0, URx: b.X1, URy: b.Y1}
}

// Info contains the information from a metrics file.
type Info struct {
	// Name is the font name, with trailing white space removed.
	Name string

	// Reserved holds the two words following the name.  Their meaning is
	// not known.
	Reserved [2]uint32

	Version uint8 // 0 or 2
	Flags   Flags

	// NumChars is the number of characters with metrics information.
	NumChars int

	// Map maps character codes to indices into the per-character arrays.
	Map []uint8

	// The following slices have length NumChars if the corresponding
	// data is present in the file, and are nil otherwise.
	BBoxes   []BBox
	XOffsets []funit.Int16
	YOffsets []funit.Int16

	// Misc and Kerning are nil, unless the flags indicate that the
	// additional data block is present.
	Misc    *Miscellaneous
	Kerning Kerning
}

// Read decodes a metrics file.
func Read(data []byte) (*Info, error) {
	p := parser.New("metrics", data, 0)

	name, err := p.ReadString(nameLength)
	if err != nil {
		return nil, err
	}
	reserved, err := p.ReadUInt32Slice(2)
	if err != nil {
		return nil, err
	}
	buf, err := p.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	nLow, version, flags, nHigh := buf[0], buf[1], Flags(buf[2]), buf[3]

	if version != 0 && version != 2 {
		return nil, p.Error(riscosfont.UnsupportedVersion,
			"metrics version %d not supported", version)
	}
	if version == 0 && (flags != 0 || nHigh != 0) {
		return nil, p.Error(riscosfont.InvariantViolation,
			"version 0 metrics must have zero flags and at most 256 characters")
	}

	info := &Info{
		Name:     strings.TrimRight(name, nameTrailer),
		Reserved: [2]uint32{reserved[0], reserved[1]},
		Version:  version,
		Flags:    flags,
		NumChars: int(nHigh)<<8 + int(nLow),
	}

	mapSize := 256
	if flags.HasMapSize() {
		size, err := p.ReadUInt16()
		if err != nil {
			return nil, err
		}
		mapSize = int(size)
	}
	charMap, err := p.ReadBytes(mapSize)
	if err != nil {
		return nil, err
	}
	info.Map = append([]uint8(nil), charMap...)

	n := info.NumChars
	if flags.HasBBoxes() {
		raw, err := p.ReadUInt16Slice(4 * n)
		if err != nil {
			return nil, err
		}
		info.BBoxes = make([]BBox, n)
		for i := range info.BBoxes {
			info.BBoxes[i] = BBox{
				X0: funit.Int16(raw[4*i]),
				Y0: funit.Int16(raw[4*i+1]),
				X1: funit.Int16(raw[4*i+2]),
				Y1: funit.Int16(raw[4*i+3]),
			}
		}
	}
	if flags.HasXOffsets() {
		info.XOffsets, err = readInt16s(p, n)
		if err != nil {
			return nil, err
		}
	}
	if flags.HasYOffsets() {
		info.YOffsets, err = readInt16s(p, n)
		if err != nil {
			return nil, err
		}
	}

	if flags.HasExtraData() {
		tableStart := p.Pos()
		miscOffset, err := p.ReadUInt16()
		if err != nil {
			return nil, err
		}
		kernOffset, err := p.ReadUInt16()
		if err != nil {
			return nil, err
		}

		p.SeekPos(tableStart + int64(miscOffset))
		info.Misc, err = readMiscellaneous(p, flags)
		if err != nil {
			return nil, err
		}

		p.SeekPos(tableStart + int64(kernOffset))
		info.Kerning, err = readKerning(p, flags)
		if err != nil {
			return nil, err
		}
	}

	return info, nil
}

// CharIndex returns the index into the per-character arrays for the given
// character code.  The second return value is false if the code is not
// covered by the character map.
func (info *Info) CharIndex(code int) (int, bool) {
	if code < 0 || code >= len(info.Map) {
		return 0, false
	}
	return int(info.Map[code]), true
}

func readInt16s(p *parser.Parser, n int) ([]funit.Int16, error) {
	raw, err := p.ReadUInt16Slice(n)
	if err != nil {
		return nil, err
	}
	res := make([]funit.Int16, n)
	for i, x := range raw {
		res[i] = funit.Int16(x)
	}
	return res, nil
}
