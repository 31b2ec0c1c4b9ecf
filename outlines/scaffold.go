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

package outlines

import (
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/riscosfont/bitfield"
	"seehuhn.de/go/riscosfont/parser"
)

const scaffoldLinesPerAxis = 8

// ScaffoldTable holds the hinting information of an outline file.
type ScaffoldTable struct {
	// Flags is the scaffold flags word from the file header.  Bit 0
	// indicates that all base character codes are 16 bits wide.
	Flags uint32

	// DataSize is the declared size of the scaffold data in bytes.
	DataSize uint16

	// SkeletonThresholdPixelSize is the pixel size below which characters
	// are rendered as strokes instead of filled outlines.
	SkeletonThresholdPixelSize uint8

	// Entries contains one entry per scaffold index slot.  Unused slots
	// are represented by nil.
	Entries []*ScaffoldEntry
}

// ScaffoldEntry holds the scaffold lines of one character.
type ScaffoldEntry struct {
	// Base is the code of the character from which further scaffold lines
	// are inherited.
	Base uint16

	// XBaseDefs and YBaseDefs are bit masks selecting the scaffold lines
	// inherited from the base character.  These are not resolved here.
	XBaseDefs uint8
	YBaseDefs uint8

	// XLocalDefs and YLocalDefs are bit masks indicating which entries of
	// XLines and YLines are defined.
	XLocalDefs uint8
	YLocalDefs uint8

	XLines [scaffoldLinesPerAxis]*ScaffoldLine
	YLines [scaffoldLinesPerAxis]*ScaffoldLine
}

// ScaffoldLine is a single hinting line.
type ScaffoldLine struct {
	Coordinate funit.Int16

	// Link is the index of a linked scaffold line, or zero.
	Link uint8

	// Linear is set for linear scaffold lines.
	Linear bool

	Width uint8
}

func readScaffold(data []byte, pos int64, indexCount int, flags uint32) (*ScaffoldTable, error) {
	p := parser.New("outlines/scaffold", data, pos)

	all16Bit := bitfield.IsSet(flags, 0)

	dataSize, err := p.ReadUInt16()
	if err != nil {
		return nil, err
	}
	offsets, err := p.ReadUInt16Slice(max(indexCount-1, 0))
	if err != nil {
		return nil, err
	}
	threshold, err := p.ReadUInt8()
	if err != nil {
		return nil, err
	}

	res := &ScaffoldTable{
		Flags:                      flags,
		DataSize:                   dataSize,
		SkeletonThresholdPixelSize: threshold,
		Entries:                    make([]*ScaffoldEntry, len(offsets)),
	}
	for i, offset := range offsets {
		if offset == 0 {
			continue
		}

		// Unless all base codes are 16 bits wide, bit 15 of the offset
		// selects the width for this entry.
		wideBase := true
		entryOffset := uint32(offset)
		if !all16Bit {
			wideBase = bitfield.IsSet(entryOffset, 15)
			entryOffset = bitfield.Extract(entryOffset, 0, 14)
		}

		p.SeekPos(pos + int64(entryOffset))
		res.Entries[i], err = readScaffoldEntry(p, wideBase)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

func readScaffoldEntry(p *parser.Parser, wideBase bool) (*ScaffoldEntry, error) {
	entry := &ScaffoldEntry{}
	if wideBase {
		base, err := p.ReadUInt16()
		if err != nil {
			return nil, err
		}
		entry.Base = base
	} else {
		base, err := p.ReadUInt8()
		if err != nil {
			return nil, err
		}
		entry.Base = uint16(base)
	}

	defs, err := p.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	entry.XBaseDefs = defs[0]
	entry.YBaseDefs = defs[1]
	entry.XLocalDefs = defs[2]
	entry.YLocalDefs = defs[3]

	err = readScaffoldLines(p, entry.XLocalDefs, &entry.XLines)
	if err != nil {
		return nil, err
	}
	err = readScaffoldLines(p, entry.YLocalDefs, &entry.YLines)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func readScaffoldLines(p *parser.Parser, mask uint8, lines *[scaffoldLinesPerAxis]*ScaffoldLine) error {
	for i := range lines {
		if bitfield.IsClear(uint32(mask), uint(i)) {
			continue
		}
		packed, err := p.ReadUInt16()
		if err != nil {
			return err
		}
		width, err := p.ReadUInt8()
		if err != nil {
			return err
		}
		x := uint32(packed)
		lines[i] = &ScaffoldLine{
			Coordinate: funit.Int16(bitfield.SignExtend12(x)),
			Link:       uint8(bitfield.Extract(x, 12, 3)),
			Linear:     bitfield.IsSet(x, 15),
			Width:      width,
		}
	}
	return nil
}
