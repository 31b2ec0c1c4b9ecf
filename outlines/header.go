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
	"seehuhn.de/go/riscosfont/parser"
)

// Fixed table layout used before version 8.
const (
	fixedChunkCount         = 8
	fixedScaffoldIndexCount = 256
)

// chunkHasDependencies is the chunk flag which indicates that a dependency
// bitmap follows the character offsets.
const chunkHasDependencies = 0x80

// layout captures the parts of the file format which differ between
// outline file versions.
type layout interface {
	// readTables reads the header fields following the font bounding box
	// and fills in the table locations in h.
	readTables(p *parser.Parser, h *Header) error

	// readChunkFlags obtains the flags at the start of a chunk.
	readChunkFlags(p *parser.Parser) (uint32, error)
}

func layoutFor(version uint8) layout {
	switch version {
	case 6:
		return version6{}
	case 7:
		return version7{}
	case 8:
		return version8{}
	default:
		return nil
	}
}

// version6 files have a fixed table layout.  Chunks carry no flags word and
// always have a dependency bitmap.
type version6 struct{}

func (version6) readTables(p *parser.Parser, h *Header) error {
	fixedTables(p, h)
	return nil
}

func (version6) readChunkFlags(*parser.Parser) (uint32, error) {
	return chunkHasDependencies, nil
}

// version7 files have a fixed table layout and a flags word at the start
// of every chunk.
type version7 struct{}

func (version7) readTables(p *parser.Parser, h *Header) error {
	fixedTables(p, h)
	return nil
}

func (version7) readChunkFlags(p *parser.Parser) (uint32, error) {
	return p.ReadUInt32()
}

// version8 files store the table locations in the header.
type version8 struct{}

func (version8) readTables(p *parser.Parser, h *Header) error {
	chunkIndexOffset, err := p.ReadUInt32()
	if err != nil {
		return err
	}
	chunkCount, err := p.ReadUInt32()
	if err != nil {
		return err
	}

	// The scaffold index follows 28 bytes of header data, of which only
	// the first 8 bytes are used.
	scaffoldIndexOffset := p.Pos() + 28

	scaffoldIndexCount, err := p.ReadUInt32()
	if err != nil {
		return err
	}
	scaffoldFlags, err := p.ReadUInt32()
	if err != nil {
		return err
	}

	h.ChunkIndexOffset = int64(chunkIndexOffset)
	h.ChunkCount = int(chunkCount)
	h.ScaffoldIndexOffset = scaffoldIndexOffset
	h.ScaffoldIndexCount = int(scaffoldIndexCount)
	h.ScaffoldFlags = scaffoldFlags
	return nil
}

func (version8) readChunkFlags(p *parser.Parser) (uint32, error) {
	return p.ReadUInt32()
}

// fixedTables sets the table locations for files before version 8, where
// the chunk index immediately follows the header.
func fixedTables(p *parser.Parser, h *Header) {
	h.ChunkIndexOffset = p.Pos()
	h.ChunkCount = fixedChunkCount
	h.ScaffoldIndexOffset = h.ChunkIndexOffset + 4*(fixedChunkCount+1)
	h.ScaffoldIndexCount = fixedScaffoldIndexCount
	h.ScaffoldFlags = 0
}
