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

// Package outlines reads RISC OS outline font files ("Outlines").
//
// An outline file starts with a header, followed by a table of hinting
// information ("scaffold") and an index of chunks.  Each chunk holds up to 32
// consecutive characters; character code c is stored in slot c%32 of chunk
// c/32.  Outline files of versions 6, 7 and 8 are supported.  Bitmap fonts
// are not supported.
package outlines

import (
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/riscosfont"
	"seehuhn.de/go/riscosfont/parser"
)

const (
	signature = "FONT"

	charsPerChunk = 32
)

// Header contains the information from the header of an outline file,
// together with the locations of the index tables.
type Header struct {
	Magic      string
	BPP        uint8 // 0 for outline fonts
	Version    uint8 // 6, 7 or 8
	DesignSize uint16
	BBox       BoundingBox

	// The following fields are stored in the header for version 8 files,
	// and have fixed values for older versions.
	ChunkIndexOffset    int64
	ChunkCount          int
	ScaffoldIndexOffset int64
	ScaffoldIndexCount  int
	ScaffoldFlags       uint32
}

// Font is a decoded outline file.
type Font struct {
	Header

	Scaffold *ScaffoldTable

	// Chunks has length ChunkCount.  Empty chunks are represented by nil.
	Chunks []*Chunk
}

// Read decodes an outline file.
func Read(data []byte) (*Font, error) {
	p := parser.New("outlines", data, 0)

	h := Header{}
	var err error
	h.Magic, err = p.ReadString(len(signature))
	if err != nil {
		return nil, err
	}
	if h.Magic != signature {
		return nil, p.Error(riscosfont.BadSignature,
			"invalid signature %q, expected %q", h.Magic, signature)
	}

	buf, err := p.ReadBytes(2)
	if err != nil {
		return nil, err
	}
	h.BPP, h.Version = buf[0], buf[1]
	if h.BPP != 0 {
		return nil, p.Error(riscosfont.UnsupportedFormat,
			"bitmap fonts (%d bits per pixel)", h.BPP)
	}
	l := layoutFor(h.Version)
	if l == nil {
		return nil, p.Error(riscosfont.UnsupportedVersion,
			"outline version %d not supported", h.Version)
	}

	h.DesignSize, err = p.ReadUInt16()
	if err != nil {
		return nil, err
	}
	h.BBox, err = readBoundingBox(p)
	if err != nil {
		return nil, err
	}

	err = l.readTables(p, &h)
	if err != nil {
		return nil, err
	}

	scaffold, err := readScaffold(data, h.ScaffoldIndexOffset, h.ScaffoldIndexCount, h.ScaffoldFlags)
	if err != nil {
		return nil, err
	}

	chunks, err := readChunks(data, &h, l)
	if err != nil {
		return nil, err
	}

	font := &Font{
		Header:   h,
		Scaffold: scaffold,
		Chunks:   chunks,
	}
	return font, nil
}

// Character returns the character with the given code, or nil if the font
// does not define the character.
func (f *Font) Character(code int) *Character {
	if code < 0 {
		return nil
	}
	idx := code / charsPerChunk
	if idx >= len(f.Chunks) || f.Chunks[idx] == nil {
		return nil
	}
	return f.Chunks[idx].Characters[code%charsPerChunk]
}

// NumCharacters returns the number of characters defined in the font.
func (f *Font) NumCharacters() int {
	total := 0
	for _, chunk := range f.Chunks {
		if chunk == nil {
			continue
		}
		for _, c := range chunk.Characters {
			if c != nil {
				total++
			}
		}
	}
	return total
}

// GlyphExtent returns the bounding box of the given character in text
// space units.  The result is the zero rectangle for undefined characters
// and for composite characters.
func (f *Font) GlyphExtent(code int) rect.Rect {
	c := f.Character(code)
	if c == nil || f.DesignSize == 0 {
		return rect.Rect{}
	}
	outline, ok := c.Data.(*Outline)
	if !ok {
		return rect.Rect{}
	}
	return outline.BBox.Rect(float64(f.DesignSize))
}
