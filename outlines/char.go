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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/riscosfont"
	"seehuhn.de/go/riscosfont/bitfield"
	"seehuhn.de/go/riscosfont/parser"
)

// Bits in the character flags byte.
const (
	charFlag12BitCoords     = 0
	charFlagOutline         = 3
	charFlagCompositeBase   = 4
	charFlagCompositeAccent = 5
	charFlag16BitCodes      = 6
)

// Bits in a path terminator byte.
const (
	terminatorMorePaths  = 2
	terminatorComposites = 3
)

// BoundingBox is a bounding box, given by its origin and its size.
type BoundingBox struct {
	X0, Y0        funit.Int16
	Width, Height funit.Int16
}

// Rect16 converts the bounding box to a funit.Rect16.
func (b BoundingBox) Rect16() funit.Rect16 {
	return funit.Rect16{
		LLx: b.X0,
		LLy: b.Y0,
		URx: b.X0 + b.Width,
		URy: b.Y0 + b.Height,
	}
}

// Rect converts the bounding box to text space units, using the given
// number of design units per em.
func (b BoundingBox) Rect(unitsPerEm float64) rect.Rect {
	return rect.Rect{
		LLx: float64(b.X0) / unitsPerEm,
		LLy: float64(b.Y0) / unitsPerEm,
		URx: float64(b.X0+b.Width) / unitsPerEm,
		URy: float64(b.Y0+b.Height) / unitsPerEm,
	}
}

func readBoundingBox(p *parser.Parser) (BoundingBox, error) {
	var vals [4]funit.Int16
	for i := range vals {
		x, err := p.ReadInt16()
		if err != nil {
			return BoundingBox{}, err
		}
		vals[i] = funit.Int16(x)
	}
	return BoundingBox{X0: vals[0], Y0: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// Character is a single character of an outline font.
type Character struct {
	// Position is the file offset of the character data.
	Position int64

	// Flags is the character flags byte.
	Flags uint8

	// Data is either *Composite or *Outline.
	Data CharacterData
}

// CharacterData is implemented by [*Composite] and [*Outline].
type CharacterData interface {
	isCharacterData()
}

// Component references another character of the font, placed at the
// given offset.
type Component struct {
	Code uint16
	X, Y funit.Int16
}

// Composite is a character which consists of a base character and an
// optional accent, without outlines of its own.
type Composite struct {
	Components []Component // one or two entries
}

func (*Composite) isCharacterData() {}

// Outline is a character with its own outlines.
type Outline struct {
	BBox BoundingBox

	// Fill is the path which is filled to render the character.
	Fill Path

	// Strokes are additional paths, which are stroked.
	Strokes []Path

	// Components lists further characters, for example accents, which are
	// drawn together with the outline.
	Components []Component
}

func (*Outline) isCharacterData() {}

type charReader struct {
	*parser.Parser
	flags uint32
}

func readCharacter(data []byte, pos int64) (*Character, error) {
	p := parser.New("outlines/char", data, pos)
	flags, err := p.ReadUInt8()
	if err != nil {
		return nil, err
	}
	if bitfield.IsClear(uint32(flags), charFlagOutline) {
		return nil, p.Error(riscosfont.UnsupportedFormat,
			"bitmap characters not supported")
	}

	r := &charReader{Parser: p, flags: uint32(flags)}
	c := &Character{
		Position: pos,
		Flags:    flags,
	}

	if bitfield.IsSet(r.flags, charFlagCompositeBase) {
		c.Data, err = r.readComposite()
	} else {
		c.Data, err = r.readOutline()
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *charReader) readComposite() (*Composite, error) {
	base, err := r.readCode()
	if err != nil {
		return nil, err
	}
	res := &Composite{
		Components: []Component{{Code: base}},
	}

	if bitfield.IsSet(r.flags, charFlagCompositeAccent) {
		accent, err := r.readComponent()
		if err != nil {
			return nil, err
		}
		res.Components = append(res.Components, accent)
	}
	return res, nil
}

func (r *charReader) readOutline() (*Outline, error) {
	x0, y0, err := r.readPoint()
	if err != nil {
		return nil, err
	}
	width, height, err := r.readPoint()
	if err != nil {
		return nil, err
	}
	res := &Outline{
		BBox: BoundingBox{X0: x0, Y0: y0, Width: width, Height: height},
	}

	var paths []Path
	var terminator uint8
	for {
		path, t, err := r.readPath()
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
		terminator = t
		if bitfield.IsClear(uint32(t), terminatorMorePaths) {
			break
		}
	}
	res.Fill = paths[0]
	if len(paths) > 1 {
		res.Strokes = paths[1:]
	}

	if bitfield.IsSet(uint32(terminator), terminatorComposites) {
		for {
			code, err := r.readCode()
			if err != nil {
				return nil, err
			}
			if code == 0 {
				break
			}
			x, y, err := r.readPoint()
			if err != nil {
				return nil, err
			}
			res.Components = append(res.Components, Component{Code: code, X: x, Y: y})
		}
	}

	return res, nil
}

// readPath reads path segments up to and including the terminator.
// The terminator byte is returned, since it determines what follows the
// path.
func (r *charReader) readPath() (Path, uint8, error) {
	var path Path
	for {
		s, err := r.ReadUInt8()
		if err != nil {
			return nil, 0, err
		}
		tp := SegmentType(bitfield.Extract(uint32(s), 0, 2))
		if tp == Terminator {
			return path, s, nil
		}

		numPoints := 1
		if tp == Curve {
			numPoints = 3
		}
		seg := Segment{
			Type:   tp,
			XLink:  uint8(bitfield.Extract(uint32(s), 2, 3)),
			YLink:  uint8(bitfield.Extract(uint32(s), 5, 3)),
			Coords: make([]funit.Int16, 0, 2*numPoints),
		}
		for range numPoints {
			x, y, err := r.readPoint()
			if err != nil {
				return nil, 0, err
			}
			seg.Coords = append(seg.Coords, x, y)
		}
		path = append(path, seg)
	}
}

func (r *charReader) readComponent() (Component, error) {
	code, err := r.readCode()
	if err != nil {
		return Component{}, err
	}
	x, y, err := r.readPoint()
	if err != nil {
		return Component{}, err
	}
	return Component{Code: code, X: x, Y: y}, nil
}

func (r *charReader) readCode() (uint16, error) {
	if bitfield.IsSet(r.flags, charFlag16BitCodes) {
		return r.ReadUInt16()
	}
	c, err := r.ReadUInt8()
	return uint16(c), err
}

// readPoint reads a coordinate pair.  In 12-bit mode, the pair is packed
// into three bytes, otherwise two signed bytes are used.
func (r *charReader) readPoint() (funit.Int16, funit.Int16, error) {
	if bitfield.IsClear(r.flags, charFlag12BitCoords) {
		buf, err := r.ReadBytes(2)
		if err != nil {
			return 0, 0, err
		}
		return funit.Int16(int8(buf[0])), funit.Int16(int8(buf[1])), nil
	}

	buf, err := r.ReadBytes(3)
	if err != nil {
		return 0, 0, err
	}
	a, b, c := uint32(buf[0]), uint32(buf[1]), uint32(buf[2])
	x := bitfield.SignExtend12(b<<8 | a)
	y := bitfield.SignExtend12(c<<4 | bitfield.Extract(b, 4, 4))
	return funit.Int16(x), funit.Int16(y), nil
}
