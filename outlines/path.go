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
	"strconv"

	"seehuhn.de/go/postscript/funit"
)

// SegmentType is the type of a path segment.
type SegmentType uint8

// These are the possible segment types.
const (
	Terminator SegmentType = iota
	Move
	Line
	Curve
)

func (tp SegmentType) String() string {
	switch tp {
	case Terminator:
		return "terminator"
	case Move:
		return "move"
	case Line:
		return "line"
	case Curve:
		return "curve"
	default:
		return "SegmentType(" + strconv.Itoa(int(tp)) + ")"
	}
}

// Segment is a single path segment.
type Segment struct {
	Type SegmentType

	// XLink and YLink tie the segment end point to a scaffold line of the
	// character, for use in hinting.  Zero means no link.
	XLink uint8
	YLink uint8

	// Coords holds two values (x, y) for Move and Line segments, and six
	// values (two control points followed by the end point) for Curve
	// segments.
	Coords []funit.Int16
}

// Point is a coordinate pair in design units.
type Point struct {
	X, Y funit.Int16
}

// Points returns the coordinates of the segment as points.
func (s Segment) Points() []Point {
	res := make([]Point, 0, len(s.Coords)/2)
	for i := 0; i+1 < len(s.Coords); i += 2 {
		res = append(res, Point{X: s.Coords[i], Y: s.Coords[i+1]})
	}
	return res
}

// Path is a sequence of segments.
type Path []Segment

// Bounds returns the smallest rectangle which contains all end points and
// control points of the path.
func (path Path) Bounds() funit.Rect16 {
	var res funit.Rect16
	first := true
	for _, seg := range path {
		for _, pt := range seg.Points() {
			if first {
				res = funit.Rect16{LLx: pt.X, LLy: pt.Y, URx: pt.X, URy: pt.Y}
				first = false
				continue
			}
			res.LLx = min(res.LLx, pt.X)
			res.LLy = min(res.LLy, pt.Y)
			res.URx = max(res.URx, pt.X)
			res.URy = max(res.URy, pt.Y)
		}
	}
	return res
}
