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
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/riscosfont/parser"
)

// KernOffset is the adjustment applied between a pair of characters.
// A component is zero if the file has no per-character offsets in the
// corresponding direction.
type KernOffset struct {
	X, Y funit.Int16
}

// Kerning maps a left character code and a right character code to the
// kerning adjustment for the pair.
type Kerning map[uint16]map[uint16]KernOffset

// KernPair is a single entry of a kerning table.
type KernPair struct {
	Left, Right uint16
	KernOffset
}

// Lookup returns the adjustment for the given character pair.
func (k Kerning) Lookup(left, right uint16) (KernOffset, bool) {
	row, ok := k[left]
	if !ok {
		return KernOffset{}, false
	}
	off, ok := row[right]
	return off, ok
}

// Pairs returns all kerning pairs, sorted by left and then by right
// character code.
func (k Kerning) Pairs() []KernPair {
	var res []KernPair
	lefts := maps.Keys(k)
	slices.Sort(lefts)
	for _, left := range lefts {
		row := k[left]
		rights := maps.Keys(row)
		slices.Sort(rights)
		for _, right := range rights {
			res = append(res, KernPair{Left: left, Right: right, KernOffset: row[right]})
		}
	}
	return res
}

// readKerning reads the list of left characters, each followed by its list
// of right characters.  Both lists are terminated by a zero code.
func readKerning(p *parser.Parser, flags Flags) (Kerning, error) {
	readCode := func() (uint16, error) {
		if flags.Has16BitKerning() {
			return p.ReadUInt16()
		}
		c, err := p.ReadUInt8()
		return uint16(c), err
	}

	res := make(Kerning)
	for {
		left, err := readCode()
		if err != nil {
			return nil, err
		}
		if left == 0 {
			break
		}

		row := make(map[uint16]KernOffset)
		for {
			right, err := readCode()
			if err != nil {
				return nil, err
			}
			if right == 0 {
				break
			}

			var off KernOffset
			if flags.HasXOffsets() {
				x, err := p.ReadInt16()
				if err != nil {
					return nil, err
				}
				off.X = funit.Int16(x)
			}
			if flags.HasYOffsets() {
				y, err := p.ReadInt16()
				if err != nil {
					return nil, err
				}
				off.Y = funit.Int16(y)
			}
			row[right] = off
		}
		res[left] = row
	}
	return res, nil
}
