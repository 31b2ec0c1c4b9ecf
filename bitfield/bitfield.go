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

// Package bitfield implements the bit-level primitives used by the
// RISC OS font decoders.
package bitfield

// Extract returns the width bits of x starting at bit offset,
// shifted down to bit 0.
func Extract(x uint32, offset, width uint) uint32 {
	return (x >> offset) & (1<<width - 1)
}

// IsSet reports whether bit n of x is set.
func IsSet(x uint32, n uint) bool {
	return Extract(x, n, 1) != 0
}

// IsClear reports whether bit n of x is clear.
func IsClear(x uint32, n uint) bool {
	return Extract(x, n, 1) == 0
}

// SignExtend12 interprets the low 12 bits of x as a two's-complement
// number.  The result is in the range -2048 to 2047.
func SignExtend12(x uint32) int16 {
	return int16((int32(x&0xFFF) ^ 0x800) - 0x800)
}
