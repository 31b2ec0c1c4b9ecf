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

// Package parser implements a sequential little-endian reader over an
// in-memory font file.
//
// All reads are bounds-checked.  A read which would extend past the end of
// the buffer fails with a [riscosfont.BoundsError] and leaves the reading
// position unchanged.
package parser

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"seehuhn.de/go/riscosfont"
)

// Parser allows to read data from a RISC OS font file.
// The underlying buffer is borrowed from the caller and is never modified.
type Parser struct {
	data      []byte
	tableName string

	pos      int64
	lastRead int64
}

// New allocates a new Parser which starts reading data at position pos.
// The tableName is used in error messages.
func New(tableName string, data []byte, pos int64) *Parser {
	return &Parser{
		data:      data,
		tableName: tableName,
		pos:       pos,
		lastRead:  pos,
	}
}

// Size returns the total size of the underlying buffer.
func (p *Parser) Size() int64 {
	return int64(len(p.data))
}

// Pos returns the current reading position.
func (p *Parser) Pos() int64 {
	return p.pos
}

// SeekPos changes the reading position.  Positions outside the buffer are
// accepted here; the next read will fail.
func (p *Parser) SeekPos(pos int64) {
	p.pos = pos
}

// Skip advances the reading position by n bytes.
func (p *Parser) Skip(n int64) {
	p.pos += n
}

// ReadBytes reads n bytes from the buffer, starting at the current position.
// The returned slice points into the underlying buffer and must not be
// modified by the caller.
func (p *Parser) ReadBytes(n int) ([]byte, error) {
	err := p.check(int64(n))
	if err != nil {
		return nil, err
	}
	res := p.data[p.pos : p.pos+int64(n)]
	p.lastRead = p.pos
	p.pos += int64(n)
	return res, nil
}

// ReadUInt8 reads a single uint8 value from the current position.
func (p *Parser) ReadUInt8() (uint8, error) {
	buf, err := p.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadInt8 reads a single int8 value from the current position.
func (p *Parser) ReadInt8() (int8, error) {
	val, err := p.ReadUInt8()
	return int8(val), err
}

// ReadUInt16 reads a single little-endian uint16 value from the current
// position.
func (p *Parser) ReadUInt16() (uint16, error) {
	buf, err := p.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(buf[0]) | uint16(buf[1])<<8, nil
}

// ReadInt16 reads a single little-endian int16 value from the current
// position.
func (p *Parser) ReadInt16() (int16, error) {
	val, err := p.ReadUInt16()
	return int16(val), err
}

// ReadUInt32 reads a single little-endian uint32 value from the current
// position.
func (p *Parser) ReadUInt32() (uint32, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24, nil
}

// ReadString reads n bytes and interprets every byte as one character in
// the RISC OS Latin-1 alphabet.  No terminator is recognised and no
// trimming is applied.
func (p *Parser) ReadString(n int) (string, error) {
	buf, err := p.ReadBytes(n)
	if err != nil {
		return "", err
	}
	res, err := charmap.ISO8859_1.NewDecoder().Bytes(buf)
	if err != nil {
		return "", err
	}
	return string(res), nil
}

// ReadUInt16Slice reads n little-endian uint16 values.
// The length of the data is checked before any memory is allocated.
func (p *Parser) ReadUInt16Slice(n int) ([]uint16, error) {
	buf, err := p.ReadBytes(2 * n)
	if err != nil {
		return nil, err
	}
	res := make([]uint16, n)
	for i := range res {
		res[i] = uint16(buf[2*i]) | uint16(buf[2*i+1])<<8
	}
	return res, nil
}

// ReadUInt32Slice reads n little-endian uint32 values.
// The length of the data is checked before any memory is allocated.
func (p *Parser) ReadUInt32Slice(n int) ([]uint32, error) {
	buf, err := p.ReadBytes(4 * n)
	if err != nil {
		return nil, err
	}
	res := make([]uint32, n)
	for i := range res {
		b := buf[4*i:]
		res[i] = uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	}
	return res, nil
}

// Error returns a [riscosfont.FormatError] which records the table name and
// the position of the most recent read.
func (p *Parser) Error(kind riscosfont.ErrorKind, format string, a ...interface{}) error {
	return &riscosfont.FormatError{
		SubSystem: fmt.Sprintf("%s%+d", p.tableName, p.lastRead),
		Kind:      kind,
		Reason:    fmt.Sprintf(format, a...),
	}
}

func (p *Parser) check(n int64) error {
	size := p.Size()
	if n < 0 || p.pos < 0 || p.pos > size || n > size-p.pos {
		return &riscosfont.BoundsError{
			SubSystem: p.tableName,
			Pos:       p.pos,
			Size:      n,
			Len:       size,
		}
	}
	return nil
}
