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
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/riscosfont"
	"seehuhn.de/go/riscosfont/parser"
)

// builder assembles little-endian test data.
type builder struct {
	buf []byte
}

func (b *builder) pos() int64 {
	return int64(len(b.buf))
}

func (b *builder) u8(xx ...uint8) {
	b.buf = append(b.buf, xx...)
}

func (b *builder) u16(xx ...uint16) {
	for _, x := range xx {
		b.buf = append(b.buf, byte(x), byte(x>>8))
	}
}

func (b *builder) i16(xx ...int16) {
	for _, x := range xx {
		b.u16(uint16(x))
	}
}

func (b *builder) u32(xx ...uint32) {
	for _, x := range xx {
		b.buf = append(b.buf, byte(x), byte(x>>8), byte(x>>16), byte(x>>24))
	}
}

func (b *builder) setU32(at int64, x uint32) {
	b.buf[at] = byte(x)
	b.buf[at+1] = byte(x >> 8)
	b.buf[at+2] = byte(x >> 16)
	b.buf[at+3] = byte(x >> 24)
}

// pt8 writes a coordinate pair in 8-bit format.
func (b *builder) pt8(x, y int8) {
	b.u8(uint8(x), uint8(y))
}

// pt12 writes a coordinate pair in packed 12-bit format.
func (b *builder) pt12(x, y int16) {
	x12 := uint16(x) & 0xFFF
	y12 := uint16(y) & 0xFFF
	b.u8(byte(x12), byte(x12>>8)|byte(y12&0xF)<<4, byte(y12>>4))
}

// chunk writes a chunk.  The map chars gives the encoded character data
// for every defined slot.
func (b *builder) chunk(withFlags bool, flags uint32, deps []byte, chars map[int][]byte) {
	if withFlags {
		b.u32(flags)
	}
	start := b.pos()
	b.u8(make([]byte, 4*charsPerChunk)...)
	b.u8(deps...)
	for slot := 0; slot < charsPerChunk; slot++ {
		data, ok := chars[slot]
		if !ok {
			continue
		}
		b.setU32(start+4*int64(slot), uint32(b.pos()-start))
		b.u8(data...)
	}
}

// headerV8 writes a version 8 header.  The chunk index offset must be
// filled in later, at position 16.
func (b *builder) headerV8(chunkCount, scaffoldCount int, scaffoldFlags uint32) {
	b.u8('F', 'O', 'N', 'T', 0, 8)
	b.u16(1000)
	b.i16(-50, -200, 1100, 1150)
	b.u32(0, uint32(chunkCount))
	b.u32(uint32(scaffoldCount), scaffoldFlags)
	b.u8(make([]byte, 20)...)
}

// headerFixed writes a version 6 or 7 header, followed by space for the
// chunk index and an empty scaffold table.
func (b *builder) headerFixed(version uint8) {
	b.u8('F', 'O', 'N', 'T', 0, version)
	b.u16(1000)
	b.i16(0, 0, 0, 0)
	b.u32(make([]uint32, fixedChunkCount+1)...)
	b.u16(513)
	b.u16(make([]uint16, fixedScaffoldIndexCount-1)...)
	b.u8(7)
}

func (b *builder) setChunkIndex(at int64, offsets ...int64) {
	for i, offset := range offsets {
		b.setU32(at+4*int64(i), uint32(offset))
	}
}

// buildV8 returns a small version 8 font with two chunks, of which
// the first one is empty.
func buildV8() (data []byte, chunkPos int64) {
	b := &builder{}
	b.headerV8(2, 4, 0)

	// scaffold table
	b.u16(32)
	b.u16(9|0x8000, 0, 24)
	b.u8(12)
	b.u16(0x0141)
	b.u8(0, 0, 0b0000_0101, 0b1000_0000)
	b.u16(0xA064)
	b.u8(20)
	b.u16(0x7FFB)
	b.u8(0)
	b.u16(0x8800)
	b.u8(255)
	b.u8('A', 3, 1, 0, 1)
	b.u16(0x0010)
	b.u8(5)

	index := b.pos()
	b.setU32(16, uint32(index))
	b.u32(0, 0, 0)

	c1 := &builder{}
	c1.u8(0x08)
	c1.pt8(0, 0)
	c1.pt8(100, 120)
	c1.u8(0x01)
	c1.pt8(5, -3)
	c1.u8(0b101_011_10)
	c1.pt8(50, 100)
	c1.u8(0x03)
	c1.pt8(1, 2)
	c1.pt8(3, 4)
	c1.pt8(5, 6)
	c1.u8(0x00)

	c2 := &builder{}
	c2.u8(0x38, 'e', 0xB4)
	c2.pt8(10, 20)

	chunkPos = b.pos()
	b.chunk(true, 0x80, []byte{0b10}, map[int][]byte{1: c1.buf, 2: c2.buf})
	b.setChunkIndex(index, chunkPos, chunkPos, b.pos())

	return b.buf, chunkPos
}

func TestReadV8(t *testing.T) {
	data, a := buildV8()

	font, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}

	expected := &Font{
		Header: Header{
			Magic:               "FONT",
			BPP:                 0,
			Version:             8,
			DesignSize:          1000,
			BBox:                BoundingBox{X0: -50, Y0: -200, Width: 1100, Height: 1150},
			ChunkIndexOffset:    84,
			ChunkCount:          2,
			ScaffoldIndexOffset: 52,
			ScaffoldIndexCount:  4,
			ScaffoldFlags:       0,
		},
		Scaffold: &ScaffoldTable{
			Flags:                      0,
			DataSize:                   32,
			SkeletonThresholdPixelSize: 12,
			Entries: []*ScaffoldEntry{
				{
					Base:       0x0141,
					XLocalDefs: 0b0000_0101,
					YLocalDefs: 0b1000_0000,
					XLines: [8]*ScaffoldLine{
						0: {Coordinate: 100, Link: 2, Linear: true, Width: 20},
						2: {Coordinate: -5, Link: 7, Linear: false, Width: 0},
					},
					YLines: [8]*ScaffoldLine{
						7: {Coordinate: -2048, Link: 0, Linear: true, Width: 255},
					},
				},
				nil,
				{
					Base:       'A',
					XBaseDefs:  3,
					YBaseDefs:  1,
					YLocalDefs: 1,
					YLines: [8]*ScaffoldLine{
						0: {Coordinate: 16, Width: 5},
					},
				},
			},
		},
		Chunks: []*Chunk{
			nil,
			{
				Position:     a,
				Flags:        0x80,
				CharOffsets:  [32]uint32{1: 129, 2: 148},
				Dependencies: []byte{0b10},
				Characters: [32]*Character{
					1: {
						Position: a + 4 + 129,
						Flags:    0x08,
						Data: &Outline{
							BBox: BoundingBox{X0: 0, Y0: 0, Width: 100, Height: 120},
							Fill: Path{
								{Type: Move, Coords: []funit.Int16{5, -3}},
								{Type: Line, XLink: 3, YLink: 5, Coords: []funit.Int16{50, 100}},
								{Type: Curve, Coords: []funit.Int16{1, 2, 3, 4, 5, 6}},
							},
						},
					},
					2: {
						Position: a + 4 + 148,
						Flags:    0x38,
						Data: &Composite{
							Components: []Component{
								{Code: 'e'},
								{Code: 0xB4, X: 10, Y: 20},
							},
						},
					},
				},
			},
		},
	}

	if d := cmp.Diff(expected, font); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}

	if font.Character(32) != nil || font.Character(0) != nil {
		t.Error("unexpected character in empty slot")
	}
	if font.Character(33) != font.Chunks[1].Characters[1] {
		t.Error("Character(33) returned wrong character")
	}
	if font.Character(64) != nil || font.Character(-1) != nil {
		t.Error("unexpected character outside of font")
	}
	if n := font.NumCharacters(); n != 2 {
		t.Errorf("wrong number of characters %d", n)
	}
	if !font.Chunks[1].HasDependencies() {
		t.Error("dependency flag not recognised")
	}
}

func TestReadV6(t *testing.T) {
	b := &builder{}
	b.headerFixed(6)

	c := &builder{}
	c.u8(0x09)
	c.pt12(-10, -20)
	c.pt12(1500, 1800)
	c.u8(0x01)
	c.pt12(-2048, 2047)
	c.u8(0x02)
	c.pt12(1000, -1)
	c.u8(0x04)
	c.u8(0x01)
	c.pt12(0, 0)
	c.u8(0x02)
	c.pt12(10, 10)
	c.u8(0x08)
	c.u8('b')
	c.pt12(300, -400)
	c.u8(0)

	chunkPos := b.pos()
	b.chunk(false, 0, []byte{0b1}, map[int][]byte{1: c.buf})
	end := b.pos()
	b.setChunkIndex(16, chunkPos, chunkPos, chunkPos, end, end, end, end, end, end)

	font, err := Read(b.buf)
	if err != nil {
		t.Fatal(err)
	}

	h := font.Header
	if h.ChunkIndexOffset != 16 || h.ChunkCount != 8 ||
		h.ScaffoldIndexOffset != 52 || h.ScaffoldIndexCount != 256 || h.ScaffoldFlags != 0 {
		t.Errorf("wrong table layout %+v", h)
	}
	if font.Scaffold.DataSize != 513 || font.Scaffold.SkeletonThresholdPixelSize != 7 {
		t.Errorf("wrong scaffold header %+v", font.Scaffold)
	}
	if len(font.Scaffold.Entries) != 255 {
		t.Errorf("wrong number of scaffold entries %d", len(font.Scaffold.Entries))
	}

	for i, chunk := range font.Chunks {
		if (chunk != nil) != (i == 2) {
			t.Errorf("chunk %d: wrong presence", i)
		}
	}
	chunk := font.Chunks[2]
	if chunk.Flags != 0x80 || !chunk.HasDependencies() {
		t.Errorf("wrong chunk flags %x", chunk.Flags)
	}
	if d := cmp.Diff([]byte{0b1}, chunk.Dependencies); d != "" {
		t.Error(d)
	}

	char := font.Character('A')
	if char == nil {
		t.Fatal("character A not found")
	}
	expected := &Character{
		Position: chunkPos + 129,
		Flags:    0x09,
		Data: &Outline{
			BBox: BoundingBox{X0: -10, Y0: -20, Width: 1500, Height: 1800},
			Fill: Path{
				{Type: Move, Coords: []funit.Int16{-2048, 2047}},
				{Type: Line, Coords: []funit.Int16{1000, -1}},
			},
			Strokes: []Path{
				{
					{Type: Move, Coords: []funit.Int16{0, 0}},
					{Type: Line, Coords: []funit.Int16{10, 10}},
				},
			},
			Components: []Component{
				{Code: 'b', X: 300, Y: -400},
			},
		},
	}
	if d := cmp.Diff(expected, char); d != "" {
		t.Errorf("unexpected character (-want +got):\n%s", d)
	}

	ext := font.GlyphExtent('A')
	if ext != (rect.Rect{LLx: -0.01, LLy: -0.02, URx: 1.49, URy: 1.78}) {
		t.Errorf("wrong glyph extent %v", ext)
	}
	if font.GlyphExtent('B') != (rect.Rect{}) {
		t.Error("undefined character has non-zero extent")
	}
}

func TestReadV7(t *testing.T) {
	b := &builder{}
	b.headerFixed(7)

	comp := &builder{}
	comp.u8(0x58)
	comp.u16(0x0141)

	empty := &builder{}
	empty.u8(0x08)
	empty.pt8(0, 0)
	empty.pt8(0, 0)
	empty.u8(0x00)

	c0 := b.pos()
	b.chunk(true, 0, nil, map[int][]byte{5: comp.buf})
	c7 := b.pos()
	b.chunk(true, 0, nil, map[int][]byte{0: empty.buf})
	end := b.pos()
	b.setChunkIndex(16, c0, c7, c7, c7, c7, c7, c7, c7, end)

	font, err := Read(b.buf)
	if err != nil {
		t.Fatal(err)
	}

	if font.Chunks[0].HasDependencies() || font.Chunks[0].Dependencies != nil {
		t.Error("unexpected dependency data")
	}
	if d := cmp.Diff(&Composite{Components: []Component{{Code: 0x0141}}}, font.Character(5).Data); d != "" {
		t.Error(d)
	}

	// the last chunk must be decoded as well
	last := font.Character(7 * 32)
	if last == nil {
		t.Fatal("character in last chunk not decoded")
	}
	if d := cmp.Diff(&Outline{}, last.Data); d != "" {
		t.Error(d)
	}
	if n := font.NumCharacters(); n != 2 {
		t.Errorf("wrong number of characters %d", n)
	}
}

func TestHeaderErrors(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		kind riscosfont.ErrorKind
	}{
		{"magic", []byte("FONS\x00\x08"), riscosfont.BadSignature},
		{"lower case", []byte("font\x00\x08"), riscosfont.BadSignature},
		{"bpp", []byte("FONT\x04\x08"), riscosfont.UnsupportedFormat},
		{"version 5", []byte("FONT\x00\x05"), riscosfont.UnsupportedVersion},
		{"version 9", []byte("FONT\x00\x09"), riscosfont.UnsupportedVersion},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data := append(c.data, make([]byte, 100)...)
			_, err := Read(data)
			var formatErr *riscosfont.FormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("expected FormatError, got %v", err)
			}
			if formatErr.Kind != c.kind {
				t.Errorf("wrong error kind %s", formatErr.Kind)
			}
		})
	}
}

func TestBitmapCharacter(t *testing.T) {
	b := &builder{}
	b.headerV8(1, 1, 0)
	b.u16(0)
	b.u8(0)
	index := b.pos()
	b.setU32(16, uint32(index))
	b.u32(0, 0)
	chunkPos := b.pos()
	b.chunk(true, 0, nil, map[int][]byte{3: {0x00}})
	b.setChunkIndex(index, chunkPos, b.pos())

	_, err := Read(b.buf)
	var formatErr *riscosfont.FormatError
	if !errors.As(err, &formatErr) || formatErr.Kind != riscosfont.UnsupportedFormat {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestErrorOrder(t *testing.T) {
	b := &builder{}
	b.headerV8(2, 1, 0)
	b.u16(0)
	b.u8(0)
	index := b.pos()
	b.setU32(16, uint32(index))
	b.u32(0, 0, 0)
	c0 := b.pos()
	b.chunk(true, 0, nil, map[int][]byte{0: {0x00}})
	c1 := b.pos()
	b.chunk(true, 0, nil, map[int][]byte{0: {0x00}})
	b.setChunkIndex(index, c0, c1, b.pos())

	want := fmt.Sprintf("outlines/char%+d", c0+4+4*charsPerChunk)
	for range 20 {
		_, err := Read(b.buf)
		var formatErr *riscosfont.FormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("expected FormatError, got %v", err)
		}
		if formatErr.SubSystem != want {
			t.Fatalf("error reported for %s, expected %s", formatErr.SubSystem, want)
		}
	}
}

func TestTruncated(t *testing.T) {
	data, _ := buildV8()
	for l := 0; l < len(data); l++ {
		font, err := Read(data[:l])
		if !riscosfont.IsBounds(err) {
			t.Fatalf("truncated to %d bytes: expected BoundsError, got %v", l, err)
		}
		if font != nil {
			t.Fatal("partial result returned")
		}
	}
}

func TestBadOffsets(t *testing.T) {
	data, _ := buildV8()
	data = append([]byte{}, data...)

	// chunk index pointing beyond the end of the file
	data[16], data[17], data[18], data[19] = 0xFF, 0xFF, 0xFF, 0x7F
	_, err := Read(data)
	if !riscosfont.IsBounds(err) {
		t.Errorf("expected BoundsError, got %v", err)
	}
}

func TestSegment(t *testing.T) {
	r := &charReader{
		Parser: parser.New("test", []byte{0b0000_0001, 5, 0xFD, 0}, 0),
	}
	path, terminator, err := r.readPath()
	if err != nil {
		t.Fatal(err)
	}
	if terminator != 0 {
		t.Errorf("wrong terminator %d", terminator)
	}
	expected := Path{{Type: Move, Coords: []funit.Int16{5, -3}}}
	if d := cmp.Diff(expected, path); d != "" {
		t.Error(d)
	}
}

func TestPoint12(t *testing.T) {
	values := []int16{-2048, -2047, -1000, -256, -17, -1, 0, 1, 15, 16, 255, 256, 1000, 2047}
	for _, x := range values {
		for _, y := range values {
			b := &builder{}
			b.pt12(x, y)
			r := &charReader{
				Parser: parser.New("test", b.buf, 0),
				flags:  1 << charFlag12BitCoords,
			}
			gotX, gotY, err := r.readPoint()
			if err != nil {
				t.Fatal(err)
			}
			if gotX != funit.Int16(x) || gotY != funit.Int16(y) {
				t.Errorf("(%d, %d) decoded as (%d, %d)", x, y, gotX, gotY)
			}
		}
	}
}

func TestCompositeCodes(t *testing.T) {
	c := &builder{}
	c.u8(0x78) // outline, base, accent, 16-bit codes
	c.u16(0x1E00, 0x0301)
	c.pt8(-4, 120)

	char, err := readCharacter(c.buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	expected := &Composite{
		Components: []Component{
			{Code: 0x1E00},
			{Code: 0x0301, X: -4, Y: 120},
		},
	}
	if d := cmp.Diff(expected, char.Data); d != "" {
		t.Error(d)
	}
}

func TestScaffold16Bit(t *testing.T) {
	b := &builder{}
	b.u16(15)
	b.u16(7, 0)
	b.u8(9)
	b.u16(0x8041)
	b.u8(0, 0, 1, 0)
	b.u16(0x0FFF)
	b.u8(1)

	table, err := readScaffold(b.buf, 0, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	expected := &ScaffoldTable{
		Flags:                      1,
		DataSize:                   15,
		SkeletonThresholdPixelSize: 9,
		Entries: []*ScaffoldEntry{
			{
				Base:       0x8041,
				XLocalDefs: 1,
				XLines: [8]*ScaffoldLine{
					0: {Coordinate: -1, Width: 1},
				},
			},
			nil,
		},
	}
	if d := cmp.Diff(expected, table); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}
}

func TestPathHelpers(t *testing.T) {
	path := Path{
		{Type: Move, Coords: []funit.Int16{10, 20}},
		{Type: Curve, Coords: []funit.Int16{-5, 30, 40, 25, 15, -7}},
		{Type: Line, Coords: []funit.Int16{10, 20}},
	}
	if got := path.Bounds(); got != (funit.Rect16{LLx: -5, LLy: -7, URx: 40, URy: 30}) {
		t.Errorf("wrong bounds %v", got)
	}
	if got := (Path{}).Bounds(); got != (funit.Rect16{}) {
		t.Errorf("wrong bounds for empty path %v", got)
	}
	expected := []Point{{-5, 30}, {40, 25}, {15, -7}}
	if d := cmp.Diff(expected, path[1].Points()); d != "" {
		t.Error(d)
	}
	if s := Curve.String(); s != "curve" {
		t.Errorf("wrong name %q", s)
	}

	box := BoundingBox{X0: -10, Y0: -20, Width: 100, Height: 200}
	if got := box.Rect16(); got != (funit.Rect16{LLx: -10, LLy: -20, URx: 90, URy: 180}) {
		t.Errorf("wrong rectangle %v", got)
	}
}

func FuzzRead(f *testing.F) {
	data, _ := buildV8()
	f.Add(data)
	b := &builder{}
	b.headerFixed(6)
	b.setChunkIndex(16, 52, 52, 52, 52, 52, 52, 52, 52, 52)
	f.Add(b.buf)
	f.Add([]byte("FONT"))

	f.Fuzz(func(t *testing.T, data []byte) {
		font, err := Read(data)
		if err != nil {
			if !riscosfont.IsBounds(err) && !riscosfont.IsFormatError(err) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			if font != nil {
				t.Fatal("partial result returned")
			}
			return
		}
		if len(font.Chunks) != font.ChunkCount {
			t.Fatal("wrong number of chunks")
		}
	})
}
