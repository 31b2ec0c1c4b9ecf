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
	"runtime"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/riscosfont/bitfield"
	"seehuhn.de/go/riscosfont/parser"
)

// Chunk is a group of up to 32 consecutive characters.
type Chunk struct {
	// Position is the file offset of the chunk.
	Position int64

	// Flags is the chunk flags word.  For version 6 files, which do not
	// store chunk flags, this is 0x80.
	Flags uint32

	// CharOffsets gives the location of each character, relative to the
	// end of the chunk flags.  Zero indicates an undefined character.
	CharOffsets [charsPerChunk]uint32

	// Dependencies is the dependency bitmap of the chunk, or nil if the
	// chunk has none.  If bit i of byte j is set, the chunk depends on
	// chunk 8*j+i.
	Dependencies []byte

	// Characters holds the decoded characters.  Undefined characters are
	// represented by nil.
	Characters [charsPerChunk]*Character
}

// HasDependencies reports whether the chunk flags indicate the presence of
// a dependency bitmap.
func (c *Chunk) HasDependencies() bool {
	return bitfield.IsSet(c.Flags, 7)
}

// readChunks decodes the chunk index and all non-empty chunks.
// Chunks are decoded concurrently.  If more than one chunk is malformed,
// the error for the chunk with the lowest index is returned.
func readChunks(data []byte, h *Header, l layout) ([]*Chunk, error) {
	p := parser.New("outlines/chunks", data, h.ChunkIndexOffset)

	offsets, err := p.ReadUInt32Slice(h.ChunkCount + 1)
	if err != nil {
		return nil, err
	}

	dependencyBytes := (h.ChunkCount + 7) / 8

	chunks := make([]*Chunk, h.ChunkCount)
	errs := make([]error, h.ChunkCount)

	g := &errgroup.Group{}
	g.SetLimit(runtime.GOMAXPROCS(0))
	// The end offset offsets[ChunkCount] bounds the last chunk, so every
	// chunk including the last one is decoded.
	for i := range chunks {
		if offsets[i] == offsets[i+1] {
			continue
		}
		g.Go(func() error {
			chunks[i], errs[i] = readChunk(data, int64(offsets[i]), l, dependencyBytes)
			return errs[i]
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return chunks, nil
}

func readChunk(data []byte, pos int64, l layout, dependencyBytes int) (*Chunk, error) {
	p := parser.New("outlines/chunk", data, pos)

	flags, err := l.readChunkFlags(p)
	if err != nil {
		return nil, err
	}
	chunk := &Chunk{
		Position: pos,
		Flags:    flags,
	}

	charStart := p.Pos()
	offsets, err := p.ReadUInt32Slice(charsPerChunk)
	if err != nil {
		return nil, err
	}
	copy(chunk.CharOffsets[:], offsets)

	if chunk.HasDependencies() {
		buf, err := p.ReadBytes(dependencyBytes)
		if err != nil {
			return nil, err
		}
		chunk.Dependencies = append([]byte{}, buf...)
	}

	for i, offset := range chunk.CharOffsets {
		if offset == 0 {
			continue
		}
		chunk.Characters[i], err = readCharacter(data, charStart+int64(offset))
		if err != nil {
			return nil, err
		}
	}

	return chunk, nil
}
