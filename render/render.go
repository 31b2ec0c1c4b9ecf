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

// Package render rasterizes the characters of RISC OS outline fonts.
package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/vector"

	"seehuhn.de/go/riscosfont/outlines"
)

// maxDepth limits the nesting of composite characters.
const maxDepth = 8

// maxPixels limits the size of the images returned by Glyph.
const maxPixels = 1 << 26

// ErrUndefined is returned when a character is not defined in the font.
var ErrUndefined = errors.New("render: character not defined")

// Renderer rasterizes characters of an outline font.
// All characters are drawn into an image covering the font bounding box.
type Renderer struct {
	Font        *outlines.Font
	PixelsPerEm float64
}

func (r *Renderer) scale() float64 {
	return r.PixelsPerEm / float64(r.Font.DesignSize)
}

// size returns the image dimensions in pixels, as floating point numbers
// so that oversized fonts can be detected before conversion to int.
func (r *Renderer) size() (float64, float64) {
	s := r.scale()
	bbox := r.Font.BBox
	w := max(math.Ceil(float64(bbox.Width)*s), 1)
	h := max(math.Ceil(float64(bbox.Height)*s), 1)
	return w, h
}

// Bounds returns the size of the images returned by Glyph.
func (r *Renderer) Bounds() image.Rectangle {
	w, h := r.size()
	return image.Rect(0, 0, int(w), int(h))
}

// Glyph renders the character with the given code.  The filled outline of
// the character is drawn, together with all characters it references.
// Stroked paths are ignored.
func (r *Renderer) Glyph(code int) (*image.Alpha, error) {
	if r.Font.DesignSize == 0 {
		return nil, errors.New("render: design size is zero")
	}
	if !(r.PixelsPerEm > 0) || math.IsInf(r.PixelsPerEm, 0) {
		return nil, fmt.Errorf("render: invalid pixel size %g", r.PixelsPerEm)
	}
	if w, h := r.size(); w*h > maxPixels {
		return nil, fmt.Errorf("render: image size %gx%g too large", w, h)
	}

	b := r.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	err := r.addChar(z, code, 0, 0, 0)
	if err != nil {
		return nil, err
	}

	img := image.NewAlpha(b)
	z.Draw(img, b, image.Opaque, image.Point{})
	return img, nil
}

func (r *Renderer) addChar(z *vector.Rasterizer, code int, dx, dy float64, depth int) error {
	if depth >= maxDepth {
		return fmt.Errorf("render: character %d: composite nesting too deep", code)
	}
	c := r.Font.Character(code)
	if c == nil {
		if depth == 0 {
			return ErrUndefined
		}
		return fmt.Errorf("render: component %d not defined", code)
	}

	var components []outlines.Component
	switch data := c.Data.(type) {
	case *outlines.Outline:
		r.addPath(z, data.Fill, dx, dy)
		components = data.Components
	case *outlines.Composite:
		components = data.Components
	}

	for _, comp := range components {
		err := r.addChar(z, int(comp.Code), dx+float64(comp.X), dy+float64(comp.Y), depth+1)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) addPath(z *vector.Rasterizer, path outlines.Path, dx, dy float64) {
	s := r.scale()
	bbox := r.Font.BBox
	top := float64(bbox.Y0) + float64(bbox.Height)
	device := func(x, y float64) (float32, float32) {
		return float32((x + dx - float64(bbox.X0)) * s), float32((top - y - dy) * s)
	}

	open := false
	for _, seg := range path {
		c := make([]float32, len(seg.Coords))
		for i := 0; i+1 < len(seg.Coords); i += 2 {
			c[i], c[i+1] = device(float64(seg.Coords[i]), float64(seg.Coords[i+1]))
		}
		switch seg.Type {
		case outlines.Move:
			if open {
				z.ClosePath()
			}
			z.MoveTo(c[0], c[1])
			open = true
		case outlines.Line:
			z.LineTo(c[0], c[1])
		case outlines.Curve:
			z.CubeTo(c[0], c[1], c[2], c[3], c[4], c[5])
		}
	}
	if open {
		z.ClosePath()
	}
}
