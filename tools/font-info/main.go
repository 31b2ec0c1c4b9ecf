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

package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"seehuhn.de/go/riscosfont/metrics"
	"seehuhn.de/go/riscosfont/outlines"
	"seehuhn.de/go/riscosfont/render"
	"seehuhn.de/go/riscosfont/tools/internal/cli"
)

var (
	kernArg    = flag.Bool("kern", false, "list the kerning pairs")
	charsArg   = flag.Bool("chars", false, "list the defined characters")
	pngArg     = flag.String("png", "", "render the character given by -code to `file`")
	codeArg    = flag.Int("code", 'A', "character code for -png")
	sizeArg    = flag.Float64("size", 64, "pixels per em for -png")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "font-info - show information about a RISC OS outline font\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", cli.Version("font-info"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  font-info [options] <font-dir>...\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  font-dir   a font directory containing IntMetrics and Outlines files\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	prof := &cli.Profile{CPUFile: *cpuprofile, MemFile: *memprofile}
	stop, err := prof.Start()
	if err != nil {
		return err
	}
	defer stop()

	for _, dir := range flag.Args() {
		err := showFont(dir)
		if err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}
	}
	return nil
}

func showFont(dir string) error {
	fmt.Println(dir)

	info, err := loadMetrics(dir)
	if err != nil {
		return err
	}
	font, err := loadOutlines(dir)
	if err != nil {
		return err
	}
	if info == nil && font == nil {
		return errors.New("no font files found")
	}

	if info != nil {
		fmt.Printf("  name: %s\n", info.Name)
		fmt.Printf("  metrics version %d, %d characters\n", info.Version, info.NumChars)
		if m := info.Misc; m != nil {
			fmt.Printf("  ascender %d, descender %d, cap height %d, x-height %d\n",
				m.Ascender, m.Descender, m.CapHeight, m.XHeight)
		}
		if *kernArg {
			for _, pair := range info.Kerning.Pairs() {
				fmt.Printf("  kern %s %s %d %d\n",
					charName(int(pair.Left)), charName(int(pair.Right)), pair.X, pair.Y)
			}
		}
	}

	if font != nil {
		fmt.Printf("  outlines version %d, design size %d, %d characters\n",
			font.Version, font.DesignSize, font.NumCharacters())
		bbox := font.BBox.Rect16()
		fmt.Printf("  bounding box [%d %d %d %d]\n", bbox.LLx, bbox.LLy, bbox.URx, bbox.URy)
		if *charsArg {
			listCharacters(font, info)
		}
		if *pngArg != "" {
			err := writePNG(font, *codeArg, *pngArg)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// readFontFile reads the first of the given files which exists in dir.
// If none of the files exist, nil is returned.
func readFontFile(dir string, names ...string) ([]byte, error) {
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return data, err
	}
	return nil, nil
}

func loadMetrics(dir string) (*metrics.Info, error) {
	data, err := readFontFile(dir, "IntMetrics", "IntMetrics0")
	if data == nil || err != nil {
		return nil, err
	}
	return metrics.Read(data)
}

func loadOutlines(dir string) (*outlines.Font, error) {
	data, err := readFontFile(dir, "Outlines", "Outlines0")
	if data == nil || err != nil {
		return nil, err
	}
	return outlines.Read(data)
}

func listCharacters(font *outlines.Font, info *metrics.Info) {
	var widths []float64
	if info != nil {
		widths = info.Widths()
	}

	var cells []string
	for code := range 32 * len(font.Chunks) {
		c := font.Character(code)
		if c == nil {
			continue
		}
		kind := "outline"
		if _, ok := c.Data.(*outlines.Composite); ok {
			kind = "composite"
		}
		cell := fmt.Sprintf("%s %s", charName(code), kind)
		if widths != nil {
			if idx, ok := info.CharIndex(code); ok && idx < len(widths) {
				cell += fmt.Sprintf(" %.3f", widths[idx])
			}
		}
		cells = append(cells, cell)
	}

	columns := 1
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil {
			columns = max(width/28, 1)
		}
	}
	for i := 0; i < len(cells); i += columns {
		row := cells[i:min(i+columns, len(cells))]
		for j, cell := range row {
			row[j] = fmt.Sprintf("%-26s", cell)
		}
		fmt.Println("  " + strings.TrimRight(strings.Join(row, "  "), " "))
	}
}

func charName(code int) string {
	if code > 32 && code < 127 {
		return fmt.Sprintf("%q", rune(code))
	}
	return fmt.Sprintf("%d", code)
}

func writePNG(font *outlines.Font, code int, fname string) error {
	r := &render.Renderer{Font: font, PixelsPerEm: *sizeArg}
	img, err := r.Glyph(code)
	if err != nil {
		return err
	}

	out, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(out, img)
	if err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
