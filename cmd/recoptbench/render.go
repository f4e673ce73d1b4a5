package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/recopt/recopt/record"
)

// renderPlaceholder writes a PNG standing in for a real rasterization of
// s. Pixel rasterization is out of this module's scope (the canvas
// rendering backend is an external collaborator); this produces a
// deterministic placeholder sized from the first bounded SaveLayer or
// ClipRect in the stream, so NO_OPT and external mode runs at least
// produce a file of the expected dimensions for the benchmark's output
// contract.
func renderPlaceholder(path string, s *record.Stream) error {
	w, h := placeholderBounds(s)
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	fillSolid(src, color.RGBA{R: 32, G: 32, B: 32, A: 255})

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("recoptbench: create %q: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, dst); err != nil {
		return fmt.Errorf("recoptbench: encode %q: %w", path, err)
	}
	return nil
}

func fillSolid(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func placeholderBounds(s *record.Stream) (int, int) {
	for i := 0; i < s.Count(); i++ {
		switch c := s.At(i).(type) {
		case *record.SaveLayer:
			if c.Bounds != nil {
				return boundsSize(*c.Bounds)
			}
		case *record.ClipRect:
			return boundsSize(c.Rect)
		}
	}
	return 256, 256
}

func boundsSize(r record.Rect) (int, int) {
	w := int(r.Right - r.Left)
	h := int(r.Bottom - r.Top)
	if w <= 0 {
		w = 256
	}
	if h <= 0 {
		h = 256
	}
	return w, h
}
