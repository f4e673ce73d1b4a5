// Package optimize implements the peephole rewrite passes and the two
// optimizer drivers (V1, V2) that compose them. Each pass pairs a
// pattern.Matcher with a semantic side-condition and a rewrite action; the
// passes and their ordering follow the structure of the original
// SkRecordOpts.cpp peephole optimizer, renamed to match this package's
// vocabulary.
package optimize

import (
	"github.com/recopt/recopt/pattern"
	"github.com/recopt/recopt/record"
)

// CollapseSetMatrix kills a SetMatrix that is immediately overwritten by
// another SetMatrix with nothing but NoOp filler between them — the first
// is never observed. Intended to be run to fixpoint.
var CollapseSetMatrix = pattern.PassFunc{
	Match: pattern.Seq(
		pattern.Is[*record.SetMatrix](),
		pattern.Greedy(pattern.Is[*record.NoOp]()),
		pattern.Is[*record.SetMatrix](),
	),
	Rewrite: func(s *record.Stream, caps pattern.Captures, begin, end int) bool {
		s.Noop(begin)
		return true
	},
}

// onlyDrawsNooper kills a Save/Restore bracket whose scope contains only
// NoOp and draws: nothing in the scope is restorable, so the bracket has
// no observable effect.
var onlyDrawsNooper = pattern.PassFunc{
	Match: pattern.Seq(
		pattern.Is[*record.Save](),
		pattern.Greedy(pattern.Or(pattern.Is[*record.NoOp](), pattern.IsDraw())),
		pattern.Is[*record.Restore](),
	),
	Rewrite: func(s *record.Stream, caps pattern.Captures, begin, end int) bool {
		s.Noop(begin)
		s.Noop(end - 1)
		return true
	},
}

// noDrawsNooper kills an entire Save...Restore span whose scope contains
// no saves, saveLayers, restores, or draws: nothing inside could have had
// an observable effect, since every state change it makes is discarded at
// the matching Restore.
var noDrawsNooper = pattern.PassFunc{
	Match: pattern.Seq(
		pattern.Is[*record.Save](),
		pattern.Greedy(pattern.Not(pattern.Or(
			pattern.Is[*record.Save](),
			pattern.Is[*record.SaveLayer](),
			pattern.Is[*record.Restore](),
			pattern.IsDraw(),
		))),
		pattern.Is[*record.Restore](),
	),
	Rewrite: func(s *record.Stream, caps pattern.Captures, begin, end int) bool {
		for i := begin; i < end; i++ {
			s.Noop(i)
		}
		return true
	},
}

// NoopSaveRestore composes onlyDrawsNooper and noDrawsNooper, looping until
// neither reports a change. Each pass can open up opportunities for the
// other (a span that becomes draws-only after an inner span is nooped).
func NoopSaveRestore(s *record.Stream) {
	for {
		a := pattern.Apply(onlyDrawsNooper, s)
		b := pattern.Apply(noDrawsNooper, s)
		if !a && !b {
			return
		}
	}
}

// foldOpacityIntoPaint folds layerPaint's alpha into paint's alpha,
// returning false if any side-condition refuses the fold.
//
// isSaveLayer indicates whether paint is itself a SaveLayer's paint (true,
// used by MergeSVGOpacityFilter for the inner SaveLayer) or belongs to the
// single draw a SaveLayer brackets (false, used by FoldSaveLayerDraw) — a paint that
// isn't itself a SaveLayer's paint must not have an image filter, since
// the filter needs the layer's actual offscreen content as input and
// folding would remove the layer that produces it.
func foldOpacityIntoPaint(layerPaint *record.Paint, isSaveLayer bool, paint *record.Paint) bool {
	if !paint.IsSrcOver() {
		return false
	}
	if !isSaveLayer && paint != nil && paint.HasImageFilter {
		return false
	}
	if paint != nil && paint.HasColorFilter {
		return false
	}
	if !record.AlphaOnlyLayerPaint(layerPaint) {
		return false
	}
	if paint == nil {
		return false
	}
	layerAlpha := uint8(255)
	if layerPaint != nil {
		layerAlpha = layerPaint.Color.A
	}
	paint.Color.A = record.MulDiv255Round(paint.Color.A, layerAlpha)
	return true
}

// killSaveLayerAndRestore replaces the SaveLayer at saveLayerIdx and the
// Restore at restoreIdx with NoOp.
func killSaveLayerAndRestore(s *record.Stream, saveLayerIdx, restoreIdx int) {
	s.Noop(saveLayerIdx)
	s.Noop(restoreIdx)
}

// FoldSaveLayerDraw matches SaveLayer · draw · Restore and either kills an
// inert layer outright or folds its opacity into the bracketed draw.
var FoldSaveLayerDraw = pattern.PassFunc{
	Match: pattern.Seq(
		pattern.Is[*record.SaveLayer](),
		pattern.IsDraw(),
		pattern.Is[*record.Restore](),
	),
	Rewrite: func(s *record.Stream, caps pattern.Captures, begin, end int) bool {
		layer := pattern.At[*record.SaveLayer](caps, 0)
		if layer.Backdrop {
			return false
		}
		drawCmd := s.At(begin + 1)
		drawPaint := drawPaintOf(drawCmd)

		if layer.Paint == nil && record.EffectivelySrcOver(drawPaint) {
			killSaveLayerAndRestore(s, begin, end-1)
			return true
		}
		if drawPaint == nil {
			return false
		}
		if !foldOpacityIntoPaint(layer.Paint, false, drawPaint) {
			return false
		}
		killSaveLayerAndRestore(s, begin, end-1)
		return true
	},
}

// drawPaintOf extracts the Paint carried by a draw-kind command, or nil if
// the command carries none.
func drawPaintOf(c record.Command) *record.Paint {
	switch d := c.(type) {
	case *record.Draw:
		return d.Paint
	default:
		return nil
	}
}

// MergeSVGOpacityFilter matches the shape SVG opacity+filter groups
// produce: SaveLayer · Save · ClipRect · SaveLayer · Restore · Restore ·
// Restore. The outer SaveLayer (the opacity group) is folded into the
// inner SaveLayer (the filter group) when possible, or killed outright
// when it carries no paint.
var MergeSVGOpacityFilter = pattern.PassFunc{
	Match: pattern.Seq(
		pattern.Is[*record.SaveLayer](),
		pattern.Is[*record.Save](),
		pattern.Is[*record.ClipRect](),
		pattern.Is[*record.SaveLayer](),
		pattern.Is[*record.Restore](),
		pattern.Is[*record.Restore](),
		pattern.Is[*record.Restore](),
	),
	Rewrite: func(s *record.Stream, caps pattern.Captures, begin, end int) bool {
		outer := pattern.At[*record.SaveLayer](caps, 0)
		inner := pattern.At[*record.SaveLayer](caps, 3)
		outermostRestore := end - 1

		if outer.Backdrop {
			return false
		}
		if outer.Paint == nil {
			killSaveLayerAndRestore(s, begin, outermostRestore)
			return true
		}
		if inner.Paint == nil {
			return false
		}
		if !foldOpacityIntoPaint(outer.Paint, true, inner.Paint) {
			return false
		}
		killSaveLayerAndRestore(s, begin, outermostRestore)
		return true
	},
}
