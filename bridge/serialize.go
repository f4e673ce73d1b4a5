package bridge

import (
	"fmt"

	"github.com/recopt/recopt/record"
)

// Serialize walks s in order and builds its WireRecord, one WireEntry per
// command with a monotonically increasing Index.
func Serialize(s *record.Stream) *WireRecord {
	b := &serializeVisitor{wire: &WireRecord{Entries: make([]WireEntry, 0, s.Count())}}
	s.VisitAll(b)
	return b.wire
}

// serializeVisitor implements record.Visitor, appending one WireEntry per
// visited command. It mirrors the original SkiPassRecordBuilder: a generic
// case for opaque draws, and named cases for every command the rewriter
// needs structured access to.
type serializeVisitor struct {
	record.BaseVisitor
	wire  *WireRecord
	index int
}

func (b *serializeVisitor) append(e WireEntry) {
	e.Index = b.index
	b.wire.Entries = append(b.wire.Entries, e)
	b.index++
}

func (b *serializeVisitor) VisitNoOp(*record.NoOp) {
	b.append(WireEntry{Name: "noop"})
}

func (b *serializeVisitor) VisitSave(*record.Save) {
	b.append(WireEntry{Name: "save"})
}

func (b *serializeVisitor) VisitSaveLayer(c *record.SaveLayer) {
	e := WireEntry{Name: "saveLayer", Backdrop: c.Backdrop, Paint: wirePaint(c.Paint)}
	if c.Bounds != nil {
		e.Bounds = wireRect(c.Bounds)
	}
	b.append(e)
}

func (b *serializeVisitor) VisitRestore(*record.Restore) {
	b.append(WireEntry{Name: "restore"})
}

func (b *serializeVisitor) VisitClipRect(c *record.ClipRect) {
	b.append(WireEntry{
		Name:      "clipRect",
		Rect:      wireRect(&c.Rect),
		ClipOp:    wireClipOp(c.Op),
		AntiAlias: c.AntiAlias,
	})
}

func (b *serializeVisitor) VisitSetMatrix(c *record.SetMatrix) {
	// SetMatrix carries a 3x3 transform; the wire format only needs a
	// Concat44-shaped payload for the rewriter's matrix ops, so widen it.
	b.append(WireEntry{Name: "setMatrix", Matrix44: widen3x3(c.M)})
}

func (b *serializeVisitor) VisitConcat44(c *record.Concat44) {
	m := make([]float64, 16)
	copy(m, c.M[:])
	b.append(WireEntry{Name: "concat44", Matrix44: m})
}

func (b *serializeVisitor) VisitDrawAnnotation(c *record.DrawAnnotation) {
	b.append(WireEntry{Name: fmt.Sprintf("drawAnnotation:%s", c.Key), Rect: wireRect(&c.Rect)})
}

func (b *serializeVisitor) VisitDrawPicture(*record.DrawPicture) {
	b.append(WireEntry{Name: "drawPicture"})
}

func (b *serializeVisitor) VisitDraw(c *record.Draw) {
	b.append(WireEntry{Name: c.Name, Paint: wirePaint(c.Paint)})
}

func wireRect(r *record.Rect) *WireRect {
	return &WireRect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
}

func wireClipOp(op record.ClipOp) WireClipOp {
	switch op {
	case record.ClipIntersect:
		return WireClipIntersect
	case record.ClipDifference:
		return WireClipDifference
	default:
		return WireClipUnknown
	}
}

func wireBlendMode(b record.BlendMode) WireBlendMode {
	switch b {
	case record.BlendSrcOver:
		return WireBlendSrcOver
	case record.BlendSrc:
		return WireBlendSrc
	default:
		return WireBlendUnknown
	}
}

func wirePaint(p *record.Paint) *WirePaint {
	if p == nil {
		return nil
	}
	return &WirePaint{
		Color:          WireColor{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: p.Color.A},
		Blend:          wireBlendMode(p.Blend),
		HasShader:      p.HasShader,
		HasColorFilter: p.HasColorFilter,
		HasImageFilter: p.HasImageFilter,
		HasMaskFilter:  p.HasMaskFilter,
		HasPathEffect:  p.HasPathEffect,
	}
}

func widen3x3(m record.Matrix) []float64 {
	// Embed the 3x3 affine into the top-left of a 4x4 column-major
	// identity, matching how the rewriter represents every matrix op as a
	// Concat44-shaped value.
	out := []float64{
		m[0], m[3], m[6], 0,
		m[1], m[4], m[7], 0,
		0, 0, 1, 0,
		m[2], m[5], m[8], 1,
	}
	return out
}
