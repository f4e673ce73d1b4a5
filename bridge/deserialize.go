package bridge

import (
	"fmt"
	"strings"

	"github.com/recopt/recopt/record"
)

// Deserialize rebuilds a record.Stream from a WireRecord, the inverse of
// Serialize. It is used to check the wire round-trip property: for any
// stream built from the recognized variants, Deserialize(Serialize(s))
// reproduces a stream whose replay behaves like s's. The one exception is
// DrawPicture: its nested picture is not serialized, so it comes back as
// an empty stream.
func Deserialize(wr *WireRecord) (*record.Stream, error) {
	cmds := make([]record.Command, len(wr.Entries))
	for i, e := range wr.Entries {
		cmd, err := deserializeEntry(e)
		if err != nil {
			return nil, fmt.Errorf("bridge: entry %d: %w", i, err)
		}
		cmds[i] = cmd
	}
	return record.NewStream(cmds...), nil
}

func deserializeEntry(e WireEntry) (record.Command, error) {
	switch e.Name {
	case "noop":
		return &record.NoOp{}, nil
	case "save":
		return &record.Save{}, nil
	case "restore":
		return &record.Restore{}, nil
	case "saveLayer":
		return &record.SaveLayer{
			Bounds:   recordRect(e.Bounds),
			Paint:    recordPaint(e.Paint),
			Backdrop: e.Backdrop,
		}, nil
	case "clipRect":
		if e.Rect == nil {
			return nil, fmt.Errorf("clipRect entry missing rect")
		}
		return &record.ClipRect{
			Rect:      *recordRect(e.Rect),
			Op:        recordClipOp(e.ClipOp),
			AntiAlias: e.AntiAlias,
		}, nil
	case "concat44":
		var m record.Mat4
		copy(m[:], e.Matrix44)
		return &record.Concat44{M: m}, nil
	case "setMatrix":
		return &record.SetMatrix{M: narrow4x4(e.Matrix44)}, nil
	case "drawPicture":
		return &record.DrawPicture{Picture: record.NewStream()}, nil
	default:
		if key, ok := strings.CutPrefix(e.Name, "drawAnnotation:"); ok {
			rect := record.Rect{}
			if e.Rect != nil {
				rect = *recordRect(e.Rect)
			}
			return &record.DrawAnnotation{Rect: rect, Key: key}, nil
		}
		return &record.Draw{Name: e.Name, Paint: recordPaint(e.Paint)}, nil
	}
}

func recordRect(r *WireRect) *record.Rect {
	if r == nil {
		return nil
	}
	return &record.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
}

func recordClipOp(op WireClipOp) record.ClipOp {
	if op == WireClipDifference {
		return record.ClipDifference
	}
	// WireClipUnknown is silently mapped to intersect, same as the replay
	// side: an unrecognized clip op must not be undefined behavior.
	return record.ClipIntersect
}

func recordBlendMode(b WireBlendMode) record.BlendMode {
	switch b {
	case WireBlendSrc:
		return record.BlendSrc
	case WireBlendSrcOver:
		return record.BlendSrcOver
	default:
		return record.BlendOther
	}
}

func recordPaint(p *WirePaint) *record.Paint {
	if p == nil {
		return nil
	}
	return &record.Paint{
		Color:          record.RGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: p.Color.A},
		Blend:          recordBlendMode(p.Blend),
		HasShader:      p.HasShader,
		HasColorFilter: p.HasColorFilter,
		HasImageFilter: p.HasImageFilter,
		HasMaskFilter:  p.HasMaskFilter,
		HasPathEffect:  p.HasPathEffect,
	}
}

// narrow4x4 inverts widen3x3: it extracts the 3x3 affine embedded in a
// column-major 4x4 matrix's top-left block and translation column.
func narrow4x4(m []float64) record.Matrix {
	if len(m) < 16 {
		return record.Identity3()
	}
	return record.Matrix{
		m[0], m[4], m[12],
		m[1], m[5], m[13],
		m[2], m[6], m[14],
	}
}
