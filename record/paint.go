package record

// RGBA is an 8-bit-per-channel color.
type RGBA struct {
	R, G, B, A uint8
}

// WithAlpha returns c with its alpha channel replaced.
func (c RGBA) WithAlpha(a uint8) RGBA {
	c.A = a
	return c
}

// AlphaOnly reports whether c carries no color information beyond alpha,
// i.e. its RGB channels (alpha stripped) equal fully transparent black.
// This is the gate the SaveLayer fold uses to decide whether a layer's
// paint can be pushed entirely into a draw's alpha.
func (c RGBA) AlphaOnly() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// BlendMode is a Porter-Duff (or other) compositing mode. Only SrcOver and
// Src are given rewrite-relevant semantics; every other mode is opaque and
// treated conservatively.
type BlendMode uint8

const (
	BlendSrcOver BlendMode = iota // standard alpha compositing
	BlendSrc                      // replace destination outright
	BlendDstIn                    // keep destination where source is opaque
	BlendOther                    // any mode without rewrite-relevant semantics
)

func (b BlendMode) String() string {
	switch b {
	case BlendSrcOver:
		return "srcOver"
	case BlendSrc:
		return "src"
	case BlendDstIn:
		return "dstIn"
	default:
		return "other"
	}
}

// Paint is the bag of attributes attached to a draw or a SaveLayer. Effect
// slots (Shader, ColorFilter, ImageFilter, MaskFilter, PathEffect) track
// presence only — the optimizer never inspects effect values, only whether
// one is attached, since every rewrite predicate that consults them reads
// presence alone.
type Paint struct {
	Color RGBA
	Blend BlendMode

	HasShader      bool
	HasColorFilter bool
	HasImageFilter bool
	HasMaskFilter  bool
	HasPathEffect  bool
}

// IsSrcOver reports whether p composites with standard source-over
// semantics. A nil receiver stands for the default paint (opaque black,
// source-over) and reports true.
func (p *Paint) IsSrcOver() bool {
	return p == nil || p.Blend == BlendSrcOver
}

// EffectivelySrcOver reports whether p behaves identically to a bare
// source-over draw with no attached effects: either p is absent, p is
// already source-over, or p uses Src mode but is fully opaque with no
// shader, color filter, or image filter — in which case Src and SrcOver
// are indistinguishable.
func EffectivelySrcOver(p *Paint) bool {
	if p == nil {
		return true
	}
	if p.Blend == BlendSrcOver {
		return true
	}
	if p.Blend == BlendSrc &&
		!p.HasShader && !p.HasColorFilter && !p.HasImageFilter &&
		p.Color.A == 255 {
		return true
	}
	return false
}

// AlphaOnlyLayerPaint reports whether p is a legal "alpha-only" SaveLayer
// paint: source-over, no attached effects, and a color whose RGB channels
// carry no information (alpha stripped, the color is fully transparent).
// This is the predicate that gates whether a layer's opacity can be folded
// into a single bracketed draw.
func AlphaOnlyLayerPaint(p *Paint) bool {
	if p == nil {
		return true
	}
	if p.Blend != BlendSrcOver {
		return false
	}
	if p.HasPathEffect || p.HasShader || p.HasMaskFilter || p.HasColorFilter || p.HasImageFilter {
		return false
	}
	return p.Color.AlphaOnly()
}

// MulDiv255Round computes round(a*b/255), the exact fixed-point rounding
// rule used to fold one 8-bit alpha into another.
func MulDiv255Round(a, b uint8) uint8 {
	prod := int(a)*int(b) + 127
	return uint8(prod / 255)
}
