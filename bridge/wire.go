// Package bridge implements the external-rewriter boundary: serializing a
// record.Stream to a wire format, invoking a pluggable Rewriter, and
// replaying the returned Program onto a canvas.Canvas while mutating the
// underlying stream's paints to match.
//
// The wire format is CBOR rather than the original protobuf-based
// encoding: CBOR needs no code-generation step, while its tagged,
// self-describing maps preserve the same "schema'd, length-prefixed
// structured message" shape the original wire contract specified.
package bridge

// WireRecord is the serialized form of a record.Stream sent to a Rewriter.
type WireRecord struct {
	Entries []WireEntry `cbor:"entries"`
}

// WireEntry is one serialized command. Index is the command's 0-based
// position in the source stream. Name identifies opaque draws and is the
// variant tag for recognized commands ("noop", "save", "saveLayer",
// "restore", "clipRect", "setMatrix", "concat44", "drawPicture",
// "drawAnnotation:<key>", or the Draw's own Name).
type WireEntry struct {
	Index int    `cbor:"index"`
	Name  string `cbor:"name"`

	Paint *WirePaint `cbor:"paint,omitempty"`

	// SaveLayer fields.
	Bounds   *WireRect `cbor:"bounds,omitempty"`
	Backdrop bool      `cbor:"backdrop,omitempty"`

	// ClipRect fields.
	Rect      *WireRect   `cbor:"rect,omitempty"`
	ClipOp    WireClipOp  `cbor:"clipOp,omitempty"`
	AntiAlias bool        `cbor:"antiAlias,omitempty"`

	// Concat44 field: 16 column-major scalars.
	Matrix44 []float64 `cbor:"matrix44,omitempty"`
}

// WireRect is an LTRB float rectangle.
type WireRect struct {
	Left, Top, Right, Bottom float32
}

// WireClipOp mirrors record.ClipOp with an explicit "unknown" case: a
// rewriter that returns unknown is telling the replay side to fall back to
// intersect rather than asserting.
type WireClipOp uint8

const (
	WireClipIntersect  WireClipOp = iota
	WireClipDifference
	WireClipUnknown
)

// WireBlendMode mirrors record.BlendMode for the wire, again with an
// explicit unknown case.
type WireBlendMode uint8

const (
	WireBlendSrcOver WireBlendMode = iota
	WireBlendSrc
	WireBlendUnknown
)

// WirePaint is the presence-only paint snapshot: color and blend mode by
// value, effect slots by presence bit only. The implementation must never
// grow a dependency on effect values — every rewrite-relevant predicate
// reads presence alone.
type WirePaint struct {
	Color WireColor     `cbor:"color"`
	Blend WireBlendMode `cbor:"blend"`

	HasShader      bool `cbor:"hasShader,omitempty"`
	HasColorFilter bool `cbor:"hasColorFilter,omitempty"`
	HasImageFilter bool `cbor:"hasImageFilter,omitempty"`
	HasMaskFilter  bool `cbor:"hasMaskFilter,omitempty"`
	HasPathEffect  bool `cbor:"hasPathEffect,omitempty"`
}

// WireColor is an 8-bit-per-channel RGBA color.
type WireColor struct {
	R, G, B, A uint8
}

// WireProgram is what a Rewriter returns: either a successful instruction
// list or a failure naming the draw commands it could not handle.
type WireProgram struct {
	Status      WireStatus          `cbor:"status"`
	Instructions []WireInstruction  `cbor:"instructions,omitempty"`
	Unsupported  []string           `cbor:"unsupported,omitempty"`
}

// WireStatus is the Rewriter's overall verdict.
type WireStatus uint8

const (
	StatusOK WireStatus = iota
	StatusFailed
)

// WireInstructionKind identifies the variant of a WireInstruction.
type WireInstructionKind uint8

const (
	InstrCopyRecord WireInstructionKind = iota
	InstrSave
	InstrSaveLayer
	InstrRestore
	InstrClipRect
	InstrConcat44
)

// WireInstruction is one step of a Program returned by a Rewriter. Which
// fields are meaningful depends on Kind.
type WireInstruction struct {
	Kind WireInstructionKind `cbor:"kind"`

	// InstrCopyRecord: replay the stream's original command at Index,
	// overriding its paint alpha with Paint.Color.A when that alpha != 255.
	Index int        `cbor:"index,omitempty"`
	Paint *WirePaint `cbor:"paint,omitempty"`

	// InstrSaveLayer.
	Bounds *WireRect `cbor:"bounds,omitempty"`

	// InstrClipRect.
	Rect      *WireRect  `cbor:"rect,omitempty"`
	ClipOp    WireClipOp `cbor:"clipOp,omitempty"`
	AntiAlias bool       `cbor:"antiAlias,omitempty"`

	// InstrConcat44: 16 column-major scalars.
	Matrix44 []float64 `cbor:"matrix44,omitempty"`
}
