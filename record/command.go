// Package record provides the typed instruction stream that the optimize
// and bridge packages rewrite.
//
// Commands capture a recorded drawing program as a linear, indexed sequence
// of tagged variants: state commands (Save, SaveLayer, Restore, ClipRect,
// SetMatrix, Concat44), draws, and the NoOp filler left behind by a rewrite.
//
// Design follows the same typed-command-struct approach used elsewhere in
// this codebase for inspectability: one struct per variant, one Kind tag,
// and a total visitor dispatch rather than a binary opcode stream.
package record

// CommandKind identifies the variant of a Command.
type CommandKind uint8

const (
	KindNoOp           CommandKind = iota // filler left by a rewrite; removed by Defrag
	KindSave                              // save the graphics state
	KindSaveLayer                         // save state and redirect drawing to an offscreen layer
	KindRestore                           // restore the most recently saved state
	KindClipRect                          // intersect or subtract a rectangle from the clip
	KindSetMatrix                         // replace the current transform
	KindConcat44                          // concatenate a 4x4 transform
	KindDrawAnnotation                    // an inert marker carrying a key, no pixels
	KindDrawPicture                       // draw a nested, recursively traversable picture
	KindDraw                              // any paint-carrying draw primitive
)

var commandKindNames = [...]string{
	KindNoOp:           "NoOp",
	KindSave:           "Save",
	KindSaveLayer:      "SaveLayer",
	KindRestore:        "Restore",
	KindClipRect:       "ClipRect",
	KindSetMatrix:      "SetMatrix",
	KindConcat44:       "Concat44",
	KindDrawAnnotation: "DrawAnnotation",
	KindDrawPicture:    "DrawPicture",
	KindDraw:           "Draw",
}

func (k CommandKind) String() string {
	if int(k) < len(commandKindNames) {
		return commandKindNames[k]
	}
	return "Unknown"
}

// Command is implemented by every variant storable in a Stream.
// Implementations use pointer receivers so that Stream.Mutate can hand
// callers a live reference to the matched slot.
type Command interface {
	Kind() CommandKind
}

// IsDraw reports whether cmd is a paint-carrying draw: either the generic
// Draw variant or DrawPicture/DrawAnnotation, which the pattern DSL treats
// as draws for matching purposes.
func IsDraw(cmd Command) bool {
	switch cmd.(type) {
	case *Draw, *DrawPicture, *DrawAnnotation:
		return true
	default:
		return false
	}
}

// NoOp has no observable effect. Replacing any command with NoOp is legal
// exactly when the original command has no observable effect in its
// surrounding context; that judgement is the peephole passes' job, not
// NoOp's.
type NoOp struct{}

func (*NoOp) Kind() CommandKind { return KindNoOp }

// Save pushes the current graphics state.
type Save struct{}

func (*Save) Kind() CommandKind { return KindSave }

// SaveLayer pushes the current graphics state and redirects subsequent
// drawing into an offscreen layer, composited back with Paint at the
// matching Restore.
type SaveLayer struct {
	Bounds   *Rect  // nil means "unbounded"
	Paint    *Paint // nil means "no paint" (layer composites with defaults)
	Backdrop bool   // true if a backdrop filter is attached
}

func (*SaveLayer) Kind() CommandKind { return KindSaveLayer }

// Restore pops the most recently pushed graphics state.
type Restore struct{}

func (*Restore) Kind() CommandKind { return KindRestore }

// ClipOp is a clip combining operator.
type ClipOp uint8

const (
	ClipIntersect ClipOp = iota
	ClipDifference
)

func (op ClipOp) String() string {
	if op == ClipDifference {
		return "difference"
	}
	return "intersect"
}

// ClipRect intersects or subtracts a rectangle from the current clip.
type ClipRect struct {
	Rect      Rect
	Op        ClipOp
	AntiAlias bool
}

func (*ClipRect) Kind() CommandKind { return KindClipRect }

// SetMatrix replaces the current transform wholesale.
type SetMatrix struct {
	M Matrix
}

func (*SetMatrix) Kind() CommandKind { return KindSetMatrix }

// Concat44 concatenates a column-major 4x4 transform onto the current one.
type Concat44 struct {
	M Mat4
}

func (*Concat44) Kind() CommandKind { return KindConcat44 }

// DrawAnnotation is an inert marker (used by tooling to tag regions of a
// picture); it paints nothing but is not safe to treat as pure filler,
// since passes must not assume annotations commute with arbitrary rewrites.
type DrawAnnotation struct {
	Rect Rect
	Key  string
}

func (*DrawAnnotation) Kind() CommandKind { return KindDrawAnnotation }

// DrawPicture draws a nested picture. The nested Stream is opaque to the
// peephole passes but may be walked recursively by callers that need to.
type DrawPicture struct {
	Picture *Stream
}

func (*DrawPicture) Kind() CommandKind { return KindDrawPicture }

// Draw is the generic paint-carrying draw primitive. Name identifies the
// specific draw operation (e.g. "drawRect", "drawPath", "drawText") for
// serialization and logging; the optimizer treats every Draw uniformly
// regardless of Name.
type Draw struct {
	Name  string
	Paint *Paint // nil means "default paint" (opaque black, source-over)
}

func (*Draw) Kind() CommandKind { return KindDraw }

// Rect is an axis-aligned rectangle in left/top/right/bottom order.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// Matrix is a row-major 3x3 transform: [a b c; d e f; g h i].
type Matrix [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix {
	return Matrix{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat4 is a column-major 4x4 transform, 16 scalars.
type Mat4 [16]float64

// Identity4 returns the column-major 4x4 identity matrix.
func Identity4() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}
