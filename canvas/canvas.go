// Package canvas specifies the external rendering collaborator's contract.
// Rasterization itself is out of scope for this module — Canvas is the
// sink every replay (optimized or not) writes into, and the only
// implementation this package provides, Trace, records calls instead of
// painting pixels, which is what lets tests assert replay-trace
// equivalence instead of pixel equivalence.
package canvas

import "github.com/recopt/recopt/record"

// Canvas is the abstract sink that a record.Stream (optimized or not) is
// replayed onto. A real implementation lives outside this module's scope;
// Trace is this package's only implementation, for testing.
type Canvas interface {
	Save()
	SaveLayer(bounds *record.Rect, paint *record.Paint)
	Restore()
	ClipRect(rect record.Rect, op record.ClipOp, antiAlias bool)
	Concat(m record.Mat4)
	Draw(name string, paint *record.Paint)
	DrawAnnotation(rect record.Rect, key string)
	DrawPicture(picture *record.Stream)
}

// PictureSource produces a record.Stream from a persisted picture file.
// Decoding the on-disk picture format is out of scope; this interface is
// the contract callers program against.
type PictureSource interface {
	Load(path string) (*record.Stream, error)
}
