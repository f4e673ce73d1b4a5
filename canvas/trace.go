package canvas

import "github.com/recopt/recopt/record"

// Event is one recorded Canvas call.
type Event struct {
	Op         string
	Bounds     *record.Rect
	Paint      *record.Paint
	Rect       record.Rect
	ClipOp     record.ClipOp
	AntiAlias  bool
	Matrix     record.Mat4
	Name       string
	Key        string
	Picture    *record.Stream
}

// Trace is a Canvas that records every call as an Event instead of
// painting pixels. Two traces produced from rendering the same program
// through different optimizer configurations are expected to be equal
// whenever the configurations are pixel-equivalent — this is the
// replay-trace-equivalence property this module tests against, standing
// in for the out-of-scope pixel-equivalence property.
type Trace struct {
	Events []Event
}

func NewTrace() *Trace { return &Trace{} }

func (t *Trace) Save() {
	t.Events = append(t.Events, Event{Op: "save"})
}

func (t *Trace) SaveLayer(bounds *record.Rect, paint *record.Paint) {
	t.Events = append(t.Events, Event{Op: "saveLayer", Bounds: bounds, Paint: paint})
}

func (t *Trace) Restore() {
	t.Events = append(t.Events, Event{Op: "restore"})
}

func (t *Trace) ClipRect(rect record.Rect, op record.ClipOp, antiAlias bool) {
	t.Events = append(t.Events, Event{Op: "clipRect", Rect: rect, ClipOp: op, AntiAlias: antiAlias})
}

func (t *Trace) Concat(m record.Mat4) {
	t.Events = append(t.Events, Event{Op: "concat", Matrix: m})
}

func (t *Trace) Draw(name string, paint *record.Paint) {
	t.Events = append(t.Events, Event{Op: "draw", Name: name, Paint: paint})
}

func (t *Trace) DrawAnnotation(rect record.Rect, key string) {
	t.Events = append(t.Events, Event{Op: "drawAnnotation", Rect: rect, Key: key})
}

func (t *Trace) DrawPicture(picture *record.Stream) {
	t.Events = append(t.Events, Event{Op: "drawPicture", Picture: picture})
}

var _ Canvas = (*Trace)(nil)
