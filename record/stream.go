package record

import "fmt"

// InvariantError reports a violation of a Stream invariant — an unbalanced
// save/restore nest or an unrecognized variant encountered where total
// dispatch was required. These are programmer/data errors, not recoverable
// rewrite refusals, and callers are expected to treat them as fatal.
type InvariantError struct {
	Index int
	Msg   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("record: invariant violated at index %d: %s", e.Index, e.Msg)
}

// Stream is an indexed, mutable sequence of Commands. Indices are stable
// under Replace and Mutate — the slot stays, only its contents or tag
// changes — and are only renumbered by Defrag, which is expected to run
// exactly once at the end of a full optimization pass.
type Stream struct {
	cmds []Command
}

// NewStream builds a Stream from an ordered list of commands.
func NewStream(cmds ...Command) *Stream {
	s := &Stream{cmds: make([]Command, len(cmds))}
	copy(s.cmds, cmds)
	return s
}

// Count returns the number of commands, including NoOp filler.
func (s *Stream) Count() int { return len(s.cmds) }

// At returns the command at index i without copying it out of the slot;
// callers that need to mutate it should use Mutate instead.
func (s *Stream) At(i int) Command { return s.cmds[i] }

// Visit dispatches the command at index i to the matching method of v.
// Dispatch is total: every CommandKind has a corresponding Visitor method.
func (s *Stream) Visit(i int, v Visitor) {
	switch c := s.cmds[i].(type) {
	case *NoOp:
		v.VisitNoOp(c)
	case *Save:
		v.VisitSave(c)
	case *SaveLayer:
		v.VisitSaveLayer(c)
	case *Restore:
		v.VisitRestore(c)
	case *ClipRect:
		v.VisitClipRect(c)
	case *SetMatrix:
		v.VisitSetMatrix(c)
	case *Concat44:
		v.VisitConcat44(c)
	case *DrawAnnotation:
		v.VisitDrawAnnotation(c)
	case *DrawPicture:
		v.VisitDrawPicture(c)
	case *Draw:
		v.VisitDraw(c)
	default:
		panic(&InvariantError{Index: i, Msg: fmt.Sprintf("unrecognized command type %T", c)})
	}
}

// VisitAll walks every command in order, calling Visit at each index.
func (s *Stream) VisitAll(v Visitor) {
	for i := range s.cmds {
		s.Visit(i, v)
	}
}

// Replace swaps the command at index i in place. The slot's identity is
// preserved; only its contents change. The only variant the optimize
// package's passes ever replace with is NoOp, but the operation is not restricted
// to that case.
func (s *Stream) Replace(i int, cmd Command) {
	s.cmds[i] = cmd
}

// Noop replaces the command at index i with NoOp. It is a convenience
// wrapper around the idiom every peephole pass uses.
func (s *Stream) Noop(i int) {
	s.cmds[i] = &NoOp{}
}

// Mutate hands fn a live pointer to the command at index i, already
// narrowed to type T, and panics with an InvariantError if the command at
// that index is not a T. Because every Command implementation uses a
// pointer receiver, mutations fn makes through the pointer are visible
// immediately — there is no need to write the result back.
func Mutate[T Command](s *Stream, i int, fn func(T)) {
	c, ok := s.cmds[i].(T)
	if !ok {
		panic(&InvariantError{Index: i, Msg: fmt.Sprintf("mutate: expected %T, got %T", c, s.cmds[i])})
	}
	fn(c)
}

// Defrag compacts runs of NoOp out of the stream, preserving the relative
// order of every remaining command, and returns the compacted result as a
// new Stream. It is intended to run exactly once, at the end of a full
// optimization run; running it mid-pass would renumber indices out from
// under a pattern match in progress.
func (s *Stream) Defrag() *Stream {
	out := make([]Command, 0, len(s.cmds))
	for _, c := range s.cmds {
		if c.Kind() == KindNoOp {
			continue
		}
		out = append(out, c)
	}
	return &Stream{cmds: out}
}

// Clone returns a shallow copy of s: the command slice is new, but payload
// structs are shared. Passes that mutate payloads in place (e.g. folding
// alpha into a draw's Paint) should Clone before optimizing if the caller
// needs to keep the original stream intact.
func (s *Stream) Clone() *Stream {
	out := make([]Command, len(s.cmds))
	copy(out, s.cmds)
	return &Stream{cmds: out}
}

// Balance walks the stream and reports an InvariantError if non-NoOp
// Save/SaveLayer commands are not exactly balanced by Restore commands, or
// if a Restore appears with no matching Save/SaveLayer open.
func (s *Stream) Balance() error {
	depth := 0
	for i, c := range s.cmds {
		switch c.Kind() {
		case KindSave, KindSaveLayer:
			depth++
		case KindRestore:
			depth--
			if depth < 0 {
				return &InvariantError{Index: i, Msg: "restore with no matching save/saveLayer"}
			}
		}
	}
	if depth != 0 {
		return &InvariantError{Index: len(s.cmds) - 1, Msg: fmt.Sprintf("%d unmatched save/saveLayer", depth)}
	}
	return nil
}

// CountKind returns the number of non-NoOp commands of the given kind.
func (s *Stream) CountKind(k CommandKind) int {
	n := 0
	for _, c := range s.cmds {
		if c.Kind() == k {
			n++
		}
	}
	return n
}

// NonNoopCount returns the number of commands that are not NoOp.
func (s *Stream) NonNoopCount() int {
	n := 0
	for _, c := range s.cmds {
		if c.Kind() != KindNoOp {
			n++
		}
	}
	return n
}
