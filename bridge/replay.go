package bridge

import (
	"context"
	"fmt"

	"github.com/recopt/recopt/record"
)

// Canvas is the replay target for Optimize and Replay. It is defined here
// rather than imported from the canvas package so that canvas (which
// needs bridge's wire types for its picture format) does not import back
// into bridge; canvas.Canvas has the identical method set and satisfies
// this interface structurally.
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

// UnsupportedCommandsError reports that a Rewriter refused a record
// because it contained draw commands it does not support. Optimize
// returns this error as is (a *UnsupportedCommandsError); callers that
// want the raw name list can use errors.As.
type UnsupportedCommandsError struct {
	Names []string
}

func (e *UnsupportedCommandsError) Error() string {
	return fmt.Sprintf("bridge: rewriter reported %d unsupported command(s): %v", len(e.Names), e.Names)
}

// Optimize is the third, richer optimizer: it serializes s, sends it to
// rw, and replays the returned program onto c, mutating s's paints in
// place to match what was replayed. On failure (rw returns StatusFailed or
// errors) s is left unchanged and the failure is returned as an error —
// the caller is expected to fall back to the input record or another
// optimizer configuration.
func Optimize(ctx context.Context, rw Rewriter, s *record.Stream, c Canvas) error {
	wr := Serialize(s)
	prog, err := rw.Rewrite(ctx, wr)
	if err != nil {
		return fmt.Errorf("bridge: rewrite: %w", err)
	}
	if prog.Status == StatusFailed {
		return &UnsupportedCommandsError{Names: prog.Unsupported}
	}
	Replay(prog, s, c)
	return nil
}

// Replay issues one canvas operation per instruction in prog, in order.
// CopyRecord instructions mutate the matching command's paint in s (when
// the instruction carries a non-default alpha) before replaying it; every
// other instruction kind issues its canvas operation directly without
// consulting s.
func Replay(prog *WireProgram, s *record.Stream, c Canvas) {
	for _, instr := range prog.Instructions {
		switch instr.Kind {
		case InstrCopyRecord:
			replayCopyRecord(instr, s, c)
		case InstrSave:
			c.Save()
		case InstrSaveLayer:
			c.SaveLayer(recordRect(instr.Bounds), recordPaint(instr.Paint))
		case InstrRestore:
			c.Restore()
		case InstrClipRect:
			rect := record.Rect{}
			if instr.Rect != nil {
				rect = *recordRect(instr.Rect)
			}
			c.ClipRect(rect, recordClipOp(instr.ClipOp), instr.AntiAlias)
		case InstrConcat44:
			var m record.Mat4
			copy(m[:], instr.Matrix44)
			c.Concat(m)
		}
	}
}

func replayCopyRecord(instr WireInstruction, s *record.Stream, c Canvas) {
	if instr.Paint != nil && instr.Paint.Color.A != 255 {
		applyAlphaOverride(s, instr.Index, instr.Paint.Color.A)
	}
	cmd := s.At(instr.Index)
	replayCommand(cmd, c)
}

// applyAlphaOverride mutates the paint of the command at index in place so
// that replaying it (and any later re-serialization of s) reflects the
// rewriter's requested alpha.
func applyAlphaOverride(s *record.Stream, index int, alpha uint8) {
	switch c := s.At(index).(type) {
	case *record.Draw:
		if c.Paint == nil {
			c.Paint = &record.Paint{Color: record.RGBA{A: 255}}
		}
		c.Paint.Color.A = alpha
	case *record.SaveLayer:
		if c.Paint == nil {
			c.Paint = &record.Paint{Color: record.RGBA{A: 255}}
		}
		c.Paint.Color.A = alpha
	}
}

func replayCommand(cmd record.Command, c Canvas) {
	switch cc := cmd.(type) {
	case *record.Save:
		c.Save()
	case *record.SaveLayer:
		c.SaveLayer(cc.Bounds, cc.Paint)
	case *record.Restore:
		c.Restore()
	case *record.ClipRect:
		c.ClipRect(cc.Rect, cc.Op, cc.AntiAlias)
	case *record.SetMatrix:
		c.Concat(widen3x3Mat4(cc.M))
	case *record.Concat44:
		c.Concat(cc.M)
	case *record.DrawAnnotation:
		c.DrawAnnotation(cc.Rect, cc.Key)
	case *record.DrawPicture:
		c.DrawPicture(cc.Picture)
	case *record.Draw:
		c.Draw(cc.Name, cc.Paint)
	case *record.NoOp:
		// no-op has no observable effect; nothing to replay.
	}
}

func widen3x3Mat4(m record.Matrix) record.Mat4 {
	w := widen3x3(m)
	var out record.Mat4
	copy(out[:], w)
	return out
}
