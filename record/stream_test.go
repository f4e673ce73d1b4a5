package record

import "testing"

func TestStreamCountAndAt(t *testing.T) {
	s := NewStream(&Save{}, &Draw{Name: "drawRect"}, &Restore{})
	if s.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", s.Count())
	}
	if s.At(1).Kind() != KindDraw {
		t.Fatalf("At(1).Kind() = %v, want KindDraw", s.At(1).Kind())
	}
}

func TestStreamReplaceIsStable(t *testing.T) {
	s := NewStream(&Save{}, &Draw{Name: "drawRect"}, &Restore{})
	s.Noop(0)
	if s.Count() != 3 {
		t.Fatalf("Count() changed after Replace: %d", s.Count())
	}
	if s.At(0).Kind() != KindNoOp {
		t.Fatalf("At(0).Kind() = %v, want KindNoOp", s.At(0).Kind())
	}
}

func TestMutate(t *testing.T) {
	s := NewStream(&Draw{Name: "drawRect", Paint: &Paint{Color: RGBA{A: 255}}})
	Mutate(s, 0, func(d *Draw) {
		d.Paint.Color.A = 3
	})
	d := s.At(0).(*Draw)
	if d.Paint.Color.A != 3 {
		t.Fatalf("alpha = %d, want 3", d.Paint.Color.A)
	}
}

func TestMutateWrongTypePanics(t *testing.T) {
	s := NewStream(&Save{})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on type mismatch")
		}
	}()
	Mutate(s, 0, func(*Draw) {})
}

func TestDefragRemovesNoOpsPreservesOrder(t *testing.T) {
	s := NewStream(&Save{}, &NoOp{}, &Draw{Name: "a"}, &NoOp{}, &Draw{Name: "b"}, &Restore{})
	out := s.Defrag()
	if out.Count() != 4 {
		t.Fatalf("Count() = %d, want 4", out.Count())
	}
	wantKinds := []CommandKind{KindSave, KindDraw, KindDraw, KindRestore}
	for i, k := range wantKinds {
		if out.At(i).Kind() != k {
			t.Errorf("At(%d).Kind() = %v, want %v", i, out.At(i).Kind(), k)
		}
	}
	if out.At(1).(*Draw).Name != "a" || out.At(2).(*Draw).Name != "b" {
		t.Error("Defrag did not preserve relative order")
	}
}

func TestBalanceAccepts(t *testing.T) {
	s := NewStream(&Save{}, &SaveLayer{}, &Restore{}, &Restore{})
	if err := s.Balance(); err != nil {
		t.Fatalf("Balance() = %v, want nil", err)
	}
}

func TestBalanceRejectsUnmatchedRestore(t *testing.T) {
	s := NewStream(&Restore{})
	if err := s.Balance(); err == nil {
		t.Fatal("Balance() = nil, want InvariantError")
	}
}

func TestBalanceRejectsUnmatchedSave(t *testing.T) {
	s := NewStream(&Save{})
	if err := s.Balance(); err == nil {
		t.Fatal("Balance() = nil, want InvariantError")
	}
}

func TestBalanceIgnoresNoOp(t *testing.T) {
	s := NewStream(&NoOp{}, &NoOp{})
	if err := s.Balance(); err != nil {
		t.Fatalf("Balance() = %v, want nil", err)
	}
}

func TestVisitDispatchesToMatchingMethod(t *testing.T) {
	s := NewStream(&Draw{Name: "x"})
	rec := &recordingVisitor{BaseVisitor: BaseVisitor{}}
	s.Visit(0, rec)
	if rec.drawCalls != 1 {
		t.Fatalf("VisitDraw called %d times, want 1", rec.drawCalls)
	}
}

type recordingVisitor struct {
	BaseVisitor
	drawCalls int
}

func (v *recordingVisitor) VisitDraw(*Draw) { v.drawCalls++ }

func TestCountKindAndNonNoopCount(t *testing.T) {
	s := NewStream(&Save{}, &NoOp{}, &SetMatrix{}, &SetMatrix{}, &Restore{})
	if got := s.CountKind(KindSetMatrix); got != 2 {
		t.Errorf("CountKind(SetMatrix) = %d, want 2", got)
	}
	if got := s.NonNoopCount(); got != 4 {
		t.Errorf("NonNoopCount() = %d, want 4", got)
	}
}

func TestCloneIsIndependentSlice(t *testing.T) {
	s := NewStream(&Save{}, &Restore{})
	c := s.Clone()
	c.Noop(0)
	if s.At(0).Kind() == KindNoOp {
		t.Fatal("mutating clone's slice affected original stream")
	}
}
