package pattern

import (
	"testing"

	"github.com/recopt/recopt/record"
)

func TestIsMatchesExactType(t *testing.T) {
	s := record.NewStream(&record.Save{}, &record.Restore{})
	m := Is[*record.Save]()
	if length, capture, ok := m.matchAt(s, 0); !ok || length != 1 || capture.(*record.Save) != s.At(0) {
		t.Fatalf("Is[*Save] at 0 = (%d, %v, %v)", length, capture, ok)
	}
	if _, _, ok := m.matchAt(s, 1); ok {
		t.Fatal("Is[*Save] matched a Restore")
	}
}

func TestOrTriesAlternativesInOrder(t *testing.T) {
	s := record.NewStream(&record.Restore{})
	m := Or(Is[*record.Save](), Is[*record.Restore]())
	if _, _, ok := m.matchAt(s, 0); !ok {
		t.Fatal("Or did not match second alternative")
	}
}

func TestNotRejectsMatchingCommand(t *testing.T) {
	s := record.NewStream(&record.Save{})
	m := Not(Is[*record.Save]())
	if _, _, ok := m.matchAt(s, 0); ok {
		t.Fatal("Not(Is[Save]) matched a Save")
	}
}

func TestNotAcceptsNonMatchingCommand(t *testing.T) {
	s := record.NewStream(&record.Restore{})
	m := Not(Is[*record.Save]())
	if length, _, ok := m.matchAt(s, 0); !ok || length != 1 {
		t.Fatalf("Not(Is[Save]) on Restore = (%d, %v)", length, ok)
	}
}

func TestGreedyMatchesMaximalRun(t *testing.T) {
	s := record.NewStream(&record.NoOp{}, &record.NoOp{}, &record.Save{})
	m := Greedy(Is[*record.NoOp]())
	length, capture, ok := m.matchAt(s, 0)
	if !ok || length != 2 {
		t.Fatalf("Greedy(NoOp) length = %d, ok = %v, want 2, true", length, ok)
	}
	if got := len(capture.([]record.Command)); got != 2 {
		t.Fatalf("Greedy capture length = %d, want 2", got)
	}
}

func TestGreedyMatchesZero(t *testing.T) {
	s := record.NewStream(&record.Save{})
	m := Greedy(Is[*record.NoOp]())
	length, _, ok := m.matchAt(s, 0)
	if !ok || length != 0 {
		t.Fatalf("Greedy(NoOp) on non-matching input = (%d, %v), want (0, true)", length, ok)
	}
}

func TestSeqConcatenatesSpans(t *testing.T) {
	s := record.NewStream(&record.SetMatrix{}, &record.NoOp{}, &record.SetMatrix{})
	m := Seq(Is[*record.SetMatrix](), Greedy(Is[*record.NoOp]()), Is[*record.SetMatrix]())
	length, _, ok := m.matchAt(s, 0)
	if !ok || length != 3 {
		t.Fatalf("Seq length = %d, ok = %v, want 3, true", length, ok)
	}
}

func TestSearchFindsFirstMatchAfterCursor(t *testing.T) {
	s := record.NewStream(&record.Restore{}, &record.Save{}, &record.Restore{})
	begin, end, _, ok := Search(Is[*record.Save](), s, 0)
	if !ok || begin != 1 || end != 2 {
		t.Fatalf("Search = (%d, %d, %v), want (1, 2, true)", begin, end, ok)
	}
}

func TestApplyResumesAtEndNotBeginPlusOne(t *testing.T) {
	s := record.NewStream(&record.SetMatrix{}, &record.SetMatrix{}, &record.SetMatrix{})
	calls := 0
	pass := PassFunc{
		Match: Seq(Is[*record.SetMatrix](), Greedy(Is[*record.NoOp]()), Is[*record.SetMatrix]()),
		Rewrite: func(s *record.Stream, caps Captures, begin, end int) bool {
			calls++
			s.Noop(begin)
			return true
		},
	}
	changed := Apply(pass, s)
	if !changed {
		t.Fatal("Apply reported no change")
	}
	// Three SetMatrix in a row: match 1 covers [0,2), collapsing index 0;
	// the driver resumes at end=2, so it should not re-match [1,3) as a
	// second collapse of the record it just rewrote past.
	if calls != 1 {
		t.Fatalf("OnMatch called %d times, want 1", calls)
	}
}

func TestApplyToFixpointStopsWhenNoChange(t *testing.T) {
	s := record.NewStream(&record.Save{}, &record.NoOp{}, &record.Restore{})
	rewrites := 0
	pass := PassFunc{
		Match: Seq(Is[*record.Save](), Greedy(Or(Is[*record.NoOp](), IsDraw())), Is[*record.Restore]()),
		Rewrite: func(s *record.Stream, caps Captures, begin, end int) bool {
			rewrites++
			if s.At(begin).Kind() == record.KindNoOp {
				return false
			}
			s.Noop(begin)
			s.Noop(end - 1)
			return true
		},
	}
	ApplyToFixpoint(pass, s)
	if rewrites != 1 {
		t.Fatalf("rewrite attempts = %d, want 1", rewrites)
	}
	if s.NonNoopCount() != 0 {
		t.Fatalf("NonNoopCount() = %d, want 0", s.NonNoopCount())
	}
}
