package bridge_test

import (
	"context"
	"errors"
	"testing"

	"github.com/recopt/recopt/bridge"
	"github.com/recopt/recopt/canvas"
	"github.com/recopt/recopt/record"
)

func sampleStream() *record.Stream {
	return record.NewStream(
		&record.Save{},
		&record.ClipRect{Rect: record.Rect{Right: 10, Bottom: 10}, Op: record.ClipIntersect, AntiAlias: true},
		&record.SetMatrix{M: record.Identity3()},
		&record.Draw{Name: "drawRect", Paint: &record.Paint{Color: record.RGBA{A: 255}}},
		&record.Restore{},
	)
}

func TestSerializeProducesOneEntryPerCommandWithMonotonicIndex(t *testing.T) {
	s := sampleStream()
	wr := bridge.Serialize(s)
	if len(wr.Entries) != s.Count() {
		t.Fatalf("len(Entries) = %d, want %d", len(wr.Entries), s.Count())
	}
	for i, e := range wr.Entries {
		if e.Index != i {
			t.Errorf("Entries[%d].Index = %d, want %d", i, e.Index, i)
		}
	}
}

func TestDeserializeRoundTripsCommandKinds(t *testing.T) {
	s := sampleStream()
	wr := bridge.Serialize(s)
	out, err := bridge.Deserialize(wr)
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if out.Count() != s.Count() {
		t.Fatalf("Count() = %d, want %d", out.Count(), s.Count())
	}
	for i := 0; i < s.Count(); i++ {
		if out.At(i).Kind() != s.At(i).Kind() {
			t.Errorf("At(%d).Kind() = %v, want %v", i, out.At(i).Kind(), s.At(i).Kind())
		}
	}
}

func TestNullRewriterIsIdentityUnderReplay(t *testing.T) {
	s := sampleStream()
	tr := canvas.NewTrace()
	if err := bridge.Optimize(context.Background(), bridge.NullRewriter{}, s, tr); err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if len(tr.Events) != s.Count() {
		t.Fatalf("len(Events) = %d, want %d", len(tr.Events), s.Count())
	}
	wantOps := []string{"save", "clipRect", "concat", "draw", "restore"}
	for i, op := range wantOps {
		if tr.Events[i].Op != op {
			t.Errorf("Events[%d].Op = %q, want %q", i, tr.Events[i].Op, op)
		}
	}
}

func TestReplayCopyRecordOverridesAlpha(t *testing.T) {
	s := record.NewStream(&record.Draw{Name: "drawRect", Paint: &record.Paint{Color: record.RGBA{A: 255}}})
	prog := &bridge.WireProgram{
		Status: bridge.StatusOK,
		Instructions: []bridge.WireInstruction{
			{Kind: bridge.InstrCopyRecord, Index: 0, Paint: &bridge.WirePaint{Color: bridge.WireColor{A: 3}}},
		},
	}
	tr := canvas.NewTrace()
	bridge.Replay(prog, s, tr)
	if got := s.At(0).(*record.Draw).Paint.Color.A; got != 3 {
		t.Fatalf("alpha after replay = %d, want 3", got)
	}
	if len(tr.Events) != 1 || tr.Events[0].Op != "draw" {
		t.Fatalf("Events = %v, want one draw event", tr.Events)
	}
}

func TestReplayCopyRecordLeavesDefaultAlphaUntouched(t *testing.T) {
	s := record.NewStream(&record.Draw{Name: "drawRect", Paint: &record.Paint{Color: record.RGBA{A: 200}}})
	prog := &bridge.WireProgram{
		Status: bridge.StatusOK,
		Instructions: []bridge.WireInstruction{
			{Kind: bridge.InstrCopyRecord, Index: 0, Paint: &bridge.WirePaint{Color: bridge.WireColor{A: 255}}},
		},
	}
	bridge.Replay(prog, s, canvas.NewTrace())
	if got := s.At(0).(*record.Draw).Paint.Color.A; got != 200 {
		t.Fatalf("alpha = %d, want unchanged 200 (override alpha was 255)", got)
	}
}

func TestOptimizeReturnsUnsupportedCommandsError(t *testing.T) {
	s := sampleStream()
	failing := rewriterFunc(func(context.Context, *bridge.WireRecord) (*bridge.WireProgram, error) {
		return &bridge.WireProgram{Status: bridge.StatusFailed, Unsupported: []string{"drawText"}}, nil
	})
	err := bridge.Optimize(context.Background(), failing, s, canvas.NewTrace())
	if err == nil {
		t.Fatal("Optimize() error = nil, want UnsupportedCommandsError")
	}
	var uce *bridge.UnsupportedCommandsError
	if !errors.As(err, &uce) {
		t.Fatalf("error = %v, want *UnsupportedCommandsError", err)
	}
	if len(uce.Names) != 1 || uce.Names[0] != "drawText" {
		t.Fatalf("Names = %v", uce.Names)
	}
}

type rewriterFunc func(ctx context.Context, wr *bridge.WireRecord) (*bridge.WireProgram, error)

func (f rewriterFunc) Rewrite(ctx context.Context, wr *bridge.WireRecord) (*bridge.WireProgram, error) {
	return f(ctx, wr)
}

func TestRegisterRewriterDuplicatePanics(t *testing.T) {
	bridge.RegisterRewriter("dup-test", func() bridge.Rewriter { return bridge.NullRewriter{} })
	defer bridge.UnregisterRewriter("dup-test")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	bridge.RegisterRewriter("dup-test", func() bridge.Rewriter { return bridge.NullRewriter{} })
}

func TestNewRewriterUnknownNameErrors(t *testing.T) {
	if _, err := bridge.NewRewriter("does-not-exist"); err == nil {
		t.Fatal("NewRewriter() error = nil, want error for unknown name")
	}
}

func TestNewRewriterNullIsRegisteredByDefault(t *testing.T) {
	rw, err := bridge.NewRewriter("null")
	if err != nil {
		t.Fatalf("NewRewriter(\"null\") error = %v", err)
	}
	if _, ok := rw.(bridge.NullRewriter); !ok {
		t.Fatalf("NewRewriter(\"null\") = %T, want NullRewriter", rw)
	}
}
