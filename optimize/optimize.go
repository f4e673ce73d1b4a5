package optimize

import (
	"github.com/recopt/recopt/pattern"
	"github.com/recopt/recopt/record"
)

// V1 runs FoldSaveLayerDraw, then MergeSVGOpacityFilter, then Defrag.
//
// NoopSaveRestore is intentionally left out of V1: it previously interacted
// badly with DrawAnnotation markers left behind by upstream tooling, and V1
// keeps that conservative behavior rather than re-enabling the pass.
func V1(s *record.Stream) *record.Stream {
	pattern.Apply(FoldSaveLayerDraw, s)
	pattern.Apply(MergeSVGOpacityFilter, s)
	return s.Defrag()
}

// V2 runs the full pass sequence: collapse redundant SetMatrix to
// fixpoint, noop vacuous Save/Restore spans to fixpoint, fold
// SaveLayer+draw+Restore, merge SVG opacity/filter groups, then Defrag.
func V2(s *record.Stream) *record.Stream {
	pattern.ApplyToFixpoint(CollapseSetMatrix, s)
	NoopSaveRestore(s)
	pattern.Apply(FoldSaveLayerDraw, s)
	pattern.Apply(MergeSVGOpacityFilter, s)
	return s.Defrag()
}
