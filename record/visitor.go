package record

// Visitor dispatches on the variant of a Command. Implementations embed
// BaseVisitor to get no-op defaults for the variants they don't care about,
// matching the "named case plus catch-all" dispatch style used throughout
// this codebase's command handling.
type Visitor interface {
	VisitNoOp(*NoOp)
	VisitSave(*Save)
	VisitSaveLayer(*SaveLayer)
	VisitRestore(*Restore)
	VisitClipRect(*ClipRect)
	VisitSetMatrix(*SetMatrix)
	VisitConcat44(*Concat44)
	VisitDrawAnnotation(*DrawAnnotation)
	VisitDrawPicture(*DrawPicture)
	VisitDraw(*Draw)
}

// BaseVisitor implements Visitor with no-op methods for every variant.
// Embed it and override only the cases a particular visitor needs.
type BaseVisitor struct{}

func (BaseVisitor) VisitNoOp(*NoOp)                       {}
func (BaseVisitor) VisitSave(*Save)                       {}
func (BaseVisitor) VisitSaveLayer(*SaveLayer)             {}
func (BaseVisitor) VisitRestore(*Restore)                 {}
func (BaseVisitor) VisitClipRect(*ClipRect)               {}
func (BaseVisitor) VisitSetMatrix(*SetMatrix)             {}
func (BaseVisitor) VisitConcat44(*Concat44)               {}
func (BaseVisitor) VisitDrawAnnotation(*DrawAnnotation)   {}
func (BaseVisitor) VisitDrawPicture(*DrawPicture)         {}
func (BaseVisitor) VisitDraw(*Draw)                       {}

var _ Visitor = BaseVisitor{}
