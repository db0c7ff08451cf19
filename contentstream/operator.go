package contentstream

import (
	"fmt"

	"github.com/tsawler/pagestream/color"
	"github.com/tsawler/pagestream/model"
)

// Operator is one decoded content stream instruction. The set of operators
// is closed; every variant is declared in this file. Operators own their
// operands and never reference the input buffer.
type Operator interface {
	// Name returns the content stream keyword of the operator.
	Name() string
	isOperator()
}

// TextRenderMode is the text rendering mode set by Tr.
type TextRenderMode int

const (
	RenderFill TextRenderMode = iota
	RenderStroke
	RenderFillStroke
	RenderInvisible
	RenderFillClip
	RenderStrokeClip
	RenderFillStrokeClip
	RenderClip
)

var renderModeNames = [...]string{
	"Fill", "Stroke", "FillAndStroke", "Invisible",
	"FillAndClip", "StrokeAndClip", "FillStrokeAndClip", "Clip",
}

func (m TextRenderMode) String() string {
	if m >= 0 && int(m) < len(renderModeNames) {
		return renderModeNames[m]
	}
	return fmt.Sprintf("TextRenderMode(%d)", int(m))
}

// LineCap is the line cap style set by J.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

func (c LineCap) String() string {
	switch c {
	case CapButt:
		return "Butt"
	case CapRound:
		return "Round"
	case CapSquare:
		return "Square"
	}
	return fmt.Sprintf("LineCap(%d)", int(c))
}

// LineJoin is the line join style set by j.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

func (j LineJoin) String() string {
	switch j {
	case JoinMiter:
		return "Miter"
	case JoinRound:
		return "Round"
	case JoinBevel:
		return "Bevel"
	}
	return fmt.Sprintf("LineJoin(%d)", int(j))
}

// BeginText is the BT operator. It opens a text object.
type BeginText struct{}

// EndText is the ET operator. It closes the current text object.
type EndText struct{}

// SetFont is the Tf operator, selecting a font resource and size.
type SetFont struct {
	Font string
	Size float32
}

// ShowText is the Tj operator. The ' operator also decodes to it.
type ShowText struct {
	Text string
}

// ShowTextAdjusted is the TJ operator. Its strings are concatenated and
// kerning adjustments are not kept.
type ShowTextAdjusted struct {
	Text string
}

// SetTextMatrix is the Tm operator.
type SetTextMatrix struct {
	Matrix model.Matrix
}

// SetCharSpacing is the Tc operator.
type SetCharSpacing struct {
	Spacing float32
}

// SetWordSpacing is the Tw operator.
type SetWordSpacing struct {
	Spacing float32
}

// SetHorizontalScaling is the Tz operator. Scale is a percentage.
type SetHorizontalScaling struct {
	Scale float32
}

// SetLeading is the TL operator.
type SetLeading struct {
	Leading float32
}

// SetRenderingMode is the Tr operator.
type SetRenderingMode struct {
	Mode TextRenderMode
}

// SetLineWidth is the w operator.
type SetLineWidth struct {
	Width float32
}

// SetLineCap is the J operator.
type SetLineCap struct {
	Cap LineCap
}

// SetLineJoin is the j operator.
type SetLineJoin struct {
	Join LineJoin
}

// SetMiterLimit is the M operator.
type SetMiterLimit struct {
	Limit float32
}

// SetDashPattern is the d operator.
type SetDashPattern struct {
	Array []float32
	Phase float32
}

// SetStrokeColor is decoded from RG, K, G, SC and SCN.
type SetStrokeColor struct {
	Color color.Color
}

// SetFillColor is decoded from rg, k, g, sc and scn.
type SetFillColor struct {
	Color color.Color
}

// MoveTo is the m operator, starting a new subpath.
type MoveTo struct {
	X, Y float32
}

// LineTo is the l operator.
type LineTo struct {
	X, Y float32
}

// CurveTo is the c operator. The v and y shorthands decode to it as well.
type CurveTo struct {
	X1, Y1, X2, Y2, X3, Y3 float32
}

// ClosePath is the h operator.
type ClosePath struct{}

// SaveState is the q operator, pushing the graphics state.
type SaveState struct{}

// RestoreState is the Q operator, popping the graphics state.
type RestoreState struct{}

// SetGraphicsState is the gs operator. Resource names an ExtGState entry.
type SetGraphicsState struct {
	Resource string
}

func (BeginText) Name() string            { return "BT" }
func (EndText) Name() string              { return "ET" }
func (SetFont) Name() string              { return "Tf" }
func (ShowText) Name() string             { return "Tj" }
func (ShowTextAdjusted) Name() string     { return "TJ" }
func (SetTextMatrix) Name() string        { return "Tm" }
func (SetCharSpacing) Name() string       { return "Tc" }
func (SetWordSpacing) Name() string       { return "Tw" }
func (SetHorizontalScaling) Name() string { return "Tz" }
func (SetLeading) Name() string           { return "TL" }
func (SetRenderingMode) Name() string     { return "Tr" }
func (SetLineWidth) Name() string         { return "w" }
func (SetLineCap) Name() string           { return "J" }
func (SetLineJoin) Name() string          { return "j" }
func (SetMiterLimit) Name() string        { return "M" }
func (SetDashPattern) Name() string       { return "d" }
func (SetStrokeColor) Name() string       { return "SC" }
func (SetFillColor) Name() string         { return "sc" }
func (MoveTo) Name() string               { return "m" }
func (LineTo) Name() string               { return "l" }
func (CurveTo) Name() string              { return "c" }
func (ClosePath) Name() string            { return "h" }
func (SaveState) Name() string            { return "q" }
func (RestoreState) Name() string         { return "Q" }
func (SetGraphicsState) Name() string     { return "gs" }

func (BeginText) isOperator()            {}
func (EndText) isOperator()              {}
func (SetFont) isOperator()              {}
func (ShowText) isOperator()             {}
func (ShowTextAdjusted) isOperator()     {}
func (SetTextMatrix) isOperator()        {}
func (SetCharSpacing) isOperator()       {}
func (SetWordSpacing) isOperator()       {}
func (SetHorizontalScaling) isOperator() {}
func (SetLeading) isOperator()           {}
func (SetRenderingMode) isOperator()     {}
func (SetLineWidth) isOperator()         {}
func (SetLineCap) isOperator()           {}
func (SetLineJoin) isOperator()          {}
func (SetMiterLimit) isOperator()        {}
func (SetDashPattern) isOperator()       {}
func (SetStrokeColor) isOperator()       {}
func (SetFillColor) isOperator()         {}
func (MoveTo) isOperator()               {}
func (LineTo) isOperator()               {}
func (CurveTo) isOperator()              {}
func (ClosePath) isOperator()            {}
func (SaveState) isOperator()            {}
func (RestoreState) isOperator()         {}
func (SetGraphicsState) isOperator()     {}
