package graphicsstate

import (
	"github.com/pkg/errors"

	"github.com/tsawler/pagestream/color"
	"github.com/tsawler/pagestream/contentstream"
	"github.com/tsawler/pagestream/model"
	"github.com/tsawler/pagestream/resources"
)

// ErrStackUnderflow is returned by Restore when no state has been saved.
var ErrStackUnderflow = errors.New("graphics state stack underflow")

// State is a snapshot of the graphics state. It is a value: copying a State
// copies everything, including the dash array once Clone is used.
type State struct {
	// Text state
	Font              string // resource name, empty when no font was selected
	FontSize          float32
	TextMatrix        model.Matrix
	CharSpacing       float32
	WordSpacing       float32
	HorizontalScaling float32 // percentage
	Leading           float32
	RenderMode        contentstream.TextRenderMode

	// Colors
	StrokeColor color.Color
	FillColor   color.Color

	// Line attributes
	LineWidth  float32
	LineCap    contentstream.LineCap
	LineJoin   contentstream.LineJoin
	MiterLimit float32
	Dash       []float32
	DashPhase  float32

	// Name of the last applied external graphics state
	ExtGState string
}

// DefaultState returns the state in effect at the start of a content stream.
func DefaultState() State {
	return State{
		FontSize:          12,
		TextMatrix:        model.Identity(),
		HorizontalScaling: 100,
		StrokeColor:       color.Black,
		FillColor:         color.Black,
		LineWidth:         1,
		MiterLimit:        10,
	}
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	if s.Dash != nil {
		s.Dash = append([]float32(nil), s.Dash...)
	}
	return s
}

// FontName returns the font resource name, or the default font name when
// none was selected.
func (s State) FontName() string {
	if s.Font == "" {
		return resources.DefaultFontName
	}
	return s.Font
}

// EffectiveFontSize returns the font size scaled by the horizontal scale
// of the text matrix.
func (s State) EffectiveFontSize() float32 {
	return s.FontSize * s.TextMatrix.HorizontalScale()
}

// Machine holds the current state and the stack of saved states.
type Machine struct {
	current State
	stack   []State
}

// NewMachine creates a machine in the default state with an empty stack.
func NewMachine() *Machine {
	return &Machine{current: DefaultState()}
}

// Current returns a copy of the current state.
func (m *Machine) Current() State {
	return m.current.Clone()
}

// Depth returns the number of saved states.
func (m *Machine) Depth() int {
	return len(m.stack)
}

// Save pushes a copy of the current state (q operator).
func (m *Machine) Save() {
	m.stack = append(m.stack, m.current.Clone())
}

// Restore pops the most recently saved state into current (Q operator).
// On an empty stack it returns ErrStackUnderflow and changes nothing.
func (m *Machine) Restore() error {
	if len(m.stack) == 0 {
		return ErrStackUnderflow
	}
	m.current = m.stack[len(m.stack)-1]
	m.stack[len(m.stack)-1] = State{}
	m.stack = m.stack[:len(m.stack)-1]
	return nil
}

// Reset returns to the default state and drops every saved state.
func (m *Machine) Reset() {
	m.current = DefaultState()
	clear(m.stack)
	m.stack = m.stack[:0]
}

// SetFont sets the font resource name and size (Tf operator).
func (m *Machine) SetFont(name string, size float32) {
	m.current.Font = name
	m.current.FontSize = size
}

// SetTextMatrix replaces the text matrix (Tm operator).
func (m *Machine) SetTextMatrix(tm model.Matrix) {
	m.current.TextMatrix = tm
}

// ResetTextMatrix sets the text matrix to identity (BT operator).
func (m *Machine) ResetTextMatrix() {
	m.current.TextMatrix = model.Identity()
}

// SetCharSpacing sets character spacing (Tc operator).
func (m *Machine) SetCharSpacing(spacing float32) {
	m.current.CharSpacing = spacing
}

// SetWordSpacing sets word spacing (Tw operator).
func (m *Machine) SetWordSpacing(spacing float32) {
	m.current.WordSpacing = spacing
}

// SetHorizontalScaling sets horizontal scaling (Tz operator).
func (m *Machine) SetHorizontalScaling(scale float32) {
	m.current.HorizontalScaling = scale
}

// SetLeading sets text leading (TL operator).
func (m *Machine) SetLeading(leading float32) {
	m.current.Leading = leading
}

// SetRenderMode sets the text rendering mode (Tr operator).
func (m *Machine) SetRenderMode(mode contentstream.TextRenderMode) {
	m.current.RenderMode = mode
}

// SetStrokeColor sets the stroke color.
func (m *Machine) SetStrokeColor(c color.Color) {
	m.current.StrokeColor = c
}

// SetFillColor sets the fill color.
func (m *Machine) SetFillColor(c color.Color) {
	m.current.FillColor = c
}

// SetLineWidth sets the line width (w operator).
func (m *Machine) SetLineWidth(width float32) {
	m.current.LineWidth = width
}

// SetLineCap sets the line cap style (J operator).
func (m *Machine) SetLineCap(c contentstream.LineCap) {
	m.current.LineCap = c
}

// SetLineJoin sets the line join style (j operator).
func (m *Machine) SetLineJoin(j contentstream.LineJoin) {
	m.current.LineJoin = j
}

// SetMiterLimit sets the miter limit (M operator).
func (m *Machine) SetMiterLimit(limit float32) {
	m.current.MiterLimit = limit
}

// SetDash sets the dash array and phase (d operator). The array is copied.
func (m *Machine) SetDash(array []float32, phase float32) {
	m.current.Dash = append([]float32(nil), array...)
	m.current.DashPhase = phase
}

// ApplyExtGState records the named external graphics state and applies the
// parameters it carries (gs operator).
func (m *Machine) ApplyExtGState(gs resources.ExtGState) {
	m.current.ExtGState = gs.Name
	if gs.LineWidth != nil {
		m.current.LineWidth = *gs.LineWidth
	}
}
