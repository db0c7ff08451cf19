package interpreter

import (
	"runtime"
	"strings"
	"sync"

	"github.com/tsawler/pagestream/color"
	"github.com/tsawler/pagestream/contentstream"
	"github.com/tsawler/pagestream/graphicsstate"
	"github.com/tsawler/pagestream/model"
	"github.com/tsawler/pagestream/resources"
	"github.com/tsawler/pagestream/trace"
)

// Interpreter turns page content streams into text and vector objects.
// An Interpreter is immutable after New and safe for concurrent use; each
// Parse call owns its own state.
type Interpreter struct {
	res     resources.Resolver
	log     *trace.Logger
	order   contentstream.OperandOrder
	workers int

	// passes recycles state machines and paths between Parse calls
	passes *sync.Pool
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger that receives recovery and resolution events.
func WithLogger(l *trace.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.log = l
		}
	}
}

// WithOperandOrder selects the operand order of the content streams.
func WithOperandOrder(order contentstream.OperandOrder) Option {
	return func(in *Interpreter) {
		in.order = order
	}
}

// WithWorkers sets how many pages ParsePages parses at once. Zero or less
// means one per CPU.
func WithWorkers(n int) Option {
	return func(in *Interpreter) {
		in.workers = n
	}
}

// New creates an interpreter resolving resource names through res. With a
// nil res every font name is accepted as is.
func New(res resources.Resolver, opts ...Option) *Interpreter {
	in := &Interpreter{
		res:    res,
		log:    trace.Discard(),
		order:  contentstream.LegacyOrder,
		passes: newPassPool(),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.workers <= 0 {
		in.workers = runtime.NumCPU()
	}
	return in
}

func newPassPool() *sync.Pool {
	return &sync.Pool{
		New: func() any {
			return &pass{state: graphicsstate.NewMachine(), path: graphicsstate.NewPath()}
		},
	}
}

// withResources returns a copy of in that resolves through res.
func (in *Interpreter) withResources(res resources.Resolver) *Interpreter {
	out := *in
	out.res = res
	return &out
}

// Parse interprets one content stream. It never fails: bytes that cannot
// be decoded are skipped one at a time and reported in Result.Recoveries.
func (in *Interpreter) Parse(content []byte) *Result {
	p := in.passes.Get().(*pass)
	defer in.passes.Put(p)
	p.reset(in)

	cur := contentstream.NewCursor(content)
	var decOpts []contentstream.DecoderOption
	if cs, ok := in.res.(resources.ColorSpaceResolver); ok {
		decOpts = append(decOpts, contentstream.WithColorSpaces(cs))
	}
	dec := contentstream.NewDecoder(cur, in.order, in.log, decOpts...)

	for {
		cur.SkipWhitespace()
		start := cur.Pos()

		op, ok := dec.Next()
		if ok {
			p.apply(op)
			continue
		}
		if start >= len(content) {
			break
		}

		cur.Advance()
		rec := Recovery{Offset: start, Byte: content[start], Skipped: cur.Pos() - start}
		p.res.Recoveries = append(p.res.Recoveries, rec)
		in.log.Debugf("%s", rec)
	}

	p.res.State = p.state.Current()
	p.res.Depth = p.state.Depth()
	in.log.Debugf("parsed %d bytes: %d text objects, %d vector objects, %d recoveries",
		len(content), len(p.res.Text), len(p.res.Vectors), len(p.res.Recoveries))
	return p.res
}

// reset prepares a recycled pass for a new page: default graphics state,
// empty path, fresh result.
func (p *pass) reset(in *Interpreter) {
	p.in = in
	p.state.Reset()
	p.path.Clear()
	p.inText = false
	p.res = &Result{}
	clear(p.loaded)
}

// pass is the mutable state of a single Parse call.
type pass struct {
	in     *Interpreter
	state  *graphicsstate.Machine
	path   *graphicsstate.Path
	inText bool
	res    *Result
	loaded map[string]bool // fonts whose program was loaded
}

func (p *pass) apply(op contentstream.Operator) {
	m := p.state
	log := p.in.log

	switch op := op.(type) {
	case contentstream.SaveState:
		m.Save()
	case contentstream.RestoreState:
		if err := m.Restore(); err != nil {
			p.res.Underflows++
			log.Warnf("%v: restore ignored", err)
		}

	case contentstream.BeginText:
		p.inText = true
		m.ResetTextMatrix()
	case contentstream.EndText:
		p.inText = false
	case contentstream.SetFont:
		if !p.knownFont(op.Font) {
			log.Debugf("unknown font %q, keeping %q", op.Font, m.Current().Font)
			return
		}
		m.SetFont(op.Font, op.Size)
	case contentstream.SetTextMatrix:
		if !p.inText {
			log.Debugf("text matrix outside text block ignored")
			return
		}
		m.SetTextMatrix(op.Matrix)
	case contentstream.ShowText:
		p.showText(op.Text)
	case contentstream.ShowTextAdjusted:
		p.showText(op.Text)
	case contentstream.SetCharSpacing:
		m.SetCharSpacing(op.Spacing)
	case contentstream.SetWordSpacing:
		m.SetWordSpacing(op.Spacing)
	case contentstream.SetHorizontalScaling:
		m.SetHorizontalScaling(op.Scale)
	case contentstream.SetLeading:
		m.SetLeading(op.Leading)
	case contentstream.SetRenderingMode:
		m.SetRenderMode(op.Mode)

	case contentstream.SetLineWidth:
		m.SetLineWidth(op.Width)
	case contentstream.SetLineCap:
		m.SetLineCap(op.Cap)
	case contentstream.SetLineJoin:
		m.SetLineJoin(op.Join)
	case contentstream.SetMiterLimit:
		m.SetMiterLimit(op.Limit)
	case contentstream.SetDashPattern:
		m.SetDash(op.Array, op.Phase)
	case contentstream.SetStrokeColor:
		m.SetStrokeColor(op.Color)
	case contentstream.SetFillColor:
		m.SetFillColor(op.Color)
	case contentstream.SetGraphicsState:
		p.applyExtGState(op.Resource)

	case contentstream.MoveTo:
		p.path.MoveTo(op.X, op.Y)
	case contentstream.LineTo:
		p.path.LineTo(op.X, op.Y)
	case contentstream.CurveTo:
		p.path.CurveTo(op.X1, op.Y1, op.X2, op.Y2, op.X3, op.Y3)
	case contentstream.ClosePath:
		p.closePath()
	}
}

// knownFont resolves name and loads the font program the first time a font
// is selected in this pass.
func (p *pass) knownFont(name string) bool {
	if p.in.res == nil {
		return true
	}
	f, ok := p.in.res.Font(name)
	if !ok {
		return false
	}
	if f == nil || p.loaded[name] {
		return true
	}
	if p.loaded == nil {
		p.loaded = make(map[string]bool)
	}
	p.loaded[name] = true

	if _, err := f.Face(); err != nil {
		p.in.log.Warnf("font %q: %v", name, err)
	} else if len(f.Data) > 0 && !f.Embedded() {
		p.in.log.Warnf("font %q: embedded program could not be parsed, using fallback face", name)
	}
	return true
}

// showText emits a text object for non-blank text inside a text block.
func (p *pass) showText(text string) {
	if !p.inText || strings.TrimSpace(text) == "" {
		return
	}
	s := p.state.Current()
	x, y := s.TextMatrix.Translation()
	p.res.Text = append(p.res.Text, model.TextObject{
		Text:     text,
		X:        x,
		Y:        y,
		FontSize: s.EffectiveFontSize(),
		FontName: s.FontName(),
	})
}

// closePath closes the path and emits it with the current colors. Closing
// an empty path does nothing.
func (p *pass) closePath() {
	if p.path.IsEmpty() {
		return
	}
	p.path.ClosePath()

	s := p.state.Current()
	v := model.VectorObject{
		Path:        p.path.Commands(),
		StrokeColor: model.OpaqueBlack,
		LineWidth:   s.LineWidth,
	}
	if rgba, ok := color.ToRGBA(s.StrokeColor); ok {
		v.StrokeColor = rgba
	}
	if rgba, ok := color.ToRGBA(s.FillColor); ok {
		v.FillColor = &rgba
	}
	p.res.Vectors = append(p.res.Vectors, v)
	p.path.Clear()
}

func (p *pass) applyExtGState(name string) {
	r, ok := p.in.res.(resources.ExtGStateResolver)
	if !ok {
		p.in.log.Debugf("no graphics state resources, %q ignored", name)
		return
	}
	gs, ok := r.ExtGState(name)
	if !ok {
		p.in.log.Debugf("unknown graphics state %q", name)
		return
	}
	if gs.Name == "" {
		gs.Name = name
	}
	p.state.ApplyExtGState(gs)
}
