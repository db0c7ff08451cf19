package contentstream

import (
	"bytes"

	"github.com/tsawler/pagestream/color"
	"github.com/tsawler/pagestream/model"
	"github.com/tsawler/pagestream/resources"
	"github.com/tsawler/pagestream/trace"
)

// operandKind tags a buffered operand
type operandKind int

const (
	operandNumber operandKind = iota
	operandName
	operandString
	operandArray
	operandOther // booleans, null, dictionaries: kept only to be counted
)

// operand is a value waiting on the operand stack for its operator.
type operand struct {
	kind operandKind
	num  float32
	str  string
	arr  []operand
}

// postfixDecoder buffers operands until the operator that consumes them.
type postfixDecoder struct {
	cur   *Cursor
	log   *trace.Logger
	stack []operand

	// pending holds operators already decoded from a keyword that expands
	// to several (re, ")
	pending []Operator

	// current point and subpath start, needed to expand v and y
	current      model.Point
	subpathStart model.Point

	// color spaces selected by CS and cs; nil means infer from arity
	spaces      resources.ColorSpaceResolver
	strokeSpace color.Space
	fillSpace   color.Space
}

func newPostfixDecoder(cur *Cursor, log *trace.Logger, spaces resources.ColorSpaceResolver) *postfixDecoder {
	return &postfixDecoder{
		cur:    cur,
		log:    log,
		stack:  make([]operand, 0, 8),
		spaces: spaces,
	}
}

func (d *postfixDecoder) Next() (Operator, bool) {
	if op, ok := d.popPending(); ok {
		return op, true
	}

	c := d.cur
	for {
		c.SkipWhitespace()
		b, ok := c.PeekByte()
		if !ok {
			d.stack = d.stack[:0]
			return nil, false
		}

		switch {
		case b == '%':
			d.skipComment()
			continue
		case isLetter(b) || b == '\'' || b == '"':
			start := c.Pos()
			keyword := c.readKeyword()
			switch keyword {
			case "true", "false", "null":
				d.stack = append(d.stack, operand{kind: operandOther})
				continue
			case "BI":
				d.skipInlineImage()
				d.stack = d.stack[:0]
				continue
			case "CS", "cs":
				d.selectSpace(keyword == "CS")
				d.stack = d.stack[:0]
				continue
			}
			op, ok := d.apply(keyword)
			if !ok {
				// The keyword is consumed, so scanning resumes at the next
				// token instead of handing a byte skip to the caller.
				d.log.Debugf("cannot decode %q with %d operands at offset %d", keyword, len(d.stack), start)
				d.stack = d.stack[:0]
				continue
			}
			d.stack = d.stack[:0]
			d.track(op)
			return op, true
		default:
			opd, ok := d.parseOperand()
			if !ok {
				d.stack = d.stack[:0]
				return nil, false
			}
			d.stack = append(d.stack, opd)
		}
	}
}

func (d *postfixDecoder) popPending() (Operator, bool) {
	if len(d.pending) == 0 {
		return nil, false
	}
	op := d.pending[0]
	d.pending = d.pending[1:]
	d.track(op)
	return op, true
}

// queue returns the first operator and keeps the rest for later calls.
func (d *postfixDecoder) queue(ops ...Operator) (Operator, bool) {
	d.pending = append(d.pending, ops[1:]...)
	return ops[0], true
}

// track follows the current point for v and y.
func (d *postfixDecoder) track(op Operator) {
	switch op := op.(type) {
	case MoveTo:
		d.current = model.Point{X: op.X, Y: op.Y}
		d.subpathStart = d.current
	case LineTo:
		d.current = model.Point{X: op.X, Y: op.Y}
	case CurveTo:
		d.current = model.Point{X: op.X3, Y: op.Y3}
	case ClosePath:
		d.current = d.subpathStart
	}
}

// parseOperand parses a single number, name, string, array or dictionary.
func (d *postfixDecoder) parseOperand() (operand, bool) {
	c := d.cur
	b, _ := c.PeekByte()

	switch {
	case b == '-' || b == '+' || b == '.' || (b >= '0' && b <= '9'):
		if b == '+' {
			c.Advance()
		}
		v, ok := c.ParseNumber()
		return operand{kind: operandNumber, num: v}, ok
	case b == '/':
		s, ok := c.ParseName()
		return operand{kind: operandName, str: s}, ok
	case b == '(':
		s, ok := c.ParseTextString()
		return operand{kind: operandString, str: s}, ok
	case b == '<':
		if next := c.pos + 1; next < len(c.data) && c.data[next] == '<' {
			return operand{kind: operandOther}, d.skipDict()
		}
		s, ok := c.ParseHexString()
		return operand{kind: operandString, str: s}, ok
	case b == '[':
		return d.parseArray()
	}
	return operand{}, false
}

// parseArray parses an array [...] of operands.
func (d *postfixDecoder) parseArray() (operand, bool) {
	c := d.cur
	c.Advance() // skip '['

	var arr []operand
	for {
		c.SkipWhitespace()
		b, ok := c.PeekByte()
		if !ok {
			return operand{}, false
		}
		if b == ']' {
			c.Advance()
			return operand{kind: operandArray, arr: arr}, true
		}
		opd, ok := d.parseOperand()
		if !ok {
			return operand{}, false
		}
		arr = append(arr, opd)
	}
}

// skipDict skips a balanced << ... >> dictionary.
func (d *postfixDecoder) skipDict() bool {
	c := d.cur
	depth := 0
	for c.pos+1 < len(c.data) {
		switch {
		case c.data[c.pos] == '<' && c.data[c.pos+1] == '<':
			depth++
			c.pos += 2
		case c.data[c.pos] == '>' && c.data[c.pos+1] == '>':
			depth--
			c.pos += 2
			if depth == 0 {
				return true
			}
		case c.data[c.pos] == '(':
			c.parseLiteral()
		default:
			c.pos++
		}
	}
	c.pos = len(c.data)
	return false
}

// skipComment skips to the end of the line.
func (d *postfixDecoder) skipComment() {
	c := d.cur
	for c.pos < len(c.data) && c.data[c.pos] != '\n' && c.data[c.pos] != '\r' {
		c.pos++
	}
}

// skipInlineImage skips inline image data up to and including EI.
func (d *postfixDecoder) skipInlineImage() {
	c := d.cur
	idx := bytes.Index(c.data[c.pos:], []byte("EI"))
	for idx >= 0 {
		end := c.pos + idx + 2
		if end >= len(c.data) || isWhitespace(c.data[end]) {
			c.pos = end
			return
		}
		next := bytes.Index(c.data[end:], []byte("EI"))
		if next < 0 {
			break
		}
		idx = end - c.pos + next
	}
	c.pos = len(c.data)
}

// apply builds the operator for keyword from the operand stack.
func (d *postfixDecoder) apply(keyword string) (Operator, bool) {
	switch keyword {
	case "q":
		return SaveState{}, true
	case "Q":
		return RestoreState{}, true
	case "BT":
		return BeginText{}, true
	case "ET":
		return EndText{}, true
	case "h":
		return ClosePath{}, true

	case "Tf":
		ops, ok := d.args(operandName, operandNumber)
		if !ok {
			return nil, false
		}
		return SetFont{Font: ops[0].str, Size: ops[1].num}, true
	case "Tj", "'":
		ops, ok := d.args(operandString)
		if !ok {
			return nil, false
		}
		return ShowText{Text: ops[0].str}, true
	case "\"":
		ops, ok := d.args(operandNumber, operandNumber, operandString)
		if !ok {
			return nil, false
		}
		return d.queue(
			SetWordSpacing{Spacing: ops[0].num},
			SetCharSpacing{Spacing: ops[1].num},
			ShowText{Text: ops[2].str},
		)
	case "TJ":
		ops, ok := d.args(operandArray)
		if !ok {
			return nil, false
		}
		var text string
		for _, item := range ops[0].arr {
			if item.kind == operandString {
				text += item.str
			}
		}
		return ShowTextAdjusted{Text: text}, true
	case "Tm":
		n, ok := d.numbers(6)
		if !ok {
			return nil, false
		}
		return SetTextMatrix{Matrix: model.Matrix{n[0], n[1], n[2], n[3], n[4], n[5]}}, true
	case "Tc":
		n, ok := d.numbers(1)
		if !ok {
			return nil, false
		}
		return SetCharSpacing{Spacing: n[0]}, true
	case "Tw":
		n, ok := d.numbers(1)
		if !ok {
			return nil, false
		}
		return SetWordSpacing{Spacing: n[0]}, true
	case "Tz":
		n, ok := d.numbers(1)
		if !ok {
			return nil, false
		}
		return SetHorizontalScaling{Scale: n[0]}, true
	case "TL":
		n, ok := d.numbers(1)
		if !ok {
			return nil, false
		}
		return SetLeading{Leading: n[0]}, true
	case "Tr":
		n, ok := d.numbers(1)
		if !ok || n[0] < 0 || n[0] > float32(RenderClip) {
			return nil, false
		}
		return SetRenderingMode{Mode: TextRenderMode(n[0])}, true

	case "w":
		n, ok := d.numbers(1)
		if !ok {
			return nil, false
		}
		return SetLineWidth{Width: n[0]}, true
	case "J":
		n, ok := d.numbers(1)
		if !ok || n[0] < 0 || n[0] > float32(CapSquare) {
			return nil, false
		}
		return SetLineCap{Cap: LineCap(n[0])}, true
	case "j":
		n, ok := d.numbers(1)
		if !ok || n[0] < 0 || n[0] > float32(JoinBevel) {
			return nil, false
		}
		return SetLineJoin{Join: LineJoin(n[0])}, true
	case "M":
		n, ok := d.numbers(1)
		if !ok {
			return nil, false
		}
		return SetMiterLimit{Limit: n[0]}, true
	case "d":
		ops, ok := d.args(operandArray, operandNumber)
		if !ok {
			return nil, false
		}
		array := make([]float32, 0, len(ops[0].arr))
		for _, item := range ops[0].arr {
			if item.kind != operandNumber {
				return nil, false
			}
			array = append(array, item.num)
		}
		return SetDashPattern{Array: array, Phase: ops[1].num}, true

	case "RG", "rg":
		return d.deviceColor(keyword == "RG", color.DeviceRGB{})
	case "K", "k":
		return d.deviceColor(keyword == "K", color.DeviceCMYK{})
	case "G", "g":
		return d.deviceColor(keyword == "G", color.DeviceGray{})
	case "SC", "SCN", "sc", "scn":
		stroke := keyword[0] == 'S'
		space := d.fillSpace
		if stroke {
			space = d.strokeSpace
		}
		if space == nil {
			var ok bool
			if space, ok = color.SpaceForArity(len(d.stack)); !ok {
				return nil, false
			}
		}
		return d.color(stroke, space, len(d.stack))

	case "m":
		n, ok := d.numbers(2)
		if !ok {
			return nil, false
		}
		return MoveTo{X: n[0], Y: n[1]}, true
	case "l":
		n, ok := d.numbers(2)
		if !ok {
			return nil, false
		}
		return LineTo{X: n[0], Y: n[1]}, true
	case "c":
		n, ok := d.numbers(6)
		if !ok {
			return nil, false
		}
		return CurveTo{X1: n[0], Y1: n[1], X2: n[2], Y2: n[3], X3: n[4], Y3: n[5]}, true
	case "v":
		n, ok := d.numbers(4)
		if !ok {
			return nil, false
		}
		return CurveTo{X1: d.current.X, Y1: d.current.Y, X2: n[0], Y2: n[1], X3: n[2], Y3: n[3]}, true
	case "y":
		n, ok := d.numbers(4)
		if !ok {
			return nil, false
		}
		return CurveTo{X1: n[0], Y1: n[1], X2: n[2], Y2: n[3], X3: n[2], Y3: n[3]}, true
	case "re":
		n, ok := d.numbers(4)
		if !ok {
			return nil, false
		}
		x, y, w, h := n[0], n[1], n[2], n[3]
		return d.queue(
			MoveTo{X: x, Y: y},
			LineTo{X: x + w, Y: y},
			LineTo{X: x + w, Y: y + h},
			LineTo{X: x, Y: y + h},
			ClosePath{},
		)

	case "gs":
		ops, ok := d.args(operandName)
		if !ok {
			return nil, false
		}
		return SetGraphicsState{Resource: ops[0].str}, true
	}
	return nil, false
}

// args returns the last len(kinds) operands if their kinds match.
// Extra operands further down the stack are ignored.
func (d *postfixDecoder) args(kinds ...operandKind) ([]operand, bool) {
	if len(d.stack) < len(kinds) {
		return nil, false
	}
	ops := d.stack[len(d.stack)-len(kinds):]
	for i, k := range kinds {
		if ops[i].kind != k {
			return nil, false
		}
	}
	return ops, true
}

// numbers returns the last n operands, which must all be numbers.
func (d *postfixDecoder) numbers(n int) ([]float32, bool) {
	if len(d.stack) < n {
		return nil, false
	}
	out := make([]float32, n)
	for i, opd := range d.stack[len(d.stack)-n:] {
		if opd.kind != operandNumber {
			return nil, false
		}
		out[i] = opd.num
	}
	return out, true
}

// selectSpace handles CS and cs. Names are looked up in the page resources
// first and then as device family names.
func (d *postfixDecoder) selectSpace(stroke bool) {
	ops, ok := d.args(operandName)
	if !ok {
		return
	}
	name := ops[0].str

	var space color.Space
	if d.spaces != nil {
		space, ok = d.spaces.ColorSpace(name)
	} else {
		space, ok = color.SpaceByName(name)
	}
	if !ok {
		d.log.Debugf("unknown color space %q, inferring from operand count", name)
		space = nil
	}

	if stroke {
		d.strokeSpace = space
	} else {
		d.fillSpace = space
	}
}

// deviceColor handles RG, K, G and their fill forms, which also select the
// matching device space.
func (d *postfixDecoder) deviceColor(stroke bool, space color.Space) (Operator, bool) {
	if stroke {
		d.strokeSpace = space
	} else {
		d.fillSpace = space
	}
	return d.color(stroke, space, space.NumComponents())
}

// color resolves the last n numeric operands in space.
func (d *postfixDecoder) color(stroke bool, space color.Space, n int) (Operator, bool) {
	comps, ok := d.numbers(n)
	if !ok {
		return nil, false
	}
	col, err := color.Resolve(space, comps)
	if err != nil {
		d.log.Debugf("%v", err)
		return nil, false
	}
	if stroke {
		return SetStrokeColor{Color: col}, true
	}
	return SetFillColor{Color: col}, true
}
