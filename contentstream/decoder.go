package contentstream

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/tsawler/pagestream/model"
	"github.com/tsawler/pagestream/resources"
	"github.com/tsawler/pagestream/trace"
)

// OperandOrder selects where a decoder looks for an operator's operands.
type OperandOrder int

const (
	// LegacyOrder reads operands after the operator keyword ("m 10 20").
	// This is the historical behavior and the default. It only matches
	// content streams that were normalized to that order.
	LegacyOrder OperandOrder = iota

	// PostfixOrder buffers operands until the keyword that consumes them
	// ("10 20 m"), as content streams are normally written.
	PostfixOrder
)

func (o OperandOrder) String() string {
	switch o {
	case LegacyOrder:
		return "legacy"
	case PostfixOrder:
		return "postfix"
	}
	return fmt.Sprintf("OperandOrder(%d)", int(o))
}

// ParseOperandOrder parses "legacy" or "postfix".
func ParseOperandOrder(s string) (OperandOrder, error) {
	switch s {
	case "legacy", "":
		return LegacyOrder, nil
	case "postfix":
		return PostfixOrder, nil
	}
	return LegacyOrder, errors.Errorf("unknown operand order %q", s)
}

// Decoder turns the bytes under a cursor into operators.
type Decoder interface {
	// Next decodes the operator at the cursor. It returns false when nothing
	// could be decoded; the cursor may have moved, and the caller is expected
	// to skip a byte before trying again. At end of input Next keeps
	// returning false. A decoder may still return operators after the cursor
	// reached the end, so callers stop on a false return at EOF rather than
	// on EOF alone.
	Next() (Operator, bool)
}

// DecoderOption configures a decoder.
type DecoderOption func(*decoderConfig)

type decoderConfig struct {
	spaces resources.ColorSpaceResolver
}

// WithColorSpaces makes the postfix decoder look up the names given to CS
// and cs in r. Without it only device family names are understood. The
// legacy decoder has no color operators and ignores it.
func WithColorSpaces(r resources.ColorSpaceResolver) DecoderOption {
	return func(c *decoderConfig) {
		c.spaces = r
	}
}

// NewDecoder returns a decoder reading from cur in the given operand order.
// A nil logger discards.
func NewDecoder(cur *Cursor, order OperandOrder, log *trace.Logger, opts ...DecoderOption) Decoder {
	var cfg decoderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if order == PostfixOrder {
		return newPostfixDecoder(cur, log, cfg.spaces)
	}
	return &legacyDecoder{cur: cur, log: log}
}

// legacyDecoder dispatches on the first byte of each token and reads any
// operands that follow the keyword.
type legacyDecoder struct {
	cur *Cursor
	log *trace.Logger
}

func (d *legacyDecoder) Next() (Operator, bool) {
	c := d.cur
	c.SkipWhitespace()

	b, ok := c.PeekByte()
	if !ok {
		return nil, false
	}

	switch b {
	case 'q':
		c.Advance()
		return SaveState{}, true
	case 'Q':
		c.Advance()
		return RestoreState{}, true
	case 'B':
		return d.pair('T', BeginText{})
	case 'E':
		return d.pair('T', EndText{})
	case 'T':
		return d.textOperator()
	case '(':
		text, ok := c.ParseTextString()
		if !ok {
			return nil, false
		}
		return ShowText{Text: text}, true
	case '[':
		text, ok := c.ParseTextArray()
		if !ok {
			return nil, false
		}
		return ShowTextAdjusted{Text: text}, true
	case '/':
		// "/F1 12" selects a font without a trailing keyword.
		name, ok := c.ParseName()
		if !ok {
			return nil, false
		}
		c.SkipWhitespace()
		size, ok := c.ParseNumber()
		if !ok {
			return nil, false
		}
		return SetFont{Font: name, Size: size}, true
	case 'm':
		c.Advance()
		p, ok := d.numbers(2)
		if !ok {
			return nil, false
		}
		return MoveTo{X: p[0], Y: p[1]}, true
	case 'l':
		c.Advance()
		p, ok := d.numbers(2)
		if !ok {
			return nil, false
		}
		return LineTo{X: p[0], Y: p[1]}, true
	case 'c':
		c.Advance()
		p, ok := d.numbers(6)
		if !ok {
			return nil, false
		}
		return CurveTo{X1: p[0], Y1: p[1], X2: p[2], Y2: p[3], X3: p[4], Y3: p[5]}, true
	case 'h':
		c.Advance()
		return ClosePath{}, true
	}

	start := c.Pos()
	token := c.readToken()
	d.log.Debugf("unknown operator %q at offset %d (byte %#02x)", token, start, b)
	return nil, false
}

// pair consumes a two-letter keyword whose first byte is at the cursor.
func (d *legacyDecoder) pair(second byte, op Operator) (Operator, bool) {
	d.cur.Advance()
	b, ok := d.cur.PeekByte()
	if !ok || b != second {
		return nil, false
	}
	d.cur.Advance()
	return op, true
}

// textOperator handles Tm and Tf.
func (d *legacyDecoder) textOperator() (Operator, bool) {
	c := d.cur
	c.Advance() // skip 'T'

	b, ok := c.PeekByte()
	if !ok {
		return nil, false
	}

	switch b {
	case 'm':
		c.Advance()
		p, ok := d.numbers(6)
		if !ok {
			return nil, false
		}
		return SetTextMatrix{Matrix: model.Matrix{p[0], p[1], p[2], p[3], p[4], p[5]}}, true
	case 'f':
		c.Advance()
		// The name must follow the keyword directly. Otherwise Tf fails here
		// and "/F1 12" is picked up by the shorthand form.
		name, ok := c.ParseName()
		if !ok {
			return nil, false
		}
		size, ok := c.ParseNumber()
		if !ok {
			return nil, false
		}
		return SetFont{Font: name, Size: size}, true
	}
	return nil, false
}

// numbers reads n numbers in order. A failure leaves the cursor wherever the
// failing number stopped.
func (d *legacyDecoder) numbers(n int) ([]float32, bool) {
	out := make([]float32, n)
	for i := range out {
		v, ok := d.cur.ParseNumber()
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
