package contentstream

import (
	"strconv"
)

// Cursor is a forward-only position over an immutable content stream.
// The position never decreases.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor creates a cursor at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.data)
}

// EOF reports whether the cursor has consumed the whole buffer.
func (c *Cursor) EOF() bool {
	return c.pos >= len(c.data)
}

// PeekByte returns the byte at the cursor, or false at end of input.
func (c *Cursor) PeekByte() (byte, bool) {
	if c.pos >= len(c.data) {
		return 0, false
	}
	return c.data[c.pos], true
}

// Advance moves the cursor forward one byte. It does nothing at end of input.
func (c *Cursor) Advance() {
	if c.pos < len(c.data) {
		c.pos++
	}
}

// SkipWhitespace advances past space, tab, LF, CR and NUL.
func (c *Cursor) SkipWhitespace() {
	for c.pos < len(c.data) && isWhitespace(c.data[c.pos]) {
		c.pos++
	}
}

// ParseNumber reads a numeric literal after any leading whitespace.
//
// The grammar is an optional '-' as the very first character, digits, and
// at most one '.'. The scan stops at whitespace or ']'; any other byte stops
// it too once a digit has been seen, and fails it otherwise. A second '.'
// ends the literal, leaving the shorter prefix to be parsed. On failure the
// cursor is not rewound.
func (c *Cursor) ParseNumber() (float32, bool) {
	c.SkipWhitespace()
	start := c.pos
	hasDigit := false
	hasDecimal := false

scan:
	for c.pos < len(c.data) {
		b := c.data[c.pos]
		switch {
		case b >= '0' && b <= '9':
			hasDigit = true
			c.pos++
		case b == '.' && !hasDecimal:
			hasDecimal = true
			c.pos++
		case b == '-' && c.pos == start:
			c.pos++
		case isWhitespace(b) || b == ']':
			break scan
		default:
			if !hasDigit {
				return 0, false
			}
			break scan
		}
	}

	if !hasDigit {
		return 0, false
	}

	v, err := strconv.ParseFloat(string(c.data[start:c.pos]), 32)
	if err != nil {
		// Literals beyond the float32 range become ±Inf.
		if numErr, ok := err.(*strconv.NumError); !ok || numErr.Err != strconv.ErrRange {
			return 0, false
		}
	}
	return float32(v), true
}

// ParseName reads a name token. The cursor must be on '/'. The name runs
// until whitespace or one of '[', ']', '<', '>' and is returned without the
// leading slash.
func (c *Cursor) ParseName() (string, bool) {
	b, ok := c.PeekByte()
	if !ok || b != '/' {
		return "", false
	}
	c.Advance()

	start := c.pos
	for c.pos < len(c.data) {
		b := c.data[c.pos]
		if isWhitespace(b) || b == '[' || b == ']' || b == '<' || b == '>' {
			break
		}
		c.pos++
	}
	return decodeText(c.data[start:c.pos]), true
}

// ParseTextString reads a literal string. The cursor must be on '('.
//
// The escapes \n \r \t \( \) and \\ are decoded; any other escaped byte is
// kept as is, so octal escapes are not interpreted. Parentheses do not nest:
// the first unescaped ')' ends the string. A string left open at end of input
// is returned as if it had been closed.
func (c *Cursor) ParseTextString() (string, bool) {
	raw, ok := c.parseLiteral()
	if !ok {
		return "", false
	}
	return decodeText(raw), true
}

// parseLiteral returns the raw bytes of a literal string.
func (c *Cursor) parseLiteral() ([]byte, bool) {
	b, ok := c.PeekByte()
	if !ok || b != '(' {
		return nil, false
	}
	c.Advance()

	var out []byte
	escaped := false
	for c.pos < len(c.data) {
		b := c.data[c.pos]
		c.pos++

		if escaped {
			switch b {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			default:
				out = append(out, b)
			}
			escaped = false
			continue
		}

		switch b {
		case ')':
			return out, true
		case '\\':
			escaped = true
		default:
			out = append(out, b)
		}
	}
	return out, true
}

// ParseTextArray reads a text array. The cursor must be on '['. The text of
// every literal string up to the closing ']' is concatenated; numeric
// kerning adjustments between strings are skipped and discarded.
func (c *Cursor) ParseTextArray() (string, bool) {
	b, ok := c.PeekByte()
	if !ok || b != '[' {
		return "", false
	}
	c.Advance()

	var out []byte
	for c.pos < len(c.data) {
		switch c.data[c.pos] {
		case ']':
			c.pos++
			return decodeText(out), true
		case '(':
			raw, _ := c.parseLiteral()
			out = append(out, raw...)
		default:
			c.pos++
		}
	}
	return decodeText(out), true
}

// ParseHexString reads a hexadecimal string. The cursor must be on '<'.
// Whitespace between digits is ignored and an odd final digit is padded
// with zero.
func (c *Cursor) ParseHexString() (string, bool) {
	b, ok := c.PeekByte()
	if !ok || b != '<' {
		return "", false
	}
	c.Advance()

	var out []byte
	var hi byte
	half := false
	for c.pos < len(c.data) {
		b := c.data[c.pos]
		c.pos++

		switch {
		case b == '>':
			if half {
				out = append(out, hi<<4)
			}
			return decodeText(out), true
		case isWhitespace(b) || b == '\f':
			continue
		case !isHexDigit(b):
			return "", false
		case half:
			out = append(out, hi<<4|hexValue(b))
			half = false
		default:
			hi = hexValue(b)
			half = true
		}
	}
	return "", false
}

// readToken consumes bytes up to the next whitespace and returns them.
func (c *Cursor) readToken() string {
	start := c.pos
	for c.pos < len(c.data) && !isWhitespace(c.data[c.pos]) {
		c.pos++
	}
	return string(c.data[start:c.pos])
}

// readKeyword consumes a run of keyword bytes: letters, '*', '\'' and '"'.
func (c *Cursor) readKeyword() string {
	start := c.pos
	for c.pos < len(c.data) {
		b := c.data[c.pos]
		if !isLetter(b) && b != '*' && b != '\'' && b != '"' {
			break
		}
		c.pos++
	}
	return string(c.data[start:c.pos])
}

// isWhitespace reports whether b is one of the recognized whitespace bytes.
// Form feed is deliberately absent.
func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == 0
}

// isLetter reports whether c is an ASCII letter.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isHexDigit reports whether c is a hexadecimal digit.
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// hexValue returns the numeric value of a hexadecimal digit.
func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
