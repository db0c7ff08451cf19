// Package contentstream decodes PDF page content streams into operators.
//
// A content stream is a flat byte sequence of operands and operator keywords.
// This package provides a forward-only [Cursor] with the token primitives
// (numbers, names, literal and hex strings, text arrays) and a [Decoder]
// that yields one [Operator] per call.
//
// # Decoding
//
//	cur := contentstream.NewCursor(data)
//	dec := contentstream.NewDecoder(cur, contentstream.LegacyOrder, nil)
//	for {
//	    op, ok := dec.Next()
//	    if !ok {
//	        if cur.EOF() {
//	            break
//	        }
//	        cur.Advance() // resynchronize
//	        continue
//	    }
//	    fmt.Println(op.Name())
//	}
//
// # Operand Order
//
// Two decoders are available:
//
//   - [LegacyOrder] reads operands after the keyword ("Tm 1 0 0 1 72 720").
//     Only q, Q, BT, ET, Tm, Tf, m, l, c, h, literal strings, text arrays and
//     the "/F1 12" font shorthand are recognized.
//   - [PostfixOrder] buffers operands until the keyword that consumes them
//     ("1 0 0 1 72 720 Tm"), as PDF writers emit them. It also understands
//     the spacing, line style, color and rectangle operators.
//
// # Operators
//
// [Operator] is a closed set. Use a type switch to handle the variants:
//
//	switch op := op.(type) {
//	case contentstream.ShowText:
//	    fmt.Println(op.Text)
//	case contentstream.MoveTo:
//	    fmt.Println(op.X, op.Y)
//	}
//
// # Text Decoding
//
// String bytes map one to one onto ISO-8859-1 runes. Strings beginning with
// the UTF-16BE byte order mark are decoded as UTF-16.
package contentstream
