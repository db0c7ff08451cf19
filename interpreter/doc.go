// Package interpreter runs PDF content streams and collects what they draw.
//
// The interpreter drives a [contentstream.Decoder] over a page's content
// stream, applies each operator to a [graphicsstate.Machine] and emits:
//
//   - a [model.TextObject] for every non-blank string shown inside a
//     BT/ET block, positioned at the translation of the text matrix
//   - a [model.VectorObject] every time a non-empty path is closed with h
//
// # Usage
//
//	in := interpreter.New(table, interpreter.WithOperandOrder(contentstream.PostfixOrder))
//	res := in.Parse(content)
//	for _, t := range res.Text {
//	    fmt.Printf("%q at (%.1f, %.1f)\n", t.Text, t.X, t.Y)
//	}
//
// # Error Handling
//
// Parse always returns a result. Bytes that cannot be decoded are skipped
// and recorded as [Recovery] events. A Q without a matching q leaves the
// state unchanged and is counted in Result.Underflows. Unknown fonts and
// graphics states are ignored. All of these are logged through the
// [trace.Logger] given with [WithLogger].
//
// # Multiple Pages
//
// ParsePages parses several pages at once, each with its own resources,
// and returns the results in page order.
package interpreter
