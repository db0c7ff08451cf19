// Package model defines the records produced by a content stream pass.
//
// A single interpreter pass over one page yields two ordered sequences:
//
//   - [TextObject] - a positioned run of text
//   - [VectorObject] - a closed path with resolved stroke and fill colors
//
// Paths are made of [PathCommand] values (MoveTo, LineTo, CurveTo, Close).
// Colors handed to a renderer are [RGBA] quadruples.
//
// # Geometry
//
// [Matrix] is the 6-value affine transform [a b c d e f] used for the text
// matrix. Its e and f components give the current text position:
//
//	m := model.Matrix{1, 0, 0, 1, 72, 720}
//	x, y := m.Translation() // 72, 720
//
// None of the types in this package reference each other or the input
// buffer, so results can be handed to another goroutine freely.
package model
