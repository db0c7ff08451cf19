// Package graphicsstate tracks the PDF graphics state while a content
// stream is interpreted.
//
// [State] is a plain value holding the text state (font, size, text
// matrix, spacing), the stroke and fill colors and the line attributes.
// [Machine] owns the current state and the stack of saved states:
//
//	m := graphicsstate.NewMachine()
//	m.Save()                 // q
//	m.SetFont("F1", 12)      // Tf
//	if err := m.Restore(); err != nil { // Q
//	    // ErrStackUnderflow: nothing was saved, the state is unchanged
//	}
//
// Setters only touch the current state. Saved states are copies and are
// never modified until they are restored.
//
// # Paths
//
// [Path] accumulates path construction commands (m, l, c, h) and tracks the
// current point. It does not paint; the caller decides when a path is
// complete.
package graphicsstate
