package graphicsstate

import (
	"github.com/tsawler/pagestream/model"
)

// Path accumulates path commands until the path is closed.
//
// Commands are recorded as given. In particular a LineTo without a preceding
// MoveTo is kept, so a path may start with any command.
type Path struct {
	commands []model.PathCommand
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new subpath (m operator).
func (p *Path) MoveTo(x, y float32) {
	p.commands = append(p.commands, model.MoveTo(x, y))
}

// LineTo appends a straight segment (l operator).
func (p *Path) LineTo(x, y float32) {
	p.commands = append(p.commands, model.LineTo(x, y))
}

// CurveTo appends a cubic Bézier segment (c operator).
func (p *Path) CurveTo(x1, y1, x2, y2, x3, y3 float32) {
	p.commands = append(p.commands, model.CurveTo(x1, y1, x2, y2, x3, y3))
}

// ClosePath appends a close command (h operator).
func (p *Path) ClosePath() {
	p.commands = append(p.commands, model.Close())
}

// Commands returns a copy of the recorded commands.
func (p *Path) Commands() []model.PathCommand {
	out := make([]model.PathCommand, len(p.commands))
	copy(out, p.commands)
	return out
}

// Len returns the number of recorded commands.
func (p *Path) Len() int {
	return len(p.commands)
}

// IsEmpty reports whether no command was recorded.
func (p *Path) IsEmpty() bool {
	return len(p.commands) == 0
}

// Clear discards every command, keeping the allocated storage.
func (p *Path) Clear() {
	p.commands = p.commands[:0]
}
