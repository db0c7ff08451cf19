package model

import "fmt"

// RGBA is a renderer-ready color with components in [0, 1].
type RGBA [4]float32

// OpaqueBlack is the stroke color used when the current color is not RGB.
var OpaqueBlack = RGBA{0, 0, 0, 1}

// TextObject is a run of text shown inside a BT/ET block.
type TextObject struct {
	Text     string  `json:"text"`
	X        float32 `json:"x"`
	Y        float32 `json:"y"`
	FontSize float32 `json:"font_size"`
	FontName string  `json:"font_name"`
}

// VectorObject is a path emitted on close-path.
// FillColor is nil when the fill color in effect was not RGB.
type VectorObject struct {
	Path        []PathCommand `json:"path_data"`
	StrokeColor RGBA          `json:"stroke_color"`
	FillColor   *RGBA         `json:"fill_color,omitempty"`
	LineWidth   float32       `json:"line_width"`
}

// PathCommandType identifies a path construction command
type PathCommandType int

const (
	// PathMoveTo starts a new subpath
	PathMoveTo PathCommandType = iota
	// PathLineTo draws a line to a point
	PathLineTo
	// PathCurveTo draws a cubic Bézier curve
	PathCurveTo
	// PathClose closes the current subpath
	PathClose
)

// String returns the content stream keyword of the command type.
func (t PathCommandType) String() string {
	switch t {
	case PathMoveTo:
		return "m"
	case PathLineTo:
		return "l"
	case PathCurveTo:
		return "c"
	case PathClose:
		return "h"
	default:
		return fmt.Sprintf("PathCommandType(%d)", int(t))
	}
}

// PathCommand is a single path construction step.
//
// MoveTo and LineTo use Points[0]. CurveTo uses Points[0] and Points[1] as
// control points and Points[2] as the end point. Close has no points.
type PathCommand struct {
	Type   PathCommandType `json:"type"`
	Points []Point         `json:"points,omitempty"`
}

// MoveTo returns a MoveTo command.
func MoveTo(x, y float32) PathCommand {
	return PathCommand{Type: PathMoveTo, Points: []Point{{X: x, Y: y}}}
}

// LineTo returns a LineTo command.
func LineTo(x, y float32) PathCommand {
	return PathCommand{Type: PathLineTo, Points: []Point{{X: x, Y: y}}}
}

// CurveTo returns a cubic Bézier command.
func CurveTo(x1, y1, x2, y2, x3, y3 float32) PathCommand {
	return PathCommand{
		Type:   PathCurveTo,
		Points: []Point{{X: x1, Y: y1}, {X: x2, Y: y2}, {X: x3, Y: y3}},
	}
}

// Close returns a Close command.
func Close() PathCommand {
	return PathCommand{Type: PathClose}
}
