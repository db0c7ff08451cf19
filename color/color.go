package color

import (
	"github.com/tsawler/pagestream/model"
)

// Color is a resolved device color.
type Color interface {
	// Components returns the raw components in operand order.
	Components() []float32
	isColor()
}

// RGB is a DeviceRGB color.
type RGB struct {
	R, G, B float32
}

// CMYK is a DeviceCMYK color.
type CMYK struct {
	C, M, Y, K float32
}

// Gray is a DeviceGray color.
type Gray struct {
	G float32
}

func (c RGB) Components() []float32  { return []float32{c.R, c.G, c.B} }
func (c CMYK) Components() []float32 { return []float32{c.C, c.M, c.Y, c.K} }
func (c Gray) Components() []float32 { return []float32{c.G} }

func (RGB) isColor()  {}
func (CMYK) isColor() {}
func (Gray) isColor() {}

// Black is the initial stroke and fill color.
var Black Color = RGB{0, 0, 0}

// ToRGBA converts an RGB color to an opaque RGBA quadruple. Other colors
// report false; no color-space conversion is attempted.
func ToRGBA(c Color) (model.RGBA, bool) {
	rgb, ok := c.(RGB)
	if !ok {
		return model.RGBA{}, false
	}
	return model.RGBA{rgb.R, rgb.G, rgb.B, 1}, true
}

// Equal reports whether two colors are the same variant with the same components.
func Equal(a, b Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}
