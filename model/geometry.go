package model

import "math"

// Point represents a 2D point in user space
type Point struct {
	X, Y float32
}

// Matrix represents a 2D affine transformation matrix [a b c d e f]
type Matrix [6]float32

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translation returns the e and f components, the current text position
// when m is a text matrix.
func (m Matrix) Translation() (x, y float32) {
	return m[4], m[5]
}

// HorizontalScale returns |a|. This is an approximation of the horizontal
// scaling of m, not a decomposition: skew and rotation are ignored.
func (m Matrix) HorizontalScale() float32 {
	return float32(math.Abs(float64(m[0])))
}

// IsIdentity returns true if the matrix is an identity matrix
func (m Matrix) IsIdentity() bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 && m[4] == 0 && m[5] == 0
}
