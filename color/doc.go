// Package color models content stream colors and color spaces.
//
// Both [Color] and [Space] are closed sets: the unexported marker methods
// keep other packages from adding variants, so a type switch over the
// variants listed here is exhaustive.
//
// Colors:
//   - [RGB] - DeviceRGB components
//   - [CMYK] - DeviceCMYK components
//   - [Gray] - DeviceGray level
//
// Color spaces:
//   - [DeviceRGB], [DeviceCMYK], [DeviceGray]
//   - [Indexed] - a base space plus a lookup table
//   - [Pattern] - pattern fills, which have no plain color
//
// [Resolve] interprets raw numeric operands in a space:
//
//	c, err := color.Resolve(color.DeviceRGB{}, []float32{1, 0, 0})
//
// Components are passed through unclamped; clamping is a renderer concern.
package color
