package color

import (
	"github.com/pkg/errors"
)

var (
	// ErrComponentCount is returned when the operand count does not match the space.
	ErrComponentCount = errors.New("wrong number of color components")

	// ErrPatternColor is returned when resolving a plain color in the Pattern space.
	ErrPatternColor = errors.New("pattern color space has no plain color")

	// ErrLookupTable is returned when an Indexed lookup table is too short.
	ErrLookupTable = errors.New("indexed lookup table too short")
)

// Space is a color space used to interpret numeric color operands.
type Space interface {
	// Name returns the PDF family name of the space.
	Name() string
	// NumComponents returns the number of operands a color in this space takes.
	NumComponents() int
	isSpace()
}

// DeviceRGB is the DeviceRGB color space.
type DeviceRGB struct{}

// DeviceCMYK is the DeviceCMYK color space.
type DeviceCMYK struct{}

// DeviceGray is the DeviceGray color space.
type DeviceGray struct{}

// Indexed maps a single index through Lookup to a color in Base.
// Lookup holds (HiVal+1) * Base.NumComponents() bytes.
type Indexed struct {
	Base   Space
	HiVal  int
	Lookup []byte
}

// Pattern is the Pattern color space.
type Pattern struct{}

func (DeviceRGB) Name() string  { return "DeviceRGB" }
func (DeviceCMYK) Name() string { return "DeviceCMYK" }
func (DeviceGray) Name() string { return "DeviceGray" }
func (Indexed) Name() string    { return "Indexed" }
func (Pattern) Name() string    { return "Pattern" }

func (DeviceRGB) NumComponents() int  { return 3 }
func (DeviceCMYK) NumComponents() int { return 4 }
func (DeviceGray) NumComponents() int { return 1 }
func (Indexed) NumComponents() int    { return 1 }
func (Pattern) NumComponents() int    { return 0 }

func (DeviceRGB) isSpace()  {}
func (DeviceCMYK) isSpace() {}
func (DeviceGray) isSpace() {}
func (Indexed) isSpace()    {}
func (Pattern) isSpace()    {}

// SpaceForArity returns the device space whose colors take n components.
func SpaceForArity(n int) (Space, bool) {
	switch n {
	case 1:
		return DeviceGray{}, true
	case 3:
		return DeviceRGB{}, true
	case 4:
		return DeviceCMYK{}, true
	}
	return nil, false
}

// SpaceByName returns the device or pattern space for a family name.
// Indexed spaces carry a table and cannot be named alone.
func SpaceByName(name string) (Space, bool) {
	switch name {
	case "DeviceRGB", "RGB", "CalRGB":
		return DeviceRGB{}, true
	case "DeviceCMYK", "CMYK":
		return DeviceCMYK{}, true
	case "DeviceGray", "G", "CalGray":
		return DeviceGray{}, true
	case "Pattern":
		return Pattern{}, true
	}
	return nil, false
}

// Resolve interprets comps as a color in s.
func Resolve(s Space, comps []float32) (Color, error) {
	if s == nil {
		return nil, errors.New("nil color space")
	}
	if _, ok := s.(Pattern); !ok && len(comps) != s.NumComponents() {
		return nil, errors.Wrapf(ErrComponentCount, "%s expects %d, got %d", s.Name(), s.NumComponents(), len(comps))
	}

	switch s := s.(type) {
	case DeviceRGB:
		return RGB{comps[0], comps[1], comps[2]}, nil
	case DeviceCMYK:
		return CMYK{comps[0], comps[1], comps[2], comps[3]}, nil
	case DeviceGray:
		return Gray{comps[0]}, nil
	case Indexed:
		return s.resolve(comps[0])
	case Pattern:
		return nil, ErrPatternColor
	}
	return nil, errors.Errorf("unsupported color space %T", s)
}

// resolve looks up index in the table and scales the base components to [0, 1].
func (s Indexed) resolve(index float32) (Color, error) {
	if s.Base == nil {
		return nil, errors.New("indexed color space without base")
	}
	if _, ok := s.Base.(Indexed); ok {
		return nil, errors.New("indexed color space cannot have an indexed base")
	}

	i := int(index)
	if i < 0 {
		i = 0
	}
	if i > s.HiVal {
		i = s.HiVal
	}

	n := s.Base.NumComponents()
	start := i * n
	if n == 0 || start+n > len(s.Lookup) {
		return nil, errors.Wrapf(ErrLookupTable, "index %d needs %d bytes, have %d", i, start+n, len(s.Lookup))
	}

	comps := make([]float32, n)
	for k := 0; k < n; k++ {
		comps[k] = float32(s.Lookup[start+k]) / 255
	}
	return Resolve(s.Base, comps)
}
