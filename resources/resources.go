package resources

import (
	"sort"

	"github.com/tsawler/pagestream/color"
)

// DefaultFontName is reported for text shown before any font was selected.
const DefaultFontName = "Default"

// Resolver looks up fonts by resource name.
type Resolver interface {
	Font(name string) (*Font, bool)
}

// ColorSpaceResolver looks up named color spaces.
type ColorSpaceResolver interface {
	ColorSpace(name string) (color.Space, bool)
}

// ExtGStateResolver looks up named external graphics states.
type ExtGStateResolver interface {
	ExtGState(name string) (ExtGState, bool)
}

// ExtGState holds the parameters of an external graphics state dictionary
// that the interpreter understands. Nil fields are not set by the dictionary.
type ExtGState struct {
	Name      string
	LineWidth *float32
}

// Table is an immutable resource table.
type Table struct {
	fonts       map[string]*Font
	colorSpaces map[string]color.Space
	extGStates  map[string]ExtGState
}

// TableOption configures a Table during construction.
type TableOption func(*Table)

// WithFont adds a font keyed by its Name.
func WithFont(f *Font) TableOption {
	return func(t *Table) {
		if f != nil {
			t.fonts[f.Name] = f
		}
	}
}

// WithColorSpace adds a named color space.
func WithColorSpace(name string, s color.Space) TableOption {
	return func(t *Table) {
		if s != nil {
			t.colorSpaces[name] = s
		}
	}
}

// WithExtGState adds an external graphics state keyed by its Name.
func WithExtGState(gs ExtGState) TableOption {
	return func(t *Table) {
		t.extGStates[gs.Name] = gs
	}
}

// NewTable creates a resource table.
func NewTable(opts ...TableOption) *Table {
	t := &Table{
		fonts:       make(map[string]*Font),
		colorSpaces: make(map[string]color.Space),
		extGStates:  make(map[string]ExtGState),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Font returns the font registered under name.
func (t *Table) Font(name string) (*Font, bool) {
	if t == nil {
		return nil, false
	}
	f, ok := t.fonts[name]
	return f, ok
}

// ColorSpace returns the color space registered under name. Device family
// names resolve even when not registered.
func (t *Table) ColorSpace(name string) (color.Space, bool) {
	if t != nil {
		if s, ok := t.colorSpaces[name]; ok {
			return s, true
		}
	}
	return color.SpaceByName(name)
}

// ExtGState returns the external graphics state registered under name.
func (t *Table) ExtGState(name string) (ExtGState, bool) {
	if t == nil {
		return ExtGState{}, false
	}
	gs, ok := t.extGStates[name]
	return gs, ok
}

// FontNames returns the registered font names in sorted order.
func (t *Table) FontNames() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.fonts))
	for name := range t.fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
