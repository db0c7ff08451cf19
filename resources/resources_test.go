package resources

import (
	"testing"

	"github.com/tsawler/pagestream/color"
	"golang.org/x/image/font/gofont/goregular"
)

func TestTableFont(t *testing.T) {
	res := NewTable(
		WithFont(&Font{Name: "F1", BaseFont: "Helvetica", Subtype: "Type1"}),
		WithFont(&Font{Name: "F2", BaseFont: "Times-Roman", Subtype: "Type1"}),
		WithFont(nil),
	)

	f, ok := res.Font("F1")
	if !ok {
		t.Fatal("expected F1 to resolve")
	}
	if f.BaseFont != "Helvetica" {
		t.Errorf("expected Helvetica, got %s", f.BaseFont)
	}

	if _, ok := res.Font("F9"); ok {
		t.Error("expected F9 to be unknown")
	}

	names := res.FontNames()
	if len(names) != 2 || names[0] != "F1" || names[1] != "F2" {
		t.Errorf("unexpected font names %v", names)
	}
}

func TestNilTable(t *testing.T) {
	var res *Table
	if _, ok := res.Font("F1"); ok {
		t.Error("expected nil table to resolve nothing")
	}
	if _, ok := res.ExtGState("GS0"); ok {
		t.Error("expected nil table to resolve no ExtGState")
	}
	if s, ok := res.ColorSpace("DeviceRGB"); !ok || s.Name() != "DeviceRGB" {
		t.Error("expected device names to resolve on a nil table")
	}
}

func TestTableColorSpace(t *testing.T) {
	indexed := color.Indexed{Base: color.DeviceGray{}, HiVal: 0, Lookup: []byte{0}}
	res := NewTable(WithColorSpace("CS0", indexed))

	s, ok := res.ColorSpace("CS0")
	if !ok {
		t.Fatal("expected CS0 to resolve")
	}
	if s.Name() != "Indexed" {
		t.Errorf("expected Indexed, got %s", s.Name())
	}

	if _, ok := res.ColorSpace("CS1"); ok {
		t.Error("expected CS1 to be unknown")
	}
}

func TestTableExtGState(t *testing.T) {
	lw := float32(2.5)
	res := NewTable(WithExtGState(ExtGState{Name: "GS0", LineWidth: &lw}))

	gs, ok := res.ExtGState("GS0")
	if !ok {
		t.Fatal("expected GS0 to resolve")
	}
	if gs.LineWidth == nil || *gs.LineWidth != 2.5 {
		t.Errorf("expected line width 2.5, got %v", gs.LineWidth)
	}
}

func TestResolverInterfaces(t *testing.T) {
	var r Resolver = NewTable()
	if _, ok := r.(ColorSpaceResolver); !ok {
		t.Error("expected Table to implement ColorSpaceResolver")
	}
	if _, ok := r.(ExtGStateResolver); !ok {
		t.Error("expected Table to implement ExtGStateResolver")
	}
}

func TestFontFaceFallback(t *testing.T) {
	f := &Font{Name: "F1", BaseFont: "Helvetica"}

	face, err := f.Face()
	if err != nil {
		t.Fatalf("Face failed: %v", err)
	}
	if face.NumGlyphs() == 0 {
		t.Error("expected fallback face to have glyphs")
	}
	if f.Embedded() {
		t.Error("expected font without data not to be embedded")
	}
}

func TestFontFaceEmbedded(t *testing.T) {
	f := &Font{Name: "F1", BaseFont: "GoRegular", Subtype: "TrueType", Data: goregular.TTF}

	if _, err := f.Face(); err != nil {
		t.Fatalf("Face failed: %v", err)
	}
	if !f.Embedded() {
		t.Error("expected TrueType data to be used")
	}
}

func TestFontFaceBadData(t *testing.T) {
	f := &Font{Name: "F1", Subtype: "Type1", Data: []byte("%!PS-AdobeFont-1.0")}

	face, err := f.Face()
	if err != nil {
		t.Fatalf("Face failed: %v", err)
	}
	if face == nil {
		t.Fatal("expected fallback face")
	}
	if f.Embedded() {
		t.Error("expected unparseable data to fall back")
	}
}
