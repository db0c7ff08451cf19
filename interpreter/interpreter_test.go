package interpreter

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/tsawler/pagestream/color"
	"github.com/tsawler/pagestream/contentstream"
	"github.com/tsawler/pagestream/graphicsstate"
	"github.com/tsawler/pagestream/model"
	"github.com/tsawler/pagestream/resources"
	"github.com/tsawler/pagestream/trace"
)

// recordingSink collects formatted log lines.
type recordingSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *recordingSink) Printf(format string, v ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, fmt.Sprintf(format, v...))
}

func (s *recordingSink) contains(sub string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func parse(content string, opts ...Option) *Result {
	return New(nil, opts...).Parse([]byte(content))
}

func postfix(content string, res resources.Resolver) *Result {
	return New(res, WithOperandOrder(contentstream.PostfixOrder)).Parse([]byte(content))
}

// TestSaveRestoreBalance tests that balanced q/Q restore the initial state
func TestSaveRestoreBalance(t *testing.T) {
	tests := []struct {
		input     string
		balanced  bool
		wantDepth int
	}{
		{"q Q", true, 0},
		{"q q Q Q", true, 0},
		{"q BT Tf /F1 9 Tm 2 0 0 2 1 1 ET Q", true, 0},
		{"q /F1 9", false, 1},
		{"q /F1 9 q Q", false, 1},
	}

	initial := graphicsstate.DefaultState()
	for _, tt := range tests {
		res := parse(tt.input)
		if res.Depth != tt.wantDepth {
			t.Errorf("%q: expected depth %d, got %d", tt.input, tt.wantDepth, res.Depth)
		}
		if got := reflect.DeepEqual(res.State, initial); got != tt.balanced {
			t.Errorf("%q: expected state equal to initial=%v, got %v (%+v)", tt.input, tt.balanced, got, res.State)
		}
	}
}

// TestShowTextInBlock tests text emitted with the default state
func TestShowTextInBlock(t *testing.T) {
	res := parse("BT (Hello) ET")

	if len(res.Text) != 1 {
		t.Fatalf("expected 1 text object, got %d", len(res.Text))
	}
	want := model.TextObject{Text: "Hello", X: 0, Y: 0, FontSize: 12, FontName: resources.DefaultFontName}
	if res.Text[0] != want {
		t.Errorf("expected %+v, got %+v", want, res.Text[0])
	}
}

// TestShowTextOutsideBlock tests that text outside BT/ET is dropped
func TestShowTextOutsideBlock(t *testing.T) {
	tests := []string{"(Hello)", "BT ET (Hello)", "[(Hel) 5 (lo)]"}
	for _, input := range tests {
		if res := parse(input); len(res.Text) != 0 {
			t.Errorf("%q: expected no text objects, got %d", input, len(res.Text))
		}
	}
}

// TestBlankTextSkipped tests that whitespace-only strings emit nothing
func TestBlankTextSkipped(t *testing.T) {
	res := parse("BT (   ) (\t) [( ) 10 ( )] ET")
	if len(res.Text) != 0 {
		t.Errorf("expected no text objects, got %+v", res.Text)
	}
}

// TestTextPosition tests the text matrix and font selection
func TestTextPosition(t *testing.T) {
	res := parse("BT Tf /F1 10 Tm 1 0 0 1 72 720 (Hi) Tm -2 0 0 2 5 6 [(A) -50 (B)] ET")

	want := []model.TextObject{
		{Text: "Hi", X: 72, Y: 720, FontSize: 10, FontName: "F1"},
		{Text: "AB", X: 5, Y: 6, FontSize: 20, FontName: "F1"},
	}
	if !reflect.DeepEqual(res.Text, want) {
		t.Errorf("expected %+v, got %+v", want, res.Text)
	}
}

// TestFontBeforeKeyword tests writer-ordered font selection in legacy order
func TestFontBeforeKeyword(t *testing.T) {
	res := parse("BT /F1 12 Tf (Hello) Tj ET")

	want := []model.TextObject{{Text: "Hello", X: 0, Y: 0, FontSize: 12, FontName: "F1"}}
	if !reflect.DeepEqual(res.Text, want) {
		t.Errorf("expected %+v, got %+v", want, res.Text)
	}
}

// TestPostfixUnsupportedKeywords tests that skipped keywords keep the next operand
func TestPostfixUnsupportedKeywords(t *testing.T) {
	tests := []string{
		"BT 1 0 0 1 5 5 Tm T*(Hi)Tj ET",
		"BT 1 0 0 1 5 5 Tm 0 0 Td(Hi)Tj ET",
	}

	want := []model.TextObject{{Text: "Hi", X: 5, Y: 5, FontSize: 12, FontName: resources.DefaultFontName}}
	for _, input := range tests {
		res := postfix(input, nil)
		if !reflect.DeepEqual(res.Text, want) {
			t.Errorf("%q: expected %+v, got %+v", input, want, res.Text)
		}
		if len(res.Recoveries) != 0 {
			t.Errorf("%q: expected no recoveries, got %+v", input, res.Recoveries)
		}
	}

	res := postfix("S[2]0 d", nil)
	if !reflect.DeepEqual(res.State.Dash, []float32{2}) {
		t.Errorf("expected dash [2], got %v", res.State.Dash)
	}
}

// TestTextMatrixOutsideBlock tests that Tm outside BT/ET is ignored
func TestTextMatrixOutsideBlock(t *testing.T) {
	res := parse("BT ET Tm 1 0 0 1 5 5")
	if !res.State.TextMatrix.IsIdentity() {
		t.Errorf("expected identity text matrix, got %v", res.State.TextMatrix)
	}

	res = parse("BT Tm 1 0 0 1 5 5 ET BT (x) ET")
	if len(res.Text) != 1 || res.Text[0].X != 0 || res.Text[0].Y != 0 {
		t.Errorf("expected BT to reset the text matrix, got %+v", res.Text)
	}
}

// TestClosePathVector tests vector emission on close-path
func TestClosePathVector(t *testing.T) {
	res := parse("m 0 0 l 10 0 l 10 10 h")

	if len(res.Vectors) != 1 {
		t.Fatalf("expected 1 vector object, got %d", len(res.Vectors))
	}
	v := res.Vectors[0]

	want := []model.PathCommandType{model.PathMoveTo, model.PathLineTo, model.PathLineTo, model.PathClose}
	if len(v.Path) != len(want) {
		t.Fatalf("expected %d path commands, got %d", len(want), len(v.Path))
	}
	for i, typ := range want {
		if v.Path[i].Type != typ {
			t.Errorf("command %d: expected %v, got %v", i, typ, v.Path[i].Type)
		}
	}
	if v.StrokeColor != model.OpaqueBlack {
		t.Errorf("expected opaque black stroke, got %v", v.StrokeColor)
	}
	if v.FillColor == nil || *v.FillColor != model.OpaqueBlack {
		t.Errorf("expected black fill, got %v", v.FillColor)
	}
	if v.LineWidth != 1 {
		t.Errorf("expected line width 1, got %f", v.LineWidth)
	}
}

// TestClosePathEmpty tests that closing an empty path emits nothing
func TestClosePathEmpty(t *testing.T) {
	res := parse("h m 0 0 l 1 1 h h")
	if len(res.Vectors) != 1 {
		t.Fatalf("expected 1 vector object, got %d", len(res.Vectors))
	}
	if n := len(res.Vectors[0].Path); n != 3 {
		t.Errorf("expected 3 path commands, got %d", n)
	}
}

// TestRestoreUnderflow tests the policy for Q on an empty stack
func TestRestoreUnderflow(t *testing.T) {
	sink := &recordingSink{}
	res := parse("/F1 10 Q Q", WithLogger(trace.New(trace.LevelWarn, sink)))

	if res.Underflows != 2 {
		t.Errorf("expected 2 underflows, got %d", res.Underflows)
	}
	if res.State.Font != "F1" || res.State.FontSize != 10 {
		t.Errorf("expected state left unchanged, got %q %f", res.State.Font, res.State.FontSize)
	}
	if res.Depth != 0 {
		t.Errorf("expected depth 0, got %d", res.Depth)
	}
	if !sink.contains("underflow") {
		t.Errorf("expected underflow to be logged, got %v", sink.lines)
	}
}

// TestIdempotence tests that parsing twice gives identical output
func TestIdempotence(t *testing.T) {
	content := []byte("q BT Tf /F1 9 Tm 1 0 0 1 10 20 (one) [(tw) 3 (o)] ET m 0 0 l 5 5 c 1 2 3 4 5 6 h Q Q junk (x")
	in := New(nil)

	first := in.Parse(content)
	second := in.Parse(content)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

// TestParseStartsFresh tests that each Parse begins from the default state
func TestParseStartsFresh(t *testing.T) {
	in := New(nil)

	first := in.Parse([]byte("q q /F1 30 Tm 2 0 0 2 9 9 BT m 0 0 l 1 1"))
	if first.Depth != 2 {
		t.Fatalf("expected depth 2, got %d", first.Depth)
	}

	second := in.Parse([]byte("BT (x) ET m 0 0 h"))
	if second.Depth != 0 {
		t.Errorf("expected depth 0, got %d", second.Depth)
	}
	want := []model.TextObject{{Text: "x", X: 0, Y: 0, FontSize: 12, FontName: resources.DefaultFontName}}
	if !reflect.DeepEqual(second.Text, want) {
		t.Errorf("expected %+v, got %+v", want, second.Text)
	}
	if len(second.Vectors) != 1 || len(second.Vectors[0].Path) != 2 {
		t.Errorf("expected one vector of 2 commands, got %+v", second.Vectors)
	}
	if first.State.Font != "F1" {
		t.Errorf("expected first result to keep F1, got %q", first.State.Font)
	}
}

// TestRecoveries tests that skipped bytes are reported
func TestRecoveries(t *testing.T) {
	tests := []struct {
		input string
		want  []Recovery
	}{
		{"q", nil},
		{"xyz q", []Recovery{{Offset: 0, Byte: 'x', Skipped: 4}}},
		{"q BX Q", []Recovery{{Offset: 2, Byte: 'B', Skipped: 2}}},
		{"\fq Q", []Recovery{{Offset: 0, Byte: '\f', Skipped: 3}}},
	}

	for _, tt := range tests {
		res := parse(tt.input)
		if !reflect.DeepEqual(res.Recoveries, tt.want) {
			t.Errorf("%q: expected %+v, got %+v", tt.input, tt.want, res.Recoveries)
		}
	}

	res := parse("xyz BX q")
	if got := res.SkippedBytes(); got != 6 {
		t.Errorf("expected 6 skipped bytes, got %d", got)
	}
}

// TestRecoveryLogged tests that recoveries reach the logger
func TestRecoveryLogged(t *testing.T) {
	sink := &recordingSink{}
	parse("xyz", WithLogger(trace.New(trace.LevelDebug, sink)))
	if !sink.contains("skipped 3 byte(s) at offset 0") {
		t.Errorf("expected recovery in log, got %v", sink.lines)
	}
}

// TestUnknownFont tests that unresolved fonts leave the state unchanged
func TestUnknownFont(t *testing.T) {
	table := resources.NewTable(resources.WithFont(&resources.Font{Name: "F1", BaseFont: "Helvetica"}))
	in := New(table)

	res := in.Parse([]byte("/F1 10 /F2 20 BT (x) ET"))
	if res.State.Font != "F1" || res.State.FontSize != 10 {
		t.Errorf("expected F1 10 to remain, got %q %f", res.State.Font, res.State.FontSize)
	}
	if len(res.Text) != 1 || res.Text[0].FontName != "F1" {
		t.Errorf("expected text in F1, got %+v", res.Text)
	}
}

// TestFontProgramLoaded tests that selecting a font loads its program once
func TestFontProgramLoaded(t *testing.T) {
	table := resources.NewTable(
		resources.WithFont(&resources.Font{Name: "F1", Data: goregular.TTF}),
		resources.WithFont(&resources.Font{Name: "F2", Data: []byte("not a font")}),
		resources.WithFont(&resources.Font{Name: "F3"}),
	)
	sink := &recordingSink{}
	in := New(table, WithLogger(trace.New(trace.LevelWarn, sink)))

	res := in.Parse([]byte("/F1 10 /F2 10 /F3 10 /F2 12"))
	if res.State.Font != "F2" || res.State.FontSize != 12 {
		t.Errorf("expected F2 12, got %q %f", res.State.Font, res.State.FontSize)
	}

	if len(sink.lines) != 1 {
		t.Fatalf("expected 1 warning, got %v", sink.lines)
	}
	if !sink.contains(`font "F2"`) {
		t.Errorf("expected warning for F2, got %v", sink.lines)
	}
}

// TestPostfixMatchesLegacy tests that both operand orders draw the same path
func TestPostfixMatchesLegacy(t *testing.T) {
	legacy := parse("m 0 0 l 10 0 l 10 10 h")
	post := postfix("0 0 m 10 0 l 10 10 l h", nil)

	if !reflect.DeepEqual(legacy.Vectors, post.Vectors) {
		t.Errorf("expected %+v, got %+v", legacy.Vectors, post.Vectors)
	}
}

// TestPostfixPage tests a typical page in writer order
func TestPostfixPage(t *testing.T) {
	content := `q BT /F1 12 Tf 1 0 0 1 50 60 Tm (Hi) Tj ET
1 0 0 RG 0 0 1 rg 2 w 0 0 5 5 re Q`

	res := postfix(content, nil)

	if len(res.Text) != 1 {
		t.Fatalf("expected 1 text object, got %d", len(res.Text))
	}
	want := model.TextObject{Text: "Hi", X: 50, Y: 60, FontSize: 12, FontName: "F1"}
	if res.Text[0] != want {
		t.Errorf("expected %+v, got %+v", want, res.Text[0])
	}

	if len(res.Vectors) != 1 {
		t.Fatalf("expected 1 vector object, got %d", len(res.Vectors))
	}
	v := res.Vectors[0]
	if len(v.Path) != 5 {
		t.Errorf("expected rectangle of 5 commands, got %d", len(v.Path))
	}
	if v.StrokeColor != (model.RGBA{1, 0, 0, 1}) {
		t.Errorf("expected red stroke, got %v", v.StrokeColor)
	}
	if v.FillColor == nil || *v.FillColor != (model.RGBA{0, 0, 1, 1}) {
		t.Errorf("expected blue fill, got %v", v.FillColor)
	}
	if v.LineWidth != 2 {
		t.Errorf("expected line width 2, got %f", v.LineWidth)
	}
	if res.Depth != 0 || res.State.LineWidth != 1 {
		t.Errorf("expected state restored, got depth %d width %f", res.Depth, res.State.LineWidth)
	}
}

// TestNonRGBColors tests the fallback for colors that are not RGB
func TestNonRGBColors(t *testing.T) {
	res := postfix("0 0 0 1 k 0.5 G 0 0 m 1 1 l h", nil)

	if len(res.Vectors) != 1 {
		t.Fatalf("expected 1 vector object, got %d", len(res.Vectors))
	}
	v := res.Vectors[0]
	if v.StrokeColor != model.OpaqueBlack {
		t.Errorf("expected opaque black stroke for gray, got %v", v.StrokeColor)
	}
	if v.FillColor != nil {
		t.Errorf("expected no fill for CMYK, got %v", *v.FillColor)
	}
	if !color.Equal(res.State.FillColor, color.CMYK{K: 1}) {
		t.Errorf("expected CMYK fill in state, got %v", res.State.FillColor)
	}
}

// TestExtGState tests named graphics state parameters
func TestExtGState(t *testing.T) {
	w := float32(3)
	table := resources.NewTable(resources.WithExtGState(resources.ExtGState{Name: "GS1", LineWidth: &w}))

	res := postfix("/GS1 gs 0 0 m 1 0 l h /Nope gs", table)
	if len(res.Vectors) != 1 || res.Vectors[0].LineWidth != 3 {
		t.Fatalf("expected one vector with width 3, got %+v", res.Vectors)
	}
	if res.State.ExtGState != "GS1" {
		t.Errorf("expected GS1 to remain applied, got %q", res.State.ExtGState)
	}

	res = postfix("/GS1 gs", nil)
	if res.State.LineWidth != 1 {
		t.Errorf("expected no change without resources, got %f", res.State.LineWidth)
	}
}

// TestIndexedFill tests color space resources reaching the decoder
func TestIndexedFill(t *testing.T) {
	table := resources.NewTable(resources.WithColorSpace("CS0", color.Indexed{
		Base:   color.DeviceRGB{},
		HiVal:  1,
		Lookup: []byte{255, 0, 0, 0, 0, 255},
	}))

	res := postfix("/CS0 cs 1 sc 0 0 m 1 0 l h", table)
	if len(res.Vectors) != 1 {
		t.Fatalf("expected 1 vector object, got %d", len(res.Vectors))
	}
	if fill := res.Vectors[0].FillColor; fill == nil || *fill != (model.RGBA{0, 0, 1, 1}) {
		t.Errorf("expected blue fill, got %v", fill)
	}
}

// TestParsePages tests that concurrent parsing matches sequential parsing
func TestParsePages(t *testing.T) {
	table := resources.NewTable(resources.WithFont(&resources.Font{Name: "F2"}))
	contents := []string{
		"BT (one) ET",
		"BT /F1 8 (two) ET m 0 0 l 1 1 h",
		"q q Q",
		"",
		"BT /F2 8 /F1 9 (three) ET",
	}

	in := New(nil, WithWorkers(2))
	pages := make([]Page, len(contents))
	for i, c := range contents {
		pages[i] = Page{Number: i + 1, Content: []byte(c)}
	}
	pages[4].Resources = table

	results, err := in.ParsePages(context.Background(), pages)
	if err != nil {
		t.Fatalf("ParsePages failed: %v", err)
	}
	if len(results) != len(pages) {
		t.Fatalf("expected %d results, got %d", len(pages), len(results))
	}

	for i, page := range pages {
		seq := in.withResources(page.Resources)
		if page.Resources == nil {
			seq = in
		}
		want := seq.Parse(page.Content)
		if !reflect.DeepEqual(results[i], want) {
			t.Errorf("page %d: expected %+v, got %+v", page.Number, want, results[i])
		}
	}

	if got := results[4].Text[0].FontName; got != "F2" {
		t.Errorf("expected page resources to reject F1, got font %q", got)
	}
}

// TestParsePagesCanceled tests context cancellation
func TestParsePagesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := New(nil).ParsePages(ctx, []Page{{Number: 1, Content: []byte("q")}})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if errors.Cause(err) != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(results) != 1 || results[0] != nil {
		t.Errorf("expected unparsed page to be nil, got %+v", results)
	}
}

// TestParsePagesEmpty tests an empty page list
func TestParsePagesEmpty(t *testing.T) {
	results, err := New(nil).ParsePages(context.Background(), nil)
	if err != nil || len(results) != 0 {
		t.Errorf("expected no results and no error, got %v %v", results, err)
	}
}
