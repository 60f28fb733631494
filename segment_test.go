package prakt

import (
	"strings"
	"testing"
)

func TestControlTypeValues(t *testing.T) {
	cases := []struct {
		ct   ControlType
		want uint8
	}{
		{ControlBell, 1},
		{ControlCarriageReturn, 2},
		{ControlHome, 3},
		{ControlClear, 4},
		{ControlShowCursor, 5},
		{ControlHideCursor, 6},
		{ControlEnableAltScreen, 7},
		{ControlDisableAltScreen, 8},
		{ControlCursorUp, 9},
		{ControlCursorDown, 10},
		{ControlCursorForward, 11},
		{ControlCursorBackward, 12},
		{ControlCursorMoveToColumn, 13},
		{ControlCursorMoveTo, 14},
		{ControlEraseInLine, 15},
		{ControlSetWindowTitle, 16},
	}
	for _, tc := range cases {
		if uint8(tc.ct) != tc.want {
			t.Fatalf("ControlType %v = %d, want %d", tc.ct, uint8(tc.ct), tc.want)
		}
	}
}

func TestSegmentBasics(t *testing.T) {
	seg := PlainSegment("hello")
	if seg.Text != "hello" {
		t.Fatalf("Text = %q", seg.Text)
	}
	if seg.IsControl() {
		t.Fatal("plain segment reports control")
	}
	if got := seg.CellLength(); got != 5 {
		t.Fatalf("CellLength = %d, want 5", got)
	}
	if seg.IsEmpty() {
		t.Fatal("non-empty segment reports empty")
	}

	if got := LineSegment().Text; got != "\n" {
		t.Fatalf("LineSegment text = %q", got)
	}

	styled := NewSegment("hello", NewStyle().Bold())
	if !styled.Style.Attributes().Contains(AttrBold) {
		t.Fatal("style lost")
	}
}

func TestControlSegment(t *testing.T) {
	seg := ControlSegment(NewControlCode(ControlBell))
	if !seg.IsControl() {
		t.Fatal("control segment not reported")
	}
	if got := seg.CellLength(); got != 0 {
		t.Fatalf("CellLength = %d, want 0", got)
	}
	if seg.IsEmpty() {
		t.Fatal("control segment reports empty")
	}

	withParams := NewControlCode(ControlCursorMoveTo, 3, 7)
	if withParams.Type != ControlCursorMoveTo || len(withParams.Params) != 2 {
		t.Fatalf("control code = %+v", withParams)
	}
}

func TestSegmentSplitAtCell(t *testing.T) {
	seg := PlainSegment("hello world")
	left, right := seg.SplitAtCell(5)
	if left.Text != "hello" || right.Text != " world" {
		t.Fatalf("split = (%q, %q)", left.Text, right.Text)
	}

	// A wide rune straddling the cut stays on the right.
	cjk := PlainSegment("日本語")
	left, right = cjk.SplitAtCell(3)
	if left.Text != "日" || right.Text != "本語" {
		t.Fatalf("split = (%q, %q)", left.Text, right.Text)
	}

	control := ControlSegment(NewControlCode(ControlBell))
	left, right = control.SplitAtCell(3)
	if !left.IsControl() {
		t.Fatal("left side lost control codes")
	}
	if !right.IsEmpty() {
		t.Fatalf("right side = %+v, want empty", right)
	}
}

func TestSegmentSplitKeepsStyle(t *testing.T) {
	style := NewStyle().Bold()
	left, right := NewSegment("hello world", style).SplitAtCell(5)
	if left.Style != style || right.Style != style {
		t.Fatal("style lost in split")
	}
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines([]Segment{
		PlainSegment("line1\nline2"),
		PlainSegment("\nline3"),
	})
	if len(lines) != 3 {
		t.Fatalf("len = %d, want 3", len(lines))
	}
	if lines[0][0].Text != "line1" {
		t.Fatalf("lines[0] = %q", lines[0][0].Text)
	}
	if lines[2][0].Text != "line3" {
		t.Fatalf("lines[2] = %q", lines[2][0].Text)
	}
}

func TestSplitLinesTrailingNewline(t *testing.T) {
	lines := SplitLines([]Segment{PlainSegment("text\n")})
	if len(lines) != 2 {
		t.Fatalf("len = %d, want 2", len(lines))
	}
	if len(lines[1]) != 0 {
		t.Fatalf("last line = %+v, want empty", lines[1])
	}
}

func TestSplitLinesControlStays(t *testing.T) {
	lines := SplitLines([]Segment{
		PlainSegment("text"),
		ControlSegment(NewControlCode(ControlBell)),
	})
	if len(lines) != 1 {
		t.Fatalf("len = %d, want 1", len(lines))
	}
	if len(lines[0]) != 2 || !lines[0][1].IsControl() {
		t.Fatalf("line = %+v", lines[0])
	}
}

func TestAdjustLineLength(t *testing.T) {
	padded := AdjustLineLength([]Segment{PlainSegment("hi")}, 5, NullStyle(), true)
	if got := LineLength(padded); got != 5 {
		t.Fatalf("padded length = %d, want 5", got)
	}

	unpadded := AdjustLineLength([]Segment{PlainSegment("hi")}, 5, NullStyle(), false)
	if got := LineLength(unpadded); got != 2 {
		t.Fatalf("unpadded length = %d, want 2", got)
	}

	truncated := AdjustLineLength([]Segment{PlainSegment("hello world")}, 5, NullStyle(), false)
	if got := LineLength(truncated); got != 5 {
		t.Fatalf("truncated length = %d, want 5", got)
	}

	withControl := AdjustLineLength([]Segment{
		ControlSegment(NewControlCode(ControlBell)),
		PlainSegment("text"),
	}, 2, NullStyle(), false)
	if !withControl[0].IsControl() {
		t.Fatal("control segment dropped by truncation")
	}
	if got := LineLength(withControl); got != 2 {
		t.Fatalf("length = %d, want 2", got)
	}
}

func TestSimplify(t *testing.T) {
	bold := NewStyle().Bold()

	merged := Simplify([]Segment{
		NewSegment("hello", bold),
		NewSegment(" ", bold),
		NewSegment("world", bold),
	})
	if len(merged) != 1 || merged[0].Text != "hello world" {
		t.Fatalf("merged = %+v", merged)
	}

	red := NewStyle().WithColor(ColorFromANSI(1))
	kept := Simplify([]Segment{
		NewSegment("a", bold),
		NewSegment("b", red),
	})
	if len(kept) != 2 {
		t.Fatalf("kept = %+v", kept)
	}

	withControl := Simplify([]Segment{
		NewSegment("a", bold),
		ControlSegment(NewControlCode(ControlBell)),
		NewSegment("b", bold),
	})
	if len(withControl) != 3 || !withControl[1].IsControl() {
		t.Fatalf("withControl = %+v", withControl)
	}

	dropped := Simplify([]Segment{
		NewSegment("a", bold),
		NewSegment("", bold),
		NewSegment("b", bold),
	})
	if len(dropped) != 1 || dropped[0].Text != "ab" {
		t.Fatalf("dropped = %+v", dropped)
	}
}

func TestDivide(t *testing.T) {
	whole := Divide([]Segment{PlainSegment("hello")}, nil)
	if len(whole) != 1 {
		t.Fatalf("no cuts = %d groups, want 1", len(whole))
	}

	two := Divide([]Segment{PlainSegment("hello world")}, []int{5})
	if len(two) != 2 {
		t.Fatalf("len = %d, want 2", len(two))
	}
	if two[0][0].Text != "hello" || two[1][0].Text != " world" {
		t.Fatalf("divide = %q, %q", two[0][0].Text, two[1][0].Text)
	}

	three := Divide([]Segment{PlainSegment("abcdefghij")}, []int{3, 6})
	if len(three) != 3 {
		t.Fatalf("len = %d, want 3", len(three))
	}
	if three[0][0].Text != "abc" || three[1][0].Text != "def" || three[2][0].Text != "ghij" {
		t.Fatalf("divide = %q, %q, %q", three[0][0].Text, three[1][0].Text, three[2][0].Text)
	}

	cjk := Divide([]Segment{PlainSegment("日本語")}, []int{2})
	if cjk[0][0].Text != "日" || cjk[1][0].Text != "本語" {
		t.Fatalf("cjk divide = %q, %q", cjk[0][0].Text, cjk[1][0].Text)
	}

	withControl := Divide([]Segment{
		ControlSegment(NewControlCode(ControlBell)),
		PlainSegment("abc"),
	}, []int{2})
	if !withControl[0][0].IsControl() {
		t.Fatal("control segment moved out of its division")
	}
}

func TestApplyStyle(t *testing.T) {
	red := NewStyle().WithColor(ColorFromANSI(1))
	bold := NewStyle().Bold()

	out := ApplyStyle([]Segment{NewSegment("a", red)}, bold, NullStyle())
	if !out[0].Style.Attributes().Contains(AttrBold) {
		t.Fatal("underlay style lost")
	}
	fg, ok := out[0].Style.Color()
	if !ok || fg.Number != 1 {
		t.Fatalf("fg = %+v, %v", fg, ok)
	}

	// Post style overrides the segment's own properties.
	blue := NewStyle().WithColor(ColorFromANSI(4))
	out = ApplyStyle([]Segment{NewSegment("a", red)}, NullStyle(), blue)
	fg, ok = out[0].Style.Color()
	if !ok || fg.Number != 4 {
		t.Fatalf("fg = %+v, %v, want number 4", fg, ok)
	}

	control := ControlSegment(NewControlCode(ControlBell))
	out = ApplyStyle([]Segment{control}, bold, blue)
	if !out[0].Style.IsNull() {
		t.Fatal("control segment gained a style")
	}
}

func TestAlignTop(t *testing.T) {
	aligned := AlignTop([][]Segment{{PlainSegment("hi")}}, 5, 3, NullStyle())
	if len(aligned) != 3 {
		t.Fatalf("len = %d, want 3", len(aligned))
	}
	if aligned[0][0].Text != "hi" {
		t.Fatalf("first line = %q", aligned[0][0].Text)
	}
	for i, line := range aligned {
		if got := LineLength(line); got != 5 {
			t.Fatalf("line %d length = %d, want 5", i, got)
		}
	}
}

func TestAlignBottom(t *testing.T) {
	aligned := AlignBottom([][]Segment{{PlainSegment("hi")}}, 5, 3, NullStyle())
	if len(aligned) != 3 {
		t.Fatalf("len = %d, want 3", len(aligned))
	}
	if !strings.HasPrefix(aligned[2][0].Text, "hi") {
		t.Fatalf("content not at bottom: %q", aligned[2][0].Text)
	}
}

func TestAlignMiddle(t *testing.T) {
	aligned := AlignMiddle([][]Segment{{PlainSegment("hi")}}, 5, 3, NullStyle())
	if len(aligned) != 3 {
		t.Fatalf("len = %d, want 3", len(aligned))
	}
	if !strings.HasPrefix(aligned[1][0].Text, "hi") {
		t.Fatalf("content not in middle: %q", aligned[1][0].Text)
	}

	// Uneven padding puts the extra blank line below.
	aligned = AlignMiddle([][]Segment{{PlainSegment("hi")}}, 5, 4, NullStyle())
	if !strings.HasPrefix(aligned[1][0].Text, "hi") {
		t.Fatalf("content misplaced: %+v", aligned)
	}
}

func TestLineLength(t *testing.T) {
	line := []Segment{
		PlainSegment("ab"),
		ControlSegment(NewControlCode(ControlBell)),
		PlainSegment("日本"),
	}
	if got := LineLength(line); got != 6 {
		t.Fatalf("LineLength = %d, want 6", got)
	}
}
