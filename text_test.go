package prakt

import (
	"strings"
	"testing"
)

func TestNewText(t *testing.T) {
	text := NewText("hello")
	if text.Plain() != "hello" {
		t.Fatalf("Plain() = %q, want %q", text.Plain(), "hello")
	}
	if text.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", text.Len())
	}
	if text.IsEmpty() {
		t.Fatal("IsEmpty() = true for non-empty text")
	}
	if text.End != "\n" || text.TabSize != 8 {
		t.Fatalf("defaults = (%q, %d), want (\"\\n\", 8)", text.End, text.TabSize)
	}
}

func TestNewStyledText(t *testing.T) {
	text := NewStyledText("hello", NewStyle().Bold())
	spans := text.Spans()
	if len(spans) != 1 {
		t.Fatalf("len(Spans()) = %d, want 1", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != 5 {
		t.Fatalf("span = (%d, %d), want (0, 5)", spans[0].Start, spans[0].End)
	}

	empty := NewStyledText("", NewStyle().Bold())
	if len(empty.Spans()) != 0 {
		t.Fatalf("empty styled text has %d spans, want 0", len(empty.Spans()))
	}
}

func TestTextAppend(t *testing.T) {
	text := NewText("hello ")
	text.AppendStyled("world", NewStyle().Bold())
	if text.Plain() != "hello world" {
		t.Fatalf("Plain() = %q, want %q", text.Plain(), "hello world")
	}
	spans := text.Spans()
	if len(spans) != 1 || spans[0].Start != 6 || spans[0].End != 11 {
		t.Fatalf("spans = %v, want one span (6, 11)", spans)
	}

	other := NewStyledText("!", NewStyle().Italic())
	text.AppendText(other)
	spans = text.Spans()
	if len(spans) != 2 || spans[1].Start != 11 || spans[1].End != 12 {
		t.Fatalf("spans after AppendText = %v, want second span (11, 12)", spans)
	}
}

func TestTextStylizeClamps(t *testing.T) {
	text := NewText("hello")
	text.Stylize(2, 100, NewStyle().Bold())
	spans := text.Spans()
	if len(spans) != 1 || spans[0].End != 5 {
		t.Fatalf("spans = %v, want one span ending at 5", spans)
	}

	text.Stylize(10, 20, NewStyle().Bold())
	if len(text.Spans()) != 1 {
		t.Fatal("out-of-range stylize added a span")
	}
}

func TestTextSlice(t *testing.T) {
	text := NewText("hello world")
	text.Stylize(0, 5, NewStyle().Bold())
	text.Stylize(6, 11, NewStyle().Italic())

	slice := text.Slice(3, 8)
	if slice.Plain() != "lo wo" {
		t.Fatalf("Plain() = %q, want %q", slice.Plain(), "lo wo")
	}
	spans := slice.Spans()
	if len(spans) != 2 {
		t.Fatalf("len(spans) = %d, want 2", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != 2 {
		t.Fatalf("first span = (%d, %d), want (0, 2)", spans[0].Start, spans[0].End)
	}
	if spans[1].Start != 3 || spans[1].End != 5 {
		t.Fatalf("second span = (%d, %d), want (3, 5)", spans[1].Start, spans[1].End)
	}
}

func TestTextSplitLines(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{name: "three lines", text: "line1\nline2\nline3", want: []string{"line1", "line2", "line3"}},
		{name: "trailing newline yields empty line", text: "hello\n", want: []string{"hello", ""}},
		{name: "empty text is one empty line", text: "", want: []string{""}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			lines := NewText(tc.text).SplitLines()
			if len(lines) != len(tc.want) {
				t.Fatalf("len(lines) = %d, want %d", len(lines), len(tc.want))
			}
			for i, line := range lines {
				if line.Plain() != tc.want[i] {
					t.Fatalf("lines[%d] = %q, want %q", i, line.Plain(), tc.want[i])
				}
			}
		})
	}
}

func TestTextSplitLinesKeepsSpans(t *testing.T) {
	text := NewText("ab\ncd")
	text.Stylize(0, 5, NewStyle().Bold())
	lines := text.SplitLines()
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	first, second := lines[0].Spans(), lines[1].Spans()
	if len(first) != 1 || first[0].Start != 0 || first[0].End != 2 {
		t.Fatalf("first line spans = %v, want (0, 2)", first)
	}
	if len(second) != 1 || second[0].Start != 0 || second[0].End != 2 {
		t.Fatalf("second line spans = %v, want (0, 2)", second)
	}
}

func TestTextDivide(t *testing.T) {
	text := NewText("hello world")
	parts := text.Divide([]int{5})
	if len(parts) != 2 {
		t.Fatalf("len(parts) = %d, want 2", len(parts))
	}
	if parts[0].Plain() != "hello" || parts[1].Plain() != " world" {
		t.Fatalf("parts = %q, %q, want %q, %q", parts[0].Plain(), parts[1].Plain(), "hello", " world")
	}

	whole := text.Divide(nil)
	if len(whole) != 1 || whole[0].Plain() != "hello world" {
		t.Fatalf("Divide(nil) = %v, want the whole text", whole)
	}
}

func TestTextExpandTabs(t *testing.T) {
	expanded := NewText("a\tb").ExpandTabs(8)
	if expanded.Plain() != "a       b" {
		t.Fatalf("Plain() = %q, want %q", expanded.Plain(), "a       b")
	}

	multi := NewText("ab\tc\nd\te").ExpandTabs(4)
	if multi.Plain() != "ab  c\nd   e" {
		t.Fatalf("Plain() = %q, want %q", multi.Plain(), "ab  c\nd   e")
	}
}

func TestTextExpandTabsRemapsSpans(t *testing.T) {
	text := NewText("a\tb")
	text.Stylize(2, 3, NewStyle().Bold())
	expanded := text.ExpandTabs(8)
	spans := expanded.Spans()
	if len(spans) != 1 || spans[0].Start != 8 || spans[0].End != 9 {
		t.Fatalf("spans = %v, want one span (8, 9)", spans)
	}
}

func TestTextTruncate(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		maxWidth int
		overflow Overflow
		pad      bool
		want     string
	}{
		{name: "fits untouched", text: "hi", maxWidth: 5, overflow: OverflowCrop, want: "hi"},
		{name: "fits padded", text: "hi", maxWidth: 5, overflow: OverflowCrop, pad: true, want: "hi   "},
		{name: "crop drops overflow", text: "hello world", maxWidth: 5, overflow: OverflowCrop, want: "hello"},
		{name: "ellipsis takes one cell", text: "hello world", maxWidth: 8, overflow: OverflowEllipsis, want: "hello w\u2026"},
		{name: "ellipsis at width one", text: "hello", maxWidth: 1, overflow: OverflowEllipsis, want: "\u2026"},
		{name: "ellipsis at width zero", text: "hello", maxWidth: 0, overflow: OverflowEllipsis, want: ""},
		{name: "ignore leaves overflow", text: "hello world", maxWidth: 5, overflow: OverflowIgnore, want: "hello world"},
		{name: "crop respects wide runes", text: "日本語", maxWidth: 3, overflow: OverflowCrop, want: "日"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			text := NewText(tc.text)
			text.Truncate(tc.maxWidth, tc.overflow, tc.pad)
			if text.Plain() != tc.want {
				t.Fatalf("Truncate(%d) = %q, want %q", tc.maxWidth, text.Plain(), tc.want)
			}
			if tc.overflow == OverflowEllipsis && text.CellLen() > tc.maxWidth {
				t.Fatalf("CellLen() = %d exceeds max width %d", text.CellLen(), tc.maxWidth)
			}
		})
	}
}

func TestTextPad(t *testing.T) {
	cases := []struct {
		name  string
		align Justify
		width int
		want  string
	}{
		{name: "left", align: JustifyLeft, width: 5, want: "hi   "},
		{name: "right", align: JustifyRight, width: 5, want: "   hi"},
		{name: "center odd extra goes right", align: JustifyCenter, width: 5, want: " hi  "},
		{name: "center even", align: JustifyCenter, width: 6, want: "  hi  "},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			text := NewText("hi")
			text.Pad(tc.width, tc.align)
			if text.Plain() != tc.want {
				t.Fatalf("Pad(%d, %v) = %q, want %q", tc.width, tc.align, text.Plain(), tc.want)
			}
		})
	}
}

func TestTextPadKeepsSpans(t *testing.T) {
	text := NewStyledText("hi", NewStyle().Bold())
	text.Pad(5, JustifyRight)
	spans := text.Spans()
	if len(spans) != 1 || spans[0].Start != 3 || spans[0].End != 5 {
		t.Fatalf("spans = %v, want one span (3, 5)", spans)
	}
}

func TestTextStrip(t *testing.T) {
	stripped := NewText("  hello  ").Strip()
	if stripped.Plain() != "hello" {
		t.Fatalf("Strip() = %q, want %q", stripped.Plain(), "hello")
	}

	blank := NewText("   ").Strip()
	if !blank.IsEmpty() {
		t.Fatalf("Strip() of whitespace = %q, want empty", blank.Plain())
	}
}

func TestTextCaseMapping(t *testing.T) {
	text := NewText("stra\u00dfe")
	text.Stylize(4, 6, NewStyle().Bold())

	upper := text.ToUpper()
	if upper.Plain() != "STRASSE" {
		t.Fatalf("ToUpper() = %q, want %q", upper.Plain(), "STRASSE")
	}
	spans := upper.Spans()
	if len(spans) != 1 || spans[0].Start != 4 || spans[0].End != 6 {
		t.Fatalf("spans = %v, want one span (4, 6)", spans)
	}

	lower := NewText("HELLO").ToLower()
	if lower.Plain() != "hello" {
		t.Fatalf("ToLower() = %q, want %q", lower.Plain(), "hello")
	}
}

func TestTextHighlightRegex(t *testing.T) {
	text := NewText("abc 123 def 45")
	if err := text.HighlightRegex(`\d+`, NewStyle().Bold()); err != nil {
		t.Fatalf("HighlightRegex: %v", err)
	}
	spans := text.Spans()
	if len(spans) != 2 {
		t.Fatalf("len(spans) = %d, want 2", len(spans))
	}
	if spans[0].Start != 4 || spans[0].End != 7 || spans[1].Start != 12 || spans[1].End != 14 {
		t.Fatalf("spans = %v, want (4, 7) and (12, 14)", spans)
	}

	if err := NewText("x").HighlightRegex(`(`, NewStyle()); err == nil {
		t.Fatal("HighlightRegex accepted an invalid pattern")
	}
}

func TestTextHighlightWords(t *testing.T) {
	text := NewText("Hello World")
	text.HighlightWords([]string{"world"}, NewStyle().Bold(), false)
	spans := text.Spans()
	if len(spans) != 1 || spans[0].Start != 6 || spans[0].End != 11 {
		t.Fatalf("spans = %v, want one span (6, 11)", spans)
	}

	strict := NewText("Hello World")
	strict.HighlightWords([]string{"world"}, NewStyle().Bold(), true)
	if len(strict.Spans()) != 0 {
		t.Fatalf("case-sensitive match found %v, want none", strict.Spans())
	}
}

func TestTextJoin(t *testing.T) {
	sep := NewText(", ")
	joined := sep.Join([]*Text{NewText("a"), NewText("b"), NewText("c")})
	if joined.Plain() != "a, b, c" {
		t.Fatalf("Join() = %q, want %q", joined.Plain(), "a, b, c")
	}
}

func TestAssembleText(t *testing.T) {
	text := AssembleText(
		TextPiece{Text: "hello "},
		TextPiece{Text: "world", Style: NewStyle().Bold()},
	)
	if text.Plain() != "hello world" {
		t.Fatalf("Plain() = %q, want %q", text.Plain(), "hello world")
	}
	spans := text.Spans()
	if len(spans) != 1 || spans[0].Start != 6 || spans[0].End != 11 {
		t.Fatalf("spans = %v, want one span (6, 11)", spans)
	}
}

func TestTextRender(t *testing.T) {
	text := NewText("hello world")
	text.Stylize(0, 5, NewStyle().Bold())

	segments := text.Render("\n")
	if len(segments) != 3 {
		t.Fatalf("len(segments) = %d, want 3", len(segments))
	}
	if segments[0].Text != "hello" || segments[0].Style != NewStyle().Bold() {
		t.Fatalf("segments[0] = %+v, want bold %q", segments[0], "hello")
	}
	if segments[1].Text != " world" || segments[1].Style != (Style{}) {
		t.Fatalf("segments[1] = %+v, want unstyled %q", segments[1], " world")
	}
	if segments[2].Text != "\n" {
		t.Fatalf("segments[2].Text = %q, want newline", segments[2].Text)
	}
}

func TestTextRenderOverlap(t *testing.T) {
	text := NewText("hello world")
	text.Stylize(0, 11, NewStyle().Bold())
	text.Stylize(6, 11, NewStyle().WithColor(ColorFromANSI(1)))

	segments := text.Render("")
	if len(segments) != 2 {
		t.Fatalf("len(segments) = %d, want 2", len(segments))
	}
	if segments[0].Style != NewStyle().Bold() {
		t.Fatalf("segments[0].Style = %v, want bold", segments[0].Style)
	}
	want := NewStyle().Bold().WithColor(ColorFromANSI(1))
	if segments[1].Style != want {
		t.Fatalf("segments[1].Style = %v, want bold red", segments[1].Style)
	}
}

func TestTextRenderLaterSpanWins(t *testing.T) {
	text := NewText("hello world")
	text.Stylize(4, 11, NewStyle().WithColor(ColorFromANSI(1)))
	text.Stylize(0, 8, NewStyle().WithColor(ColorFromANSI(4)))

	segments := text.Render("")
	if len(segments) != 3 {
		t.Fatalf("len(segments) = %d, want 3", len(segments))
	}
	if fg, ok := segments[1].Style.Color(); !ok || fg.Number != 4 {
		t.Fatalf("overlap color = (%v, %t), want the later span's blue", fg, ok)
	}
	if fg, ok := segments[2].Style.Color(); !ok || fg.Number != 1 {
		t.Fatalf("tail color = (%v, %t), want red", fg, ok)
	}
}

func TestTextRenderEmpty(t *testing.T) {
	if segments := NewText("").Render(""); len(segments) != 0 {
		t.Fatalf("Render() of empty text = %v, want none", segments)
	}
	segments := NewText("").Render("\n")
	if len(segments) != 1 || segments[0].Text != "\n" {
		t.Fatalf("Render(\"\\n\") = %v, want single newline segment", segments)
	}
}

func TestTextWrap(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "fits on one line", text: "short", width: 10, want: []string{"short"}},
		{name: "breaks at word starts", text: "foo bar baz", width: 4, want: []string{"foo ", "bar ", "baz"}},
		{name: "hard breaks long words", text: "aaaaaa", width: 2, want: []string{"aa", "aa", "aa"}},
		{name: "hard breaks respect wide runes", text: "日本語", width: 2, want: []string{"日", "本", "語"}},
		{name: "zero width", text: "hello", width: 0, want: []string{""}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			lines := NewText(tc.text).Wrap(tc.width)
			if len(lines) != len(tc.want) {
				t.Fatalf("len(lines) = %d, want %d", len(lines), len(tc.want))
			}
			for i, line := range lines {
				if line.Plain() != tc.want[i] {
					t.Fatalf("lines[%d] = %q, want %q", i, line.Plain(), tc.want[i])
				}
			}
		})
	}
}

func TestTextWrapReconstructs(t *testing.T) {
	const original = "the quick brown fox jumps over the lazy dog"
	lines := NewText(original).Wrap(10)
	var joined strings.Builder
	for _, line := range lines {
		joined.WriteString(line.Plain())
	}
	if joined.String() != original {
		t.Fatalf("joined lines = %q, want %q", joined.String(), original)
	}
}

func TestTextWrapKeepsSpans(t *testing.T) {
	text := NewText("foo bar")
	text.Stylize(0, 7, NewStyle().Bold())
	lines := text.Wrap(4)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	first, second := lines[0].Spans(), lines[1].Spans()
	if len(first) != 1 || first[0].End != 4 {
		t.Fatalf("first line spans = %v, want (0, 4)", first)
	}
	if len(second) != 1 || second[0].End != 3 {
		t.Fatalf("second line spans = %v, want (0, 3)", second)
	}
}

func TestTextWrapNoWrap(t *testing.T) {
	text := NewText("hello world wide")
	text.NoWrap = true
	lines := text.Wrap(5)
	if len(lines) != 1 || lines[0].Plain() != "hello world wide" {
		t.Fatalf("Wrap() with NoWrap = %v, want the whole text", lines)
	}
}

func TestTextWrapEllipsis(t *testing.T) {
	text := NewText("hello world")
	text.Overflow = OverflowEllipsis
	lines := text.Wrap(7)
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	if lines[0].Plain() != "hello \u2026" {
		t.Fatalf("lines[0] = %q, want %q", lines[0].Plain(), "hello \u2026")
	}
}

func TestJustifyLines(t *testing.T) {
	cases := []struct {
		name   string
		method Justify
		lines  []string
		width  int
		want   []string
	}{
		{name: "left", method: JustifyLeft, lines: []string{"hi"}, width: 5, want: []string{"hi   "}},
		{name: "right", method: JustifyRight, lines: []string{"hi"}, width: 5, want: []string{"   hi"}},
		{name: "center", method: JustifyCenter, lines: []string{"hi"}, width: 5, want: []string{" hi  "}},
		{
			name:   "full widens rightmost gap first",
			method: JustifyFull,
			lines:  []string{"a b c", "end"},
			width:  6,
			want:   []string{"a b  c", "end"},
		},
		{
			name:   "full spreads evenly",
			method: JustifyFull,
			lines:  []string{"a b c", "end"},
			width:  7,
			want:   []string{"a  b  c", "end"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			lines := make([]*Text, len(tc.lines))
			for i, s := range tc.lines {
				lines[i] = NewText(s)
			}
			JustifyLines(lines, tc.width, tc.method)
			for i, line := range lines {
				if line.Plain() != tc.want[i] {
					t.Fatalf("lines[%d] = %q, want %q", i, line.Plain(), tc.want[i])
				}
			}
		})
	}
}

func TestSpanOperations(t *testing.T) {
	span := NewSpan(10, 0, NewStyle().Bold())
	if span.Start != 0 || span.End != 10 {
		t.Fatalf("NewSpan swapped = (%d, %d), want (0, 10)", span.Start, span.End)
	}

	left, right := span.Split(5)
	if left.End != 5 || right.Start != 5 || right.End != 10 {
		t.Fatalf("Split(5) = (%v, %v), want halves at 5", left, right)
	}

	moved := NewSpan(0, 5, NewStyle()).MoveRight(10, 12)
	if moved.Start != 10 || moved.End != 12 {
		t.Fatalf("MoveRight = (%d, %d), want (10, 12)", moved.Start, moved.End)
	}

	adjusted := NewSpan(5, 8, NewStyle()).Adjust(6)
	if adjusted.Start != 0 || adjusted.End != 2 {
		t.Fatalf("Adjust = (%d, %d), want (0, 2)", adjusted.Start, adjusted.End)
	}
}

func TestParseJustifyAndOverflow(t *testing.T) {
	j, err := ParseJustify("Center")
	if err != nil || j != JustifyCenter {
		t.Fatalf("ParseJustify(\"Center\") = (%v, %v), want JustifyCenter", j, err)
	}
	if _, err := ParseJustify("diagonal"); err == nil {
		t.Fatal("ParseJustify accepted an unknown method")
	}

	o, err := ParseOverflow("ellipsis")
	if err != nil || o != OverflowEllipsis {
		t.Fatalf("ParseOverflow(\"ellipsis\") = (%v, %v), want OverflowEllipsis", o, err)
	}
	if _, err := ParseOverflow("wrap"); err == nil {
		t.Fatal("ParseOverflow accepted an unknown method")
	}

	var roundTrip = []string{"default", "left", "center", "right", "full"}
	for _, name := range roundTrip {
		j, err := ParseJustify(name)
		if err != nil {
			t.Fatalf("ParseJustify(%q): %v", name, err)
		}
		if j.String() != name {
			t.Fatalf("String() = %q, want %q", j.String(), name)
		}
	}
}

func TestTextEqual(t *testing.T) {
	a := NewText("hello")
	a.Stylize(0, 5, NewStyle().Bold())
	b := NewText("hello")
	b.Stylize(0, 5, NewStyle().Bold())
	if !a.Equal(b) {
		t.Fatal("equal texts reported unequal")
	}
	b.Stylize(0, 1, NewStyle().Italic())
	if a.Equal(b) {
		t.Fatal("texts with different spans reported equal")
	}
}
