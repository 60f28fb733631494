package prakt

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Justify selects how a line distributes its cell deficit.
type Justify uint8

const (
	// JustifyDefault defers to the console default.
	JustifyDefault Justify = iota
	// JustifyLeft pads on the right.
	JustifyLeft
	// JustifyCenter pads both sides, extra cell on the right.
	JustifyCenter
	// JustifyRight pads on the left.
	JustifyRight
	// JustifyFull widens the gaps between words.
	JustifyFull
)

func (j Justify) String() string {
	switch j {
	case JustifyLeft:
		return "left"
	case JustifyCenter:
		return "center"
	case JustifyRight:
		return "right"
	case JustifyFull:
		return "full"
	default:
		return "default"
	}
}

// ParseJustify converts a configuration string to a Justify value.
func ParseJustify(s string) (Justify, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return JustifyDefault, nil
	case "left":
		return JustifyLeft, nil
	case "center":
		return JustifyCenter, nil
	case "right":
		return JustifyRight, nil
	case "full":
		return JustifyFull, nil
	}
	return JustifyDefault, fmt.Errorf("unknown justify method: %q", s)
}

// Overflow selects what happens to text that exceeds the target width.
type Overflow uint8

const (
	// OverflowFold wraps overflow onto the next line, hard-breaking
	// words longer than the width.
	OverflowFold Overflow = iota
	// OverflowCrop drops the overflow.
	OverflowCrop
	// OverflowEllipsis drops the overflow and appends an ellipsis.
	OverflowEllipsis
	// OverflowIgnore leaves the text alone.
	OverflowIgnore
)

func (o Overflow) String() string {
	switch o {
	case OverflowCrop:
		return "crop"
	case OverflowEllipsis:
		return "ellipsis"
	case OverflowIgnore:
		return "ignore"
	default:
		return "fold"
	}
}

// ParseOverflow converts a configuration string to an Overflow value.
func ParseOverflow(s string) (Overflow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fold":
		return OverflowFold, nil
	case "crop":
		return OverflowCrop, nil
	case "ellipsis":
		return OverflowEllipsis, nil
	case "ignore":
		return OverflowIgnore, nil
	}
	return OverflowFold, fmt.Errorf("unknown overflow method: %q", s)
}

// ellipsisMarker is the single-cell truncation marker.
const ellipsisMarker = "…"

// Span styles a byte range of a Text. Start is inclusive, End
// exclusive, and both must lie on rune boundaries of the plain text.
// Spans may overlap; later spans overlay earlier ones.
type Span struct {
	Start int
	End   int
	Style Style
}

// NewSpan builds a span, swapping reversed bounds.
func NewSpan(start, end int, style Style) Span {
	return Span{Start: min(start, end), End: max(end, start), Style: style}
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool { return s.Start >= s.End }

// Len returns the byte length of the span.
func (s Span) Len() int { return max(s.End-s.Start, 0) }

// MoveRight shifts the span by offset, clamping both bounds to max.
func (s Span) MoveRight(offset, max int) Span {
	return Span{
		Start: min(s.Start+offset, max),
		End:   min(s.End+offset, max),
		Style: s.Style,
	}
}

// Split cuts the span at a relative offset into left and right halves.
func (s Span) Split(offset int) (Span, Span) {
	at := min(s.Start+offset, s.End)
	return Span{Start: s.Start, End: at, Style: s.Style},
		Span{Start: at, End: s.End, Style: s.Style}
}

// Adjust rebases the span relative to a new start position.
func (s Span) Adjust(offset int) Span {
	return Span{
		Start: max(s.Start-offset, 0),
		End:   max(s.End-offset, 0),
		Style: s.Style,
	}
}

// Text is a plain string annotated with styled spans, plus the
// defaults used when the text is wrapped and rendered. Offsets into
// the text are byte offsets.
type Text struct {
	plain string
	spans []Span
	style Style

	// Justify is the line justification method.
	Justify Justify
	// Overflow is the policy for text exceeding the render width.
	Overflow Overflow
	// NoWrap disables wrapping.
	NoWrap bool
	// End is appended after the text when printed.
	End string
	// TabSize is the tab expansion width.
	TabSize int
}

// NewText builds a Text from a plain string. Markup is not parsed;
// pass the output of RenderMarkup for tagged strings.
func NewText(text string) *Text {
	return &Text{plain: text, End: "\n", TabSize: 8}
}

// NewStyledText builds a Text with a single span covering the whole
// string.
func NewStyledText(text string, style Style) *Text {
	t := NewText(text)
	t.style = style
	if len(text) > 0 {
		t.spans = []Span{NewSpan(0, len(text), style)}
	}
	return t
}

// TextPiece is one part of an assembled Text.
type TextPiece struct {
	Text  string
	Style Style
}

// AssembleText concatenates pieces into a single Text. Pieces with a
// null or zero style contribute unstyled text.
func AssembleText(pieces ...TextPiece) *Text {
	t := NewText("")
	for _, piece := range pieces {
		if piece.Style.IsNull() || piece.Style == (Style{}) {
			t.Append(piece.Text)
		} else {
			t.AppendStyled(piece.Text, piece.Style)
		}
	}
	return t
}

// Plain returns the text without styling.
func (t *Text) Plain() string { return t.plain }

// Spans returns the style spans. The slice is shared, not copied.
func (t *Text) Spans() []Span { return t.spans }

// Len returns the byte length of the plain text.
func (t *Text) Len() int { return len(t.plain) }

// IsEmpty reports whether the text has no content.
func (t *Text) IsEmpty() bool { return t.plain == "" }

// CellLen returns the display width of the plain text.
func (t *Text) CellLen() int { return CellLen(t.plain) }

// Style returns the base style applied under all spans.
func (t *Text) Style() Style { return t.style }

// SetStyle replaces the base style.
func (t *Text) SetStyle(style Style) { t.style = style }

// String implements fmt.Stringer.
func (t *Text) String() string { return t.plain }

// Equal reports whether two texts have the same content and spans.
func (t *Text) Equal(other *Text) bool {
	return t.plain == other.plain && slices.Equal(t.spans, other.spans)
}

func (t *Text) clone() *Text {
	nt := *t
	nt.spans = slices.Clone(t.spans)
	return &nt
}

// Append adds plain text to the end.
func (t *Text) Append(text string) {
	t.plain += text
}

// AppendStyled adds text covered by a new span.
func (t *Text) AppendStyled(text string, style Style) {
	start := len(t.plain)
	t.plain += text
	if len(text) > 0 {
		t.spans = append(t.spans, NewSpan(start, len(t.plain), style))
	}
}

// AppendText adds another Text, shifting its spans into place.
func (t *Text) AppendText(other *Text) {
	offset := len(t.plain)
	t.plain += other.plain
	for _, span := range other.spans {
		t.spans = append(t.spans, span.MoveRight(offset, len(t.plain)))
	}
}

// Stylize overlays a style onto the byte range [start, end).
func (t *Text) Stylize(start, end int, style Style) {
	start = min(start, len(t.plain))
	end = min(end, len(t.plain))
	if start < end {
		t.spans = append(t.spans, NewSpan(start, end, style))
	}
}

// StylizeAll overlays a style onto the whole text.
func (t *Text) StylizeAll(style Style) {
	if len(t.plain) > 0 {
		t.spans = append(t.spans, NewSpan(0, len(t.plain), style))
	}
}

// HighlightRegex overlays a style onto every match of pattern.
func (t *Text) HighlightRegex(pattern string, style Style) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	for _, m := range re.FindAllStringIndex(t.plain, -1) {
		if m[0] < m[1] {
			t.spans = append(t.spans, NewSpan(m[0], m[1], style))
		}
	}
	return nil
}

// HighlightWords overlays a style onto every occurrence of the given
// words.
func (t *Text) HighlightWords(words []string, style Style, caseSensitive bool) {
	if len(words) == 0 {
		return
	}

	if caseSensitive {
		for _, word := range words {
			if word == "" {
				continue
			}
			from := 0
			for {
				pos := strings.Index(t.plain[from:], word)
				if pos < 0 {
					break
				}
				start := from + pos
				end := start + len(word)
				t.spans = append(t.spans, NewSpan(start, end, style))
				from = end
			}
		}
		return
	}

	// Case-insensitive search runs over a lowercased copy, with a
	// per-byte map back to the original offsets.
	var lb strings.Builder
	lowerToOrig := make([]int, 0, len(t.plain))
	for i, r := range t.plain {
		lr := strings.ToLower(string(r))
		for range len(lr) {
			lowerToOrig = append(lowerToOrig, i)
		}
		lb.WriteString(lr)
	}
	lowered := lb.String()

	for _, word := range words {
		search := strings.ToLower(word)
		if search == "" {
			continue
		}
		from := 0
		for {
			pos := strings.Index(lowered[from:], search)
			if pos < 0 {
				break
			}
			byteStart := from + pos
			byteEnd := byteStart + len(search)
			origStart := lowerToOrig[byteStart]
			last := lowerToOrig[byteEnd-1]
			_, size := utf8.DecodeRuneInString(t.plain[last:])
			if origEnd := last + size; origStart < origEnd {
				t.spans = append(t.spans, NewSpan(origStart, origEnd, style))
			}
			from = byteEnd
		}
	}
}

// Slice returns the byte range [start, end) as a new Text with
// overlapping spans rebased. Out-of-range bounds are clamped and
// bounds are aligned down to rune boundaries.
func (t *Text) Slice(start, end int) *Text {
	start = alignRuneBoundary(t.plain, clampOffset(start, len(t.plain)))
	end = alignRuneBoundary(t.plain, clampOffset(end, len(t.plain)))
	if end < start {
		end = start
	}
	if start >= end {
		return NewText("")
	}
	return t.sliceRange(start, end)
}

// sliceRange copies [start, end) carrying the base style and text
// defaults. Unlike Slice it keeps them for empty results too.
func (t *Text) sliceRange(start, end int) *Text {
	nt := &Text{
		plain:    t.plain[start:end],
		style:    t.style,
		Justify:  t.Justify,
		Overflow: t.Overflow,
		NoWrap:   t.NoWrap,
		End:      t.End,
		TabSize:  t.TabSize,
	}
	for _, span := range t.spans {
		if span.End <= start || span.Start >= end {
			continue
		}
		ns := max(span.Start, start) - start
		ne := min(span.End, end) - start
		if ns < ne {
			nt.spans = append(nt.spans, NewSpan(ns, ne, span.Style))
		}
	}
	return nt
}

// Join concatenates items with the receiver between each pair.
func (t *Text) Join(items []*Text) *Text {
	result := NewText("")
	for i, item := range items {
		if i > 0 {
			result.AppendText(t)
		}
		result.AppendText(item)
	}
	return result
}

// SplitLines splits at newlines. A trailing newline yields a final
// empty line, so the result always has one more line than there are
// newlines.
func (t *Text) SplitLines() []*Text {
	var lines []*Text
	start := 0
	for i := 0; i < len(t.plain); i++ {
		if t.plain[i] == '\n' {
			lines = append(lines, t.sliceRange(start, i))
			start = i + 1
		}
	}
	lines = append(lines, t.sliceRange(start, len(t.plain)))
	return lines
}

// Divide splits the text at the given byte offsets, returning one
// more part than there are offsets.
func (t *Text) Divide(offsets []int) []*Text {
	if len(offsets) == 0 {
		return []*Text{t.clone()}
	}
	result := make([]*Text, 0, len(offsets)+1)
	prev := 0
	for _, offset := range offsets {
		clamped := min(offset, len(t.plain))
		result = append(result, t.Slice(prev, clamped))
		prev = clamped
	}
	if prev < len(t.plain) {
		result = append(result, t.Slice(prev, len(t.plain)))
	} else {
		result = append(result, NewText(""))
	}
	return result
}

// ExpandTabs replaces tabs with spaces up to the next tab stop,
// remapping spans onto the expanded string.
func (t *Text) ExpandTabs(tabSize int) *Text {
	if tabSize <= 0 || !strings.Contains(t.plain, "\t") {
		return t.clone()
	}

	var b strings.Builder
	posMap := make(map[int]int, len(t.plain)+1)
	col := 0
	for i, r := range t.plain {
		posMap[i] = b.Len()
		switch r {
		case '\t':
			spaces := tabSize - col%tabSize
			b.WriteString(strings.Repeat(" ", spaces))
			col += spaces
		case '\n':
			b.WriteByte('\n')
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	posMap[len(t.plain)] = b.Len()

	nt := t.clone()
	nt.plain = b.String()
	nt.spans = remapSpans(t.plain, t.spans, posMap)
	return nt
}

// ToUpper uppercases the text, remapping spans across runes that
// expand under case mapping.
func (t *Text) ToUpper() *Text {
	c := cases.Upper(language.Und)
	return t.mapCase(func(r rune) string { return c.String(string(r)) })
}

// ToLower lowercases the text, remapping spans.
func (t *Text) ToLower() *Text {
	c := cases.Lower(language.Und)
	return t.mapCase(func(r rune) string { return c.String(string(r)) })
}

func (t *Text) mapCase(mapper func(rune) string) *Text {
	var b strings.Builder
	posMap := make(map[int]int, len(t.plain)+1)
	for i, r := range t.plain {
		posMap[i] = b.Len()
		b.WriteString(mapper(r))
	}
	posMap[len(t.plain)] = b.Len()

	nt := t.clone()
	nt.plain = b.String()
	nt.spans = remapSpans(t.plain, t.spans, posMap)
	return nt
}

// remapSpans rewrites span offsets through a boundary map built over
// the old string.
func remapSpans(old string, spans []Span, posMap map[int]int) []Span {
	if len(spans) == 0 {
		return nil
	}
	result := make([]Span, 0, len(spans))
	for _, span := range spans {
		start := alignRuneBoundary(old, clampOffset(span.Start, len(old)))
		end := alignRuneBoundary(old, clampOffset(span.End, len(old)))
		ns, ne := posMap[start], posMap[end]
		if ns < ne {
			result = append(result, NewSpan(ns, ne, span.Style))
		}
	}
	return result
}

// Truncate trims the text to at most maxWidth cells, optionally
// padding a short result out to maxWidth. OverflowEllipsis replaces
// the overflow with a single-cell ellipsis, never exceeding maxWidth.
func (t *Text) Truncate(maxWidth int, overflow Overflow, pad bool) {
	current := t.CellLen()
	if current <= maxWidth {
		if pad && current < maxWidth {
			t.Append(strings.Repeat(" ", maxWidth-current))
		}
		return
	}

	switch overflow {
	case OverflowCrop, OverflowFold:
		cut, width := truncationPoint(t.plain, maxWidth)
		*t = *t.Slice(0, cut)
		if pad && width < maxWidth {
			t.Append(strings.Repeat(" ", maxWidth-width))
		}
	case OverflowEllipsis:
		if maxWidth < 1 {
			*t = *t.Slice(0, 0)
			return
		}
		cut, _ := truncationPoint(t.plain, maxWidth-1)
		*t = *t.Slice(0, cut)
		t.Append(ellipsisMarker)
		if pad {
			if width := t.CellLen(); width < maxWidth {
				t.Append(strings.Repeat(" ", maxWidth-width))
			}
		}
	case OverflowIgnore:
	}
}

// truncationPoint returns the byte cut position and accumulated cell
// width for truncating s at maxWidth cells.
func truncationPoint(s string, maxWidth int) (int, int) {
	width := 0
	cut := 0
	for i, r := range s {
		w := CellSize(r)
		if width+w > maxWidth {
			break
		}
		width += w
		cut = i + utf8.RuneLen(r)
	}
	return cut, width
}

// Pad widens the text to the given cell width. Center puts the extra
// cell on the right when the padding is odd.
func (t *Text) Pad(width int, align Justify) {
	current := t.CellLen()
	if current >= width {
		return
	}
	padding := width - current

	switch align {
	case JustifyRight:
		pre := NewText(strings.Repeat(" ", padding))
		pre.AppendText(t)
		t.plain, t.spans = pre.plain, pre.spans
	case JustifyCenter:
		left := padding / 2
		pre := NewText(strings.Repeat(" ", left))
		pre.AppendText(t)
		pre.Append(strings.Repeat(" ", padding-left))
		t.plain, t.spans = pre.plain, pre.spans
	default:
		t.Append(strings.Repeat(" ", padding))
	}
}

// Strip removes leading and trailing whitespace.
func (t *Text) Strip() *Text {
	start := strings.IndexFunc(t.plain, func(r rune) bool { return !unicode.IsSpace(r) })
	if start < 0 {
		return NewText("")
	}
	end := strings.LastIndexFunc(t.plain, func(r rune) bool { return !unicode.IsSpace(r) })
	_, size := utf8.DecodeRuneInString(t.plain[end:])
	return t.Slice(start, end+size)
}

// Render projects the text into styled segments, appending end as an
// unstyled segment when non-empty. Overlapping spans combine in the
// order they were added, on top of the base style.
func (t *Text) Render(end string) []Segment {
	if t.plain == "" {
		if end == "" {
			return nil
		}
		return []Segment{PlainSegment(end)}
	}

	type spanEvent struct {
		idx   int
		start bool
	}
	events := make(map[int][]spanEvent, len(t.spans)*2)
	for idx, span := range t.spans {
		events[span.Start] = append(events[span.Start], spanEvent{idx, true})
		events[span.End] = append(events[span.End], spanEvent{idx, false})
	}
	positions := make([]int, 0, len(events))
	for pos := range events {
		positions = append(positions, pos)
	}
	slices.Sort(positions)

	total := len(t.plain)
	result := make([]Segment, 0, len(t.spans)+2)
	active := make([]int, 0, len(t.spans))
	styleCache := make(map[string]Style, len(t.spans)+1)
	pos := 0

	for _, eventPos := range positions {
		if eventPos > pos && pos < total {
			stop := min(eventPos, total)
			result = append(result, NewSegment(t.plain[pos:stop], t.computeStyle(active, styleCache)))
			pos = eventPos
		}
		// Ends are applied before starts so adjacent spans do not
		// bleed into each other.
		for _, ev := range events[eventPos] {
			if !ev.start {
				for i, idx := range active {
					if idx == ev.idx {
						active = append(active[:i], active[i+1:]...)
						break
					}
				}
			}
		}
		for _, ev := range events[eventPos] {
			if ev.start {
				active = append(active, ev.idx)
			}
		}
	}

	if pos < total {
		result = append(result, NewSegment(t.plain[pos:total], t.computeStyle(active, styleCache)))
	}
	if end != "" {
		result = append(result, PlainSegment(end))
	}
	return result
}

func (t *Text) computeStyle(active []int, cache map[string]Style) Style {
	// Later spans overlay earlier ones regardless of activation order.
	indexes := slices.Clone(active)
	slices.Sort(indexes)
	var key []byte
	for _, idx := range indexes {
		key = strconv.AppendInt(key, int64(idx), 10)
		key = append(key, ',')
	}
	if style, ok := cache[string(key)]; ok {
		return style
	}
	combined := t.style
	for _, idx := range indexes {
		if idx < len(t.spans) {
			combined = combined.Combine(t.spans[idx].Style)
		}
	}
	cache[string(key)] = combined
	return combined
}

// Wrap folds the text into lines of at most width cells, after tab
// expansion. Wrapping preserves whitespace: a break keeps trailing
// whitespace on the closed line, so joining the lines reconstructs
// the text.
func (t *Text) Wrap(width int) []*Text {
	if width <= 0 {
		return []*Text{NewText("")}
	}
	expanded := t.ExpandTabs(t.TabSize)
	if expanded.NoWrap || expanded.CellLen() <= width {
		return expanded.SplitLines()
	}

	var lines []*Text
	for _, line := range expanded.SplitLines() {
		if line.CellLen() <= width {
			lines = append(lines, line)
			continue
		}
		switch line.Overflow {
		case OverflowCrop:
			cut, _ := truncationPoint(line.plain, width)
			lines = append(lines, line.Slice(0, cut))
		case OverflowEllipsis:
			cp := line.clone()
			cp.Truncate(width, OverflowEllipsis, false)
			lines = append(lines, cp)
		case OverflowIgnore:
			lines = append(lines, line.clone())
		default:
			lines = append(lines, line.Divide(divideLine(line.plain, width, true))...)
		}
	}
	return lines
}

var wordPattern = regexp.MustCompile(`\s*\S+\s*`)

// divideLine returns the byte offsets where a line breaks to stay
// within width cells. Each word carries its trailing whitespace, and
// the width check ignores that whitespace, so breaks land at word
// starts and nothing is dropped. fold hard-breaks words wider than
// the whole line.
func divideLine(text string, width int, fold bool) []int {
	var divides []int
	linePos := 0
	for _, m := range wordPattern.FindAllStringIndex(text, -1) {
		start := m[0]
		word := text[m[0]:m[1]]
		wordLen := CellLen(strings.TrimRightFunc(word, unicode.IsSpace))
		switch {
		case linePos+wordLen > width:
			if wordLen > width {
				if fold {
					pieces := chopWidth(word, width)
					for i, piece := range pieces {
						if start > 0 {
							divides = append(divides, start)
						}
						if i == len(pieces)-1 {
							linePos = CellLen(piece)
						} else {
							start += len(piece)
						}
					}
				} else {
					if start > 0 {
						divides = append(divides, start)
					}
					linePos = CellLen(word)
				}
			} else if linePos > 0 && start > 0 {
				divides = append(divides, start)
				linePos = CellLen(word)
			}
		default:
			linePos += CellLen(word)
		}
	}
	return divides
}

// chopWidth cuts s into pieces of at most width cells, never
// splitting a rune.
func chopWidth(s string, width int) []string {
	var pieces []string
	var current strings.Builder
	total := 0
	for _, r := range s {
		w := CellSize(r)
		if total+w > width {
			pieces = append(pieces, current.String())
			current.Reset()
			current.WriteRune(r)
			total = w
		} else {
			current.WriteRune(r)
			total += w
		}
	}
	return append(pieces, current.String())
}

// JustifyLines pads or spreads each line to the given width in place.
// Full justification widens the gaps between words, feeding extra
// cells to the rightmost gaps first; the last line is left alone.
func JustifyLines(lines []*Text, width int, method Justify) {
	switch method {
	case JustifyRight, JustifyCenter:
		for _, line := range lines {
			line.Pad(width, method)
		}
	case JustifyFull:
		for i, line := range lines {
			if i == len(lines)-1 {
				break
			}
			justifyFull(line, width)
		}
	default:
		for _, line := range lines {
			line.Pad(width, JustifyLeft)
		}
	}
}

func justifyFull(line *Text, width int) {
	words := line.splitOnSpaces()
	if len(words) <= 1 {
		line.Pad(width, JustifyLeft)
		return
	}

	gaps := len(words) - 1
	spaces := make([]int, gaps)
	total := gaps
	for _, word := range words {
		total += word.CellLen()
	}
	for i := range spaces {
		spaces[i] = 1
	}
	for index := 0; total < width; index = (index + 1) % gaps {
		spaces[gaps-1-index]++
		total++
	}

	result := NewText("")
	for i, word := range words {
		result.AppendText(word)
		if i < gaps {
			result.Append(strings.Repeat(" ", spaces[i]))
		}
	}
	line.plain, line.spans = result.plain, result.spans
}

// splitOnSpaces splits at single space bytes, dropping the spaces.
// Consecutive spaces produce empty words.
func (t *Text) splitOnSpaces() []*Text {
	var words []*Text
	start := 0
	for i := 0; i < len(t.plain); i++ {
		if t.plain[i] == ' ' {
			words = append(words, t.sliceRange(start, i))
			start = i + 1
		}
	}
	return append(words, t.sliceRange(start, len(t.plain)))
}

func clampOffset(offset, limit int) int {
	if offset < 0 {
		return 0
	}
	return min(offset, limit)
}

// alignRuneBoundary walks offset back to the start of the rune it
// points into.
func alignRuneBoundary(s string, offset int) int {
	for offset > 0 && offset < len(s) && !utf8.RuneStart(s[offset]) {
		offset--
	}
	return offset
}
