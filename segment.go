package prakt

import (
	"strings"
	"unicode/utf8"
)

// ControlType identifies a terminal control operation.
type ControlType uint8

const (
	// ControlBell rings the terminal bell.
	ControlBell ControlType = iota + 1
	// ControlCarriageReturn moves the cursor to column zero.
	ControlCarriageReturn
	// ControlHome moves the cursor to the top-left corner.
	ControlHome
	// ControlClear clears the screen.
	ControlClear
	// ControlShowCursor makes the cursor visible.
	ControlShowCursor
	// ControlHideCursor hides the cursor.
	ControlHideCursor
	// ControlEnableAltScreen switches to the alternate screen.
	ControlEnableAltScreen
	// ControlDisableAltScreen switches back to the main screen.
	ControlDisableAltScreen
	// ControlCursorUp moves the cursor up by its parameter.
	ControlCursorUp
	// ControlCursorDown moves the cursor down by its parameter.
	ControlCursorDown
	// ControlCursorForward moves the cursor right by its parameter.
	ControlCursorForward
	// ControlCursorBackward moves the cursor left by its parameter.
	ControlCursorBackward
	// ControlCursorMoveToColumn moves the cursor to a column.
	ControlCursorMoveToColumn
	// ControlCursorMoveTo moves the cursor to a column and row.
	ControlCursorMoveTo
	// ControlEraseInLine erases part of the current line.
	ControlEraseInLine
	// ControlSetWindowTitle sets the window title from the segment text.
	ControlSetWindowTitle
)

// ControlCode is a control operation with its parameters.
type ControlCode struct {
	Type   ControlType
	Params []int
}

// NewControlCode builds a control code.
func NewControlCode(t ControlType, params ...int) ControlCode {
	return ControlCode{Type: t, Params: params}
}

// Segment is the atomic rendering unit: a run of text with one style,
// or a sequence of control codes. Control segments occupy no cells;
// their text is an auxiliary payload such as a window title.
type Segment struct {
	Text    string
	Style   Style
	Control []ControlCode
}

// NewSegment returns a styled text segment.
func NewSegment(text string, style Style) Segment {
	return Segment{Text: text, Style: style}
}

// PlainSegment returns an unstyled text segment.
func PlainSegment(text string) Segment {
	return Segment{Text: text, Style: NullStyle()}
}

// LineSegment returns a newline segment.
func LineSegment() Segment {
	return Segment{Text: "\n", Style: NullStyle()}
}

// ControlSegment returns a segment carrying control codes.
func ControlSegment(codes ...ControlCode) Segment {
	if codes == nil {
		codes = []ControlCode{}
	}
	return Segment{Style: NullStyle(), Control: codes}
}

// RingBell returns a control segment that rings the terminal bell.
func RingBell() Segment {
	return ControlSegment(NewControlCode(ControlBell))
}

// CursorHome returns a control segment that moves the cursor to the
// top-left corner.
func CursorHome() Segment {
	return ControlSegment(NewControlCode(ControlHome))
}

// ClearScreen returns a control segment that clears the screen.
func ClearScreen() Segment {
	return ControlSegment(NewControlCode(ControlClear))
}

// ShowCursor returns a control segment that shows or hides the cursor.
func ShowCursor(show bool) Segment {
	if show {
		return ControlSegment(NewControlCode(ControlShowCursor))
	}
	return ControlSegment(NewControlCode(ControlHideCursor))
}

// AltScreen returns a control segment that enters or leaves the
// alternate screen. Entering also homes the cursor.
func AltScreen(enable bool) Segment {
	if enable {
		return ControlSegment(
			NewControlCode(ControlEnableAltScreen),
			NewControlCode(ControlHome),
		)
	}
	return ControlSegment(NewControlCode(ControlDisableAltScreen))
}

// MoveCursor returns a control segment that moves the cursor relative
// to its current position. Positive x moves right, positive y moves
// down. Zero offsets emit nothing.
func MoveCursor(x, y int) Segment {
	var codes []ControlCode
	if x > 0 {
		codes = append(codes, NewControlCode(ControlCursorForward, x))
	} else if x < 0 {
		codes = append(codes, NewControlCode(ControlCursorBackward, -x))
	}
	if y > 0 {
		codes = append(codes, NewControlCode(ControlCursorDown, y))
	} else if y < 0 {
		codes = append(codes, NewControlCode(ControlCursorUp, -y))
	}
	return ControlSegment(codes...)
}

// MoveToColumn returns a control segment that moves the cursor to a
// zero-based column, with an optional relative row offset.
func MoveToColumn(x, y int) Segment {
	codes := []ControlCode{NewControlCode(ControlCursorMoveToColumn, x)}
	if y > 0 {
		codes = append(codes, NewControlCode(ControlCursorDown, y))
	} else if y < 0 {
		codes = append(codes, NewControlCode(ControlCursorUp, -y))
	}
	return ControlSegment(codes...)
}

// MoveTo returns a control segment that moves the cursor to an
// absolute zero-based position.
func MoveTo(x, y int) Segment {
	return ControlSegment(NewControlCode(ControlCursorMoveTo, x, y))
}

// WindowTitle returns a control segment that sets the terminal window
// title. The title travels in the segment text.
func WindowTitle(title string) Segment {
	seg := ControlSegment(NewControlCode(ControlSetWindowTitle))
	seg.Text = title
	return seg
}

// IsControl reports whether this is a control segment.
func (s Segment) IsControl() bool {
	return s.Control != nil
}

// CellLength reports the cell width of the segment. Control segments
// are zero cells wide.
func (s Segment) CellLength() int {
	if s.IsControl() {
		return 0
	}
	return CellLen(s.Text)
}

// IsEmpty reports whether the segment has neither text nor control
// codes.
func (s Segment) IsEmpty() bool {
	return s.Text == "" && s.Control == nil
}

// WithStyle returns a copy with the style replaced.
func (s Segment) WithStyle(style Style) Segment {
	s.Style = style
	return s
}

// SplitAtCell splits the segment at a cell position. A wide rune that
// would straddle the cut stays on the right. Control segments return
// (whole, empty).
func (s Segment) SplitAtCell(cellPos int) (Segment, Segment) {
	if s.IsControl() {
		return s, Segment{Style: NullStyle()}
	}

	width := 0
	pos := 0
	for i, r := range s.Text {
		w := CellSize(r)
		if width+w > cellPos {
			break
		}
		width += w
		pos = i + utf8.RuneLen(r)
	}

	return NewSegment(s.Text[:pos], s.Style), NewSegment(s.Text[pos:], s.Style)
}

func (s Segment) String() string {
	return s.Text
}

// ApplyStyle overlays styles on text segments: style underneath each
// segment's own, post on top. Null styles are skipped and control
// segments pass through unchanged.
func ApplyStyle(segments []Segment, style, post Style) []Segment {
	out := make([]Segment, len(segments))
	for i, seg := range segments {
		if seg.IsControl() {
			out[i] = seg
			continue
		}
		if !style.IsNull() {
			seg.Style = style.Combine(seg.Style)
		}
		if !post.IsNull() {
			seg.Style = seg.Style.Combine(post)
		}
		out[i] = seg
	}
	return out
}

// SplitLines breaks segments into lines at newline characters. The
// newlines themselves are dropped. Control segments stay on the line
// where they appear.
func SplitLines(segments []Segment) [][]Segment {
	lines := [][]Segment{{}}

	for _, segment := range segments {
		if segment.IsControl() {
			lines[len(lines)-1] = append(lines[len(lines)-1], segment)
			continue
		}

		parts := strings.Split(segment.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, []Segment{})
			}
			if part != "" {
				lines[len(lines)-1] = append(lines[len(lines)-1], NewSegment(part, segment.Style))
			}
		}
	}

	return lines
}

// AdjustLineLength pads or truncates a line of segments to a cell
// length. Padding uses spaces in the given style and only happens when
// pad is set.
func AdjustLineLength(line []Segment, length int, style Style, pad bool) []Segment {
	current := LineLength(line)

	if current < length && pad {
		return append(line, NewSegment(strings.Repeat(" ", length-current), style))
	}
	if current > length {
		return truncateLine(line, length)
	}
	return line
}

func truncateLine(segments []Segment, maxWidth int) []Segment {
	var result []Segment
	remaining := maxWidth

	for _, segment := range segments {
		if segment.IsControl() {
			result = append(result, segment)
			continue
		}

		width := segment.CellLength()
		switch {
		case width <= remaining:
			result = append(result, segment)
			remaining -= width
		case remaining > 0:
			left, _ := segment.SplitAtCell(remaining)
			result = append(result, left)
			return result
		default:
			return result
		}
	}

	return result
}

// Simplify merges adjacent text segments with identical styles and
// drops empty ones. Control segments break merge runs.
func Simplify(segments []Segment) []Segment {
	var result []Segment

	for _, segment := range segments {
		if segment.IsControl() {
			result = append(result, segment)
			continue
		}
		if segment.Text == "" {
			continue
		}

		if len(result) > 0 {
			last := &result[len(result)-1]
			if !last.IsControl() && last.Style == segment.Style {
				last.Text += segment.Text
				continue
			}
		}

		result = append(result, segment)
	}

	return result
}

// Divide splits segments into len(cuts)+1 groups at the given cell
// positions. Wide runes never straddle a cut.
func Divide(segments []Segment, cuts []int) [][]Segment {
	if len(cuts) == 0 {
		return [][]Segment{segments}
	}

	result := make([][]Segment, len(cuts)+1)
	currentPos := 0
	cutIdx := 0

	for _, segment := range segments {
		if segment.IsControl() {
			result[cutIdx] = append(result[cutIdx], segment)
			continue
		}

		segWidth := segment.CellLength()
		segEnd := currentPos + segWidth

		for cutIdx < len(cuts) && cuts[cutIdx] <= currentPos {
			cutIdx++
		}

		if cutIdx >= len(cuts) || segEnd <= cuts[cutIdx] {
			target := cutIdx
			if target > len(result)-1 {
				target = len(result) - 1
			}
			result[target] = append(result[target], segment)
		} else {
			remaining := segment
			pos := currentPos

			for cutIdx < len(cuts) && pos+remaining.CellLength() > cuts[cutIdx] {
				left, right := remaining.SplitAtCell(cuts[cutIdx] - pos)
				if left.Text != "" {
					result[cutIdx] = append(result[cutIdx], left)
				}
				pos = cuts[cutIdx]
				cutIdx++
				remaining = right
			}

			if remaining.Text != "" {
				target := cutIdx
				if target > len(result)-1 {
					target = len(result) - 1
				}
				result[target] = append(result[target], remaining)
			}
		}

		currentPos = segEnd
	}

	return result
}

// AlignTop pads lines to width and adds blank lines below until the
// block is height lines tall.
func AlignTop(lines [][]Segment, width, height int, style Style) [][]Segment {
	result := lines

	for i, line := range result {
		if lineWidth := LineLength(line); lineWidth < width {
			result[i] = append(line, NewSegment(strings.Repeat(" ", width-lineWidth), style))
		}
	}

	for len(result) < height {
		result = append(result, []Segment{NewSegment(strings.Repeat(" ", width), style)})
	}

	return result
}

// AlignBottom pads lines to width and adds blank lines above until the
// block is height lines tall.
func AlignBottom(lines [][]Segment, width, height int, style Style) [][]Segment {
	var result [][]Segment

	for i := len(lines); i < height; i++ {
		result = append(result, []Segment{NewSegment(strings.Repeat(" ", width), style)})
	}

	for _, line := range lines {
		if lineWidth := LineLength(line); lineWidth < width {
			line = append(line, NewSegment(strings.Repeat(" ", width-lineWidth), style))
		}
		result = append(result, line)
	}

	return result
}

// AlignMiddle centers lines vertically in a block height lines tall,
// with the extra blank line below when the split is uneven.
func AlignMiddle(lines [][]Segment, width, height int, style Style) [][]Segment {
	if len(lines) >= height {
		return AlignTop(lines, width, height, style)
	}

	var result [][]Segment
	totalPadding := height - len(lines)
	topPadding := totalPadding / 2

	for i := 0; i < topPadding; i++ {
		result = append(result, []Segment{NewSegment(strings.Repeat(" ", width), style)})
	}

	for _, line := range lines {
		if lineWidth := LineLength(line); lineWidth < width {
			line = append(line, NewSegment(strings.Repeat(" ", width-lineWidth), style))
		}
		result = append(result, line)
	}

	for i := 0; i < totalPadding-topPadding; i++ {
		result = append(result, []Segment{NewSegment(strings.Repeat(" ", width), style)})
	}

	return result
}

// LineLength reports the total cell width of a line of segments.
func LineLength(line []Segment) int {
	total := 0
	for _, segment := range line {
		total += segment.CellLength()
	}
	return total
}
