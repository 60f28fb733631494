package prakt

import "strings"

// Rule is a horizontal line spanning a given width, with an optional
// aligned title.
type Rule struct {
	// Title is drawn in the line. Nil draws an unbroken line.
	Title *Text
	// Character is the repeating line unit.
	Character string
	// Style colors the line. The title keeps its own styles.
	Style Style
	// Align positions the title on the line.
	Align Justify
}

// NewRule returns an untitled rule drawn with light box characters.
func NewRule() *Rule {
	return &Rule{Character: "─", Align: JustifyCenter}
}

// NewTitledRule returns a rule with a centered title.
func NewTitledRule(title *Text) *Rule {
	r := NewRule()
	r.Title = title
	return r
}

// ASCIIRule returns a rule drawn with hyphens.
func ASCIIRule() *Rule {
	r := NewRule()
	r.Character = "-"
	return r
}

// DoubleRule returns a rule drawn with double-line characters.
func DoubleRule() *Rule {
	r := NewRule()
	r.Character = "═"
	return r
}

// HeavyRule returns a rule drawn with heavy-line characters.
func HeavyRule() *Rule {
	r := NewRule()
	r.Character = "━"
	return r
}

// Render lays the rule out as segments for the given width, ending
// with a newline segment. A title too wide for the line is cropped; a
// title leaving no room for line characters is shown bare.
func (r *Rule) Render(width int) []Segment {
	charWidth := CellLen(r.Character)
	if charWidth == 0 || width == 0 {
		return []Segment{LineSegment()}
	}

	if r.Title == nil {
		line := strings.Repeat(r.Character, width/charWidth)
		return []Segment{NewSegment(line, r.Style), LineSegment()}
	}

	var segments []Segment
	titleTotal := r.Title.CellLen() + 2

	if titleTotal > width {
		cropped := r.Title.clone()
		cropped.Truncate(width, OverflowCrop, false)
		segments = append(segments, cropped.Render("")...)
		return append(segments, LineSegment())
	}

	ruleChars := (width - titleTotal) / charWidth
	if ruleChars < 2 {
		segments = append(segments, NewSegment(" ", r.Title.Style()))
		segments = append(segments, r.Title.Render("")...)
		segments = append(segments, NewSegment(" ", r.Title.Style()))
		return append(segments, LineSegment())
	}

	var left, right int
	switch r.Align {
	case JustifyLeft, JustifyDefault:
		left, right = 1, ruleChars-1
	case JustifyRight:
		left, right = ruleChars-1, 1
	default:
		left = ruleChars / 2
		right = ruleChars - left
	}

	segments = append(segments, NewSegment(strings.Repeat(r.Character, left), r.Style))
	segments = append(segments, NewSegment(" ", r.Title.Style()))
	segments = append(segments, r.Title.Render("")...)
	segments = append(segments, NewSegment(" ", r.Title.Style()))
	segments = append(segments, NewSegment(strings.Repeat(r.Character, right), r.Style))
	return append(segments, LineSegment())
}

// RenderPlain renders the rule as an unstyled string.
func (r *Rule) RenderPlain(width int) string {
	var b strings.Builder
	for _, segment := range r.Render(width) {
		b.WriteString(segment.Text)
	}
	return b.String()
}

// Rule prints a horizontal rule across the console width. The title is
// parsed as markup when markup is enabled, the line takes the theme's
// rule.line style, and safe box mode falls back to hyphens.
func (c *Console) Rule(title string) {
	rule := NewRule()
	if c.safeBox {
		rule.Character = "-"
	}
	if style, err := c.GetStyle("rule.line"); err == nil {
		rule.Style = style
	} else {
		c.logger.Debug("rule.line style unavailable", "err", err)
	}
	if title != "" {
		rule.Title = c.renderString(title, false)
	}
	c.PrintSegments(rule.Render(c.width))
}
