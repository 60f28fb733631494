package prakt

import (
	"errors"
	"fmt"
	"strings"
)

// Attributes is a bit-set of boolean text attributes.
type Attributes uint16

const (
	// AttrBold renders bold or increased-intensity text.
	AttrBold Attributes = 1 << iota
	// AttrDim renders faint or decreased-intensity text.
	AttrDim
	// AttrItalic renders italic text.
	AttrItalic
	// AttrUnderline renders underlined text.
	AttrUnderline
	// AttrBlink renders slowly blinking text.
	AttrBlink
	// AttrBlink2 renders rapidly blinking text.
	AttrBlink2
	// AttrReverse swaps foreground and background.
	AttrReverse
	// AttrConceal hides the text.
	AttrConceal
	// AttrStrike renders struck-through text.
	AttrStrike
	// AttrUnderline2 renders doubly underlined text.
	AttrUnderline2
	// AttrFrame renders framed text.
	AttrFrame
	// AttrEncircle renders encircled text.
	AttrEncircle
	// AttrOverline renders overlined text.
	AttrOverline
)

var attributeSGR = [...]struct {
	attr Attributes
	code string
}{
	{AttrBold, "1"},
	{AttrDim, "2"},
	{AttrItalic, "3"},
	{AttrUnderline, "4"},
	{AttrBlink, "5"},
	{AttrBlink2, "6"},
	{AttrReverse, "7"},
	{AttrConceal, "8"},
	{AttrStrike, "9"},
	{AttrUnderline2, "21"},
	{AttrFrame, "51"},
	{AttrEncircle, "52"},
	{AttrOverline, "53"},
}

// Contains reports whether every bit of other is set in a.
func (a Attributes) Contains(other Attributes) bool {
	return a&other == other
}

// SGRCodes returns the SGR parameters for every enabled attribute, in
// fixed code order.
func (a Attributes) SGRCodes() []string {
	var codes []string
	for _, entry := range attributeSGR {
		if a.Contains(entry.attr) {
			codes = append(codes, entry.code)
		}
	}
	return codes
}

// Style is the visual appearance of a piece of text: optional
// foreground and background colors, text attributes, and an optional
// hyperlink. Styles are immutable values; builder methods return
// modified copies. Combining styles overlays the right-hand side over
// the left.
type Style struct {
	fg            Color
	bg            Color
	hasFg         bool
	hasBg         bool
	attributes    Attributes
	setAttributes Attributes
	hyperlink     string
	hasLink       bool
	null          bool
}

// NewStyle returns an empty style to build on.
func NewStyle() Style {
	return Style{}
}

// NullStyle returns the no-op style.
func NullStyle() Style {
	return Style{null: true}
}

// IsNull reports whether this is the no-op style.
func (s Style) IsNull() bool {
	return s.null
}

// Color returns the foreground color if one is set.
func (s Style) Color() (Color, bool) {
	return s.fg, s.hasFg
}

// Background returns the background color if one is set.
func (s Style) Background() (Color, bool) {
	return s.bg, s.hasBg
}

// Link returns the hyperlink URL if one is set.
func (s Style) Link() (string, bool) {
	return s.hyperlink, s.hasLink
}

// Attributes returns the enabled attributes.
func (s Style) Attributes() Attributes {
	return s.attributes
}

// ExplicitAttributes returns the attributes explicitly stated by this
// style, whether enabled or cleared.
func (s Style) ExplicitAttributes() Attributes {
	return s.setAttributes
}

// WithColor sets the foreground color.
func (s Style) WithColor(c Color) Style {
	s.fg = c
	s.hasFg = true
	s.null = false
	return s
}

// WithColorName parses and sets the foreground color.
func (s Style) WithColorName(name string) (Style, error) {
	c, err := ParseColor(name)
	if err != nil {
		return Style{}, fmt.Errorf("color error: %w", err)
	}
	return s.WithColor(c), nil
}

// WithBackground sets the background color.
func (s Style) WithBackground(c Color) Style {
	s.bg = c
	s.hasBg = true
	s.null = false
	return s
}

// WithBackgroundName parses and sets the background color.
func (s Style) WithBackgroundName(name string) (Style, error) {
	c, err := ParseColor(name)
	if err != nil {
		return Style{}, fmt.Errorf("color error: %w", err)
	}
	return s.WithBackground(c), nil
}

// WithAttributes enables attributes and marks them explicit.
func (s Style) WithAttributes(attr Attributes) Style {
	s.attributes |= attr
	s.setAttributes |= attr
	s.null = false
	return s
}

// Not clears attributes and marks them explicit, so combining
// suppresses them in the base style.
func (s Style) Not(attr Attributes) Style {
	s.attributes &^= attr
	s.setAttributes |= attr
	s.null = false
	return s
}

// Bold enables bold text.
func (s Style) Bold() Style { return s.WithAttributes(AttrBold) }

// Dim enables dim text.
func (s Style) Dim() Style { return s.WithAttributes(AttrDim) }

// Italic enables italic text.
func (s Style) Italic() Style { return s.WithAttributes(AttrItalic) }

// Underline enables underlined text.
func (s Style) Underline() Style { return s.WithAttributes(AttrUnderline) }

// Blink enables blinking text.
func (s Style) Blink() Style { return s.WithAttributes(AttrBlink) }

// Reverse enables reverse video.
func (s Style) Reverse() Style { return s.WithAttributes(AttrReverse) }

// Conceal enables concealed text.
func (s Style) Conceal() Style { return s.WithAttributes(AttrConceal) }

// Strike enables struck-through text.
func (s Style) Strike() Style { return s.WithAttributes(AttrStrike) }

// Overline enables overlined text.
func (s Style) Overline() Style { return s.WithAttributes(AttrOverline) }

// WithLink sets a hyperlink URL.
func (s Style) WithLink(url string) Style {
	s.hyperlink = url
	s.hasLink = true
	s.null = false
	return s
}

// Combine overlays other on s. Properties stated by other win;
// everything else is inherited from s. Null styles are identities.
func (s Style) Combine(other Style) Style {
	if other.null {
		return s
	}
	if s.null {
		return other
	}

	out := Style{
		attributes: (s.attributes &^ other.setAttributes) |
			(other.attributes & other.setAttributes),
		setAttributes: s.setAttributes | other.setAttributes,
	}
	if other.hasFg {
		out.fg, out.hasFg = other.fg, true
	} else {
		out.fg, out.hasFg = s.fg, s.hasFg
	}
	if other.hasBg {
		out.bg, out.hasBg = other.bg, true
	} else {
		out.bg, out.hasBg = s.bg, s.hasBg
	}
	if other.hasLink {
		out.hyperlink, out.hasLink = other.hyperlink, true
	} else {
		out.hyperlink, out.hasLink = s.hyperlink, s.hasLink
	}
	return out
}

// ANSICodes builds the joined SGR parameter list for this style:
// attribute codes, then foreground, then background.
func (s Style) ANSICodes(system ColorSystem) string {
	codes := s.attributes.SGRCodes()
	if s.hasFg {
		codes = append(codes, s.fg.Downgrade(system).ANSICodes(true)...)
	}
	if s.hasBg {
		codes = append(codes, s.bg.Downgrade(system).ANSICodes(false)...)
	}
	return strings.Join(codes, ";")
}

// Render wraps text in the escape sequences for this style, including
// OSC 8 hyperlinks.
func (s Style) Render(text string, system ColorSystem) string {
	if s.null {
		return text
	}

	codes := s.ANSICodes(system)
	if codes == "" && !s.hasLink {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(codes) + 50)

	if s.hasLink {
		b.WriteString("\x1b]8;;")
		b.WriteString(s.hyperlink)
		b.WriteString("\x1b\\")
	}
	if codes != "" {
		b.WriteString("\x1b[")
		b.WriteString(codes)
		b.WriteString("m")
	}
	b.WriteString(text)
	if codes != "" {
		b.WriteString("\x1b[0m")
	}
	if s.hasLink {
		b.WriteString("\x1b]8;;\x1b\\")
	}

	return b.String()
}

// RenderANSI returns the escape sequences to emit before and after a
// run of text in this style. Styles with no SGR codes produce nothing,
// even when a hyperlink is set.
func (s Style) RenderANSI(system ColorSystem) (string, string) {
	if s.null {
		return "", ""
	}

	codes := s.ANSICodes(system)
	if codes == "" {
		return "", ""
	}

	var prefix strings.Builder
	if s.hasLink {
		prefix.WriteString("\x1b]8;;")
		prefix.WriteString(s.hyperlink)
		prefix.WriteString("\x1b\\")
	}
	prefix.WriteString("\x1b[")
	prefix.WriteString(codes)
	prefix.WriteString("m")

	suffix := "\x1b[0m"
	if s.hasLink {
		suffix = "\x1b[0m\x1b]8;;\x1b\\"
	}

	return prefix.String(), suffix
}

// String renders the style in its parseable text form.
func (s Style) String() string {
	if s.null {
		return "none"
	}

	var parts []string
	for _, entry := range [...]struct {
		attr Attributes
		name string
	}{
		{AttrBold, "bold"},
		{AttrDim, "dim"},
		{AttrItalic, "italic"},
		{AttrUnderline, "underline"},
		{AttrBlink, "blink"},
		{AttrReverse, "reverse"},
		{AttrConceal, "conceal"},
		{AttrStrike, "strike"},
		{AttrOverline, "overline"},
	} {
		if !s.setAttributes.Contains(entry.attr) {
			continue
		}
		if s.attributes.Contains(entry.attr) {
			parts = append(parts, entry.name)
		} else {
			parts = append(parts, "not "+entry.name)
		}
	}

	if s.hasFg {
		parts = append(parts, s.fg.String())
	}
	if s.hasBg {
		parts = append(parts, "on "+s.bg.String())
	}
	if s.hasLink {
		parts = append(parts, "link "+s.hyperlink)
	}

	return strings.Join(parts, " ")
}

// Style parse errors, matched with errors.Is. Color failures inside a
// style are wrapped and still match their color error values.
var (
	ErrInvalidStyleFormat = errors.New("invalid style format")
	ErrUnknownAttribute   = errors.New("unknown attribute")
	ErrUnknownToken       = errors.New("unknown token")
)

var attributeNames = map[string]Attributes{
	"bold":       AttrBold,
	"b":          AttrBold,
	"dim":        AttrDim,
	"d":          AttrDim,
	"italic":     AttrItalic,
	"i":          AttrItalic,
	"underline":  AttrUnderline,
	"u":          AttrUnderline,
	"blink":      AttrBlink,
	"blink2":     AttrBlink2,
	"reverse":    AttrReverse,
	"r":          AttrReverse,
	"conceal":    AttrConceal,
	"c":          AttrConceal,
	"strike":     AttrStrike,
	"s":          AttrStrike,
	"underline2": AttrUnderline2,
	"uu":         AttrUnderline2,
	"frame":      AttrFrame,
	"encircle":   AttrEncircle,
	"overline":   AttrOverline,
	"o":          AttrOverline,
}

// ParseStyle parses a style definition such as "bold red on white" or
// "not dim link https://example.com". Results are memoized.
func ParseStyle(style string) (Style, error) {
	normalized := strings.ToLower(strings.TrimSpace(style))

	cache := styleCache
	if cache != nil {
		if cached, ok := cache.Get(normalized); ok {
			return cached, nil
		}
	}

	result, err := parseStyleUncached(normalized)
	if err != nil {
		return Style{}, err
	}

	if cache != nil {
		cache.Add(normalized, result)
	}
	return result, nil
}

func parseStyleUncached(style string) (Style, error) {
	if style == "" || style == "none" {
		return NullStyle(), nil
	}

	result := NewStyle()
	words := strings.Fields(style)

	for i := 0; i < len(words); i++ {
		word := words[i]

		switch word {
		case "not":
			if i+1 >= len(words) {
				return Style{}, fmt.Errorf("%w: 'not' requires an attribute", ErrInvalidStyleFormat)
			}
			i++
			attr, ok := attributeNames[words[i]]
			if !ok {
				return Style{}, fmt.Errorf("%w: %s", ErrUnknownAttribute, words[i])
			}
			result = result.Not(attr)
			continue

		case "on":
			if i+1 >= len(words) {
				return Style{}, fmt.Errorf("%w: 'on' requires a color", ErrInvalidStyleFormat)
			}
			i++
			withBg, err := result.WithBackgroundName(words[i])
			if err != nil {
				return Style{}, err
			}
			result = withBg
			continue

		case "link":
			if i+1 >= len(words) {
				return Style{}, fmt.Errorf("%w: 'link' requires a URL", ErrInvalidStyleFormat)
			}
			i++
			result = result.WithLink(words[i])
			continue
		}

		if attr, ok := attributeNames[word]; ok {
			result = result.WithAttributes(attr)
			continue
		}

		if c, err := ParseColor(word); err == nil {
			result = result.WithColor(c)
			continue
		}

		return Style{}, fmt.Errorf("%w: %s", ErrUnknownToken, word)
	}

	return result, nil
}

// StyleStack tracks nested styles during rendering. The base style is
// never popped.
type StyleStack struct {
	stack []Style
}

// NewStyleStack returns a stack seeded with a base style.
func NewStyleStack(base Style) *StyleStack {
	return &StyleStack{stack: []Style{base}}
}

// Current returns the effective combined style.
func (s *StyleStack) Current() Style {
	return s.stack[len(s.stack)-1]
}

// Push combines style with the current one and makes it effective.
func (s *StyleStack) Push(style Style) {
	s.stack = append(s.stack, s.Current().Combine(style))
}

// Pop discards the most recent style and returns the new current one.
// Popping with only the base left is a no-op.
func (s *StyleStack) Pop() Style {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
	return s.Current()
}

// Len reports the stack depth including the base style.
func (s *StyleStack) Len() int {
	return len(s.stack)
}
