package prakt

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ErrInvalidTag is the category for malformed tag syntax.
var ErrInvalidTag = errors.New("invalid tag")

// UnmatchedClosingTagError reports a closing tag with nothing to
// close. Name is empty for the implicit [/] form.
type UnmatchedClosingTagError struct {
	Name string
}

func (e *UnmatchedClosingTagError) Error() string {
	if e.Name == "" {
		return "closing tag '[/]' has nothing to close"
	}
	return fmt.Sprintf("closing tag '[/%s]' doesn't match any open tag", e.Name)
}

// Tag is a parsed markup tag. Tags exist only during parsing and are
// discarded once converted into spans.
type Tag struct {
	// Name is the tag name, prefixed "/" for closing tags.
	Name string
	// Parameter holds the value of [name=value] and [@handler(args)]
	// forms.
	Parameter string
	// HasParam distinguishes an empty parameter from none at all.
	HasParam bool
}

// IsClosing reports whether the tag closes an open tag.
func (t Tag) IsClosing() bool {
	return strings.HasPrefix(t.Name, "/")
}

// BaseName returns the tag name without the closing slash.
func (t Tag) BaseName() string {
	if t.IsClosing() {
		return t.Name[1:]
	}
	return t.Name
}

var tagPattern = regexp.MustCompile(`(\\*)\[([a-z#/@][^\[\]]*?)\]`)

type parsedElement struct {
	text  string
	tag   Tag
	isTag bool
}

// parseElements scans markup into literal text runs and tags. An odd
// number of backslashes before a bracket escapes it; pairs collapse
// to literal backslashes.
func parseElements(markup string) []parsedElement {
	var elements []parsedElement
	lastEnd := 0

	for _, m := range tagPattern.FindAllStringSubmatchIndex(markup, -1) {
		start, end := m[0], m[1]
		backslashes := m[3] - m[2]
		content := markup[m[4]:m[5]]

		if start > lastEnd {
			elements = append(elements, parsedElement{text: markup[lastEnd:start]})
		}
		if literal := backslashes / 2; literal > 0 {
			elements = append(elements, parsedElement{text: strings.Repeat(`\`, literal)})
		}
		if backslashes%2 == 1 {
			elements = append(elements, parsedElement{text: "[" + content + "]"})
		} else {
			elements = append(elements, parsedElement{tag: parseTag(content), isTag: true})
		}
		lastEnd = end
	}

	if lastEnd < len(markup) {
		elements = append(elements, parsedElement{text: markup[lastEnd:]})
	}
	return elements
}

// parseTag splits tag content into a name and an optional parameter,
// for both the name=value and @handler(args) forms.
func parseTag(content string) Tag {
	trimmed := strings.TrimSpace(content)

	if eq := strings.Index(trimmed, "="); eq >= 0 {
		return Tag{
			Name:      strings.TrimSpace(trimmed[:eq]),
			Parameter: strings.TrimSpace(trimmed[eq+1:]),
			HasParam:  true,
		}
	}

	if strings.HasPrefix(trimmed, "@") || strings.HasPrefix(trimmed, "/@") {
		if lparen := strings.Index(trimmed, "("); lparen >= 0 {
			if rparen := strings.LastIndex(trimmed, ")"); rparen > lparen {
				return Tag{
					Name:      trimmed[:lparen],
					Parameter: trimmed[lparen+1 : rparen],
					HasParam:  true,
				}
			}
		}
	}

	return Tag{Name: trimmed}
}

type openTag struct {
	start int
	tag   Tag
}

// RenderMarkup parses [style]text[/style] markup into a styled Text.
// Unclosed tags are auto-closed at end of input; a closing tag with
// nothing open fails with UnmatchedClosingTagError.
func RenderMarkup(markup string) (*Text, error) {
	// Fast path: nothing to parse.
	if !strings.Contains(markup, "[") {
		return NewText(markup), nil
	}

	text := NewText("")
	var stack []openTag
	var spans []Span

	for _, el := range parseElements(markup) {
		if !el.isTag {
			text.Append(strings.ReplaceAll(el.text, `\[`, "["))
			continue
		}

		tag := el.tag
		if !tag.IsClosing() {
			stack = append(stack, openTag{start: text.Len(), tag: tag})
			continue
		}

		name := strings.TrimSpace(tag.BaseName())
		var open openTag
		if name == "" {
			if len(stack) == 0 {
				return nil, &UnmatchedClosingTagError{}
			}
			open = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		} else {
			idx := findMatching(stack, name)
			if idx < 0 {
				return nil, &UnmatchedClosingTagError{Name: name}
			}
			open = stack[idx]
			stack = append(stack[:idx], stack[idx+1:]...)
		}

		if end := text.Len(); open.start < end {
			spans = append(spans, NewSpan(open.start, end, tagStyle(open.tag)))
		}
	}

	// Auto-close whatever is still open, innermost first.
	for i := len(stack) - 1; i >= 0; i-- {
		if end := text.Len(); stack[i].start < end {
			spans = append(spans, NewSpan(stack[i].start, end, tagStyle(stack[i].tag)))
		}
	}

	// Spans accumulate in closing order, inner tags first. Reverse and
	// stable-sort by start so inner tags overlay outer ones.
	slices.Reverse(spans)
	slices.SortStableFunc(spans, func(a, b Span) int { return cmp.Compare(a.Start, b.Start) })
	text.spans = spans

	return text, nil
}

// findMatching searches the stack from the top for a tag whose name
// or first word matches, case-insensitive.
func findMatching(stack []openTag, name string) int {
	search := strings.ToLower(name)
	for i := len(stack) - 1; i >= 0; i-- {
		tagName := strings.ToLower(stack[i].tag.Name)
		first := tagName
		if fields := strings.Fields(tagName); len(fields) > 0 {
			first = fields[0]
		}
		if first == search || tagName == search {
			return i
		}
	}
	return -1
}

// tagStyle resolves a tag to a style. The reserved link tag sets the
// hyperlink from its parameter; anything else is parsed with the
// style grammar, degrading to an empty style on error.
func tagStyle(tag Tag) Style {
	if strings.EqualFold(tag.Name, "link") && tag.HasParam {
		return NewStyle().WithLink(tag.Parameter)
	}
	style, err := ParseStyle(tag.Name)
	if err != nil {
		return NewStyle()
	}
	return style
}

// RenderMarkupOrPlain renders markup, degrading to the literal string
// on any parse error.
func RenderMarkupOrPlain(markup string) *Text {
	text, err := RenderMarkup(markup)
	if err != nil {
		return NewText(markup)
	}
	return text
}

// EscapeMarkup escapes opening brackets so the string renders
// literally.
func EscapeMarkup(text string) string {
	return strings.ReplaceAll(text, "[", `\[`)
}
