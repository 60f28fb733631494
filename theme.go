package prakt

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

// defaultThemeYAML is the built-in style table, in the same format
// LoadTheme reads from disk.
const defaultThemeYAML = `
styles:
  # basics
  none: none
  reset: default on default not bold not dim not italic not underline not blink not blink2 not reverse not conceal not strike
  dim: dim
  bright: not dim
  bold: bold
  strong: bold
  code: reverse bold
  italic: italic
  emphasize: italic
  underline: underline
  blink: blink
  blink2: blink2
  reverse: reverse
  strike: strike

  # plain colors
  black: black
  red: red
  green: green
  yellow: yellow
  magenta: magenta
  cyan: cyan
  white: white

  # inspection output
  inspect.attr: yellow italic
  inspect.attr.dunder: yellow italic dim
  inspect.callable: bold red
  inspect.async_def: italic bright_cyan
  inspect.def: italic bright_cyan
  inspect.class: italic bright_cyan
  inspect.error: bold red
  inspect.equals: none
  inspect.help: cyan
  inspect.doc: dim
  inspect.value.border: green

  # live display
  live.ellipsis: bold red
  layout.tree.row: not dim red
  layout.tree.column: not dim blue

  # logging
  logging.keyword: bold yellow
  logging.level.notset: dim
  logging.level.debug: green
  logging.level.info: blue
  logging.level.warning: red
  logging.level.error: red bold
  logging.level.critical: red bold reverse
  log.level: none
  log.time: cyan dim
  log.message: none
  log.path: dim

  # repr highlighting
  repr.ellipsis: yellow
  repr.indent: green dim
  repr.error: red bold
  repr.str: green not italic not bold
  repr.brace: bold
  repr.comma: bold
  repr.ipv4: bold bright_green
  repr.ipv6: bold bright_green
  repr.eui48: bold bright_green
  repr.eui64: bold bright_green
  repr.tag_start: bold
  repr.tag_name: bright_magenta bold
  repr.tag_contents: default
  repr.tag_end: bold
  repr.attrib_name: yellow not italic
  repr.attrib_equal: bold
  repr.attrib_value: magenta not italic
  repr.number: cyan bold not italic
  repr.number_complex: cyan bold not italic
  repr.bool_true: bright_green italic
  repr.bool_false: bright_red italic
  repr.none: magenta italic
  repr.url: underline bright_blue not italic not bold
  repr.uuid: bright_yellow not bold
  repr.call: magenta bold
  repr.path: magenta
  repr.filename: bright_magenta

  # rules and markup
  rule.line: bright_green
  rule.text: none
  markup.error: bold red

  # json highlighting
  json.brace: bold
  json.bool_true: bright_green italic
  json.bool_false: bright_red italic
  json.null: magenta italic
  json.number: cyan bold not italic
  json.str: green not italic not bold
  json.key: blue bold

  # prompts
  prompt: none
  prompt.choices: magenta bold
  prompt.default: cyan bold
  prompt.invalid: red
  prompt.invalid.choice: red

  # pretty printing and scopes
  pretty: none
  scope.border: blue
  scope.key: yellow italic
  scope.key.special: yellow italic dim
  scope.equals: red

  # tables
  table.header: bold
  table.footer: bold
  table.cell: none
  table.title: italic
  table.caption: italic dim

  # tracebacks
  traceback.error: red italic
  traceback.border.syntax_error: bright_red
  traceback.border: red
  traceback.text: none
  traceback.title: red bold
  traceback.exc_type: bright_red bold
  traceback.exc_value: none
  traceback.offset: bright_red bold

  # progress bars
  bar.back: grey23
  bar.complete: rgb(249,38,114)
  bar.finished: rgb(114,156,31)
  bar.pulse: rgb(249,38,114)
  progress.description: none
  progress.filesize: green
  progress.filesize.total: green
  progress.download: green
  progress.elapsed: yellow
  progress.percentage: magenta
  progress.remaining: cyan
  progress.data.speed: red
  progress.spinner: green
  status.spinner: green

  # trees
  tree: none
  tree.line: none

  # markdown
  markdown.paragraph: none
  markdown.text: none
  markdown.em: italic
  markdown.strong: bold
  markdown.code: bold cyan on black
  markdown.code_block: cyan on black
  markdown.block_quote: magenta
  markdown.list: cyan
  markdown.item: none
  markdown.item.bullet: yellow bold
  markdown.item.number: yellow bold
  markdown.hr: yellow
  markdown.h1.border: none
  markdown.h1: bold
  markdown.h2: bold underline
  markdown.h3: bold
  markdown.h4: bold underline
  markdown.h5: underline
  markdown.h6: italic
  markdown.link: bright_blue
  markdown.link_url: blue underline
  markdown.s: strike

  # timestamps
  iso8601.date: blue
  iso8601.time: magenta
  iso8601.timezone: yellow
`

var defaultStyles = sync.OnceValue(func() map[string]Style {
	var file themeFile
	if err := yaml.Unmarshal([]byte(defaultThemeYAML), &file); err != nil {
		panic("built-in theme: " + err.Error())
	}
	styles := make(map[string]Style, len(file.Styles))
	for name, definition := range file.Styles {
		style, err := ParseStyle(definition)
		if err != nil {
			panic(fmt.Sprintf("built-in theme style %q: %v", name, err))
		}
		styles[name] = style
	}
	return styles
})

// Theme maps style names to styles for console lookup.
type Theme struct {
	styles map[string]Style
}

// NewTheme builds a theme from named styles. With inherit set the built-in
// table seeds the theme and styles override or extend it.
func NewTheme(styles map[string]Style, inherit bool) *Theme {
	var merged map[string]Style
	if inherit {
		merged = maps.Clone(defaultStyles())
	} else {
		merged = make(map[string]Style, len(styles))
	}
	maps.Copy(merged, styles)
	return &Theme{styles: merged}
}

// NewThemeFromDefinitions parses style definition strings ("bold red",
// "dim cyan") into a theme.
func NewThemeFromDefinitions(definitions map[string]string, inherit bool) (*Theme, error) {
	parsed := make(map[string]Style, len(definitions))
	for name, definition := range definitions {
		style, err := ParseStyle(definition)
		if err != nil {
			return nil, fmt.Errorf("theme style %q: %w", name, err)
		}
		parsed[name] = style
	}
	return NewTheme(parsed, inherit), nil
}

// DefaultTheme returns a theme holding only the built-in styles.
func DefaultTheme() *Theme {
	return NewTheme(nil, true)
}

// Get looks up a style by its theme name.
func (t *Theme) Get(name string) (Style, bool) {
	style, ok := t.styles[name]
	return style, ok
}

// Styles returns a copy of the theme's style table.
func (t *Theme) Styles() map[string]Style {
	return maps.Clone(t.styles)
}

// Config renders the theme in the YAML form LoadTheme reads, with names
// sorted.
func (t *Theme) Config() string {
	names := slices.Sorted(maps.Keys(t.styles))

	var b strings.Builder
	b.WriteString("styles:\n")
	for _, name := range names {
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(t.styles[name].String())
		b.WriteByte('\n')
	}
	return b.String()
}

// ErrNoThemeStyles reports a theme document without a styles map.
var ErrNoThemeStyles = errors.New("theme has no styles map")

type themeFile struct {
	Styles map[string]string `yaml:"styles"`
}

// ParseThemeYAML reads a theme from YAML with a top-level styles map of
// name to style definition.
func ParseThemeYAML(data []byte, inherit bool) (*Theme, error) {
	var file themeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	if file.Styles == nil {
		return nil, ErrNoThemeStyles
	}
	return NewThemeFromDefinitions(file.Styles, inherit)
}

// LoadTheme reads a YAML theme file from disk.
func LoadTheme(path string, inherit bool) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}
	theme, err := ParseThemeYAML(data, inherit)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return theme, nil
}

// ErrPopBaseTheme is returned when popping the last theme on a stack.
var ErrPopBaseTheme = errors.New("unable to pop base theme")

// ThemeStack layers themes so the top one answers lookups. The base theme
// is never popped.
type ThemeStack struct {
	entries []map[string]Style
}

// NewThemeStack returns a stack seeded with a base theme.
func NewThemeStack(base *Theme) *ThemeStack {
	return &ThemeStack{entries: []map[string]Style{maps.Clone(base.styles)}}
}

// Get looks up a style in the top-most theme.
func (s *ThemeStack) Get(name string) (Style, bool) {
	top := s.entries[len(s.entries)-1]
	style, ok := top[name]
	return style, ok
}

// Push layers a theme on the stack. With inherit set the new layer starts
// from the current top and theme overrides it; otherwise the layer holds
// only the theme's own styles.
func (s *ThemeStack) Push(theme *Theme, inherit bool) {
	var styles map[string]Style
	if inherit {
		styles = maps.Clone(s.entries[len(s.entries)-1])
		maps.Copy(styles, theme.styles)
	} else {
		styles = maps.Clone(theme.styles)
	}
	s.entries = append(s.entries, styles)
}

// Pop discards the top-most theme.
func (s *ThemeStack) Pop() error {
	if len(s.entries) == 1 {
		return ErrPopBaseTheme
	}
	s.entries = s.entries[:len(s.entries)-1]
	return nil
}
