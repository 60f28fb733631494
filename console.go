package prakt

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"pkt.systems/prakt/internal/term"
	"pkt.systems/pslog"
)

// Console writes styled text to a terminal, degrading to plain output
// when the writer is a pipe or the terminal cannot show color. All
// print methods are safe for concurrent use.
type Console struct {
	mu        sync.Mutex
	out       io.Writer
	logger    pslog.Logger
	themes    *ThemeStack
	record    []Segment
	recording bool

	colorSystem ColorSystem
	isTerminal  bool
	width       int
	height      int
	markup      bool
	tabSize     int
	safeBox     bool
}

// ConsoleOption configures a Console.
type ConsoleOption func(*consoleOptions)

type consoleOptions struct {
	out           io.Writer
	logger        pslog.Logger
	colorSystem   ColorSystem
	colorSet      bool
	forceTerminal bool
	forceSet      bool
	width         int
	height        int
	markup        bool
	tabSize       int
	safeBox       bool
	theme         *Theme
}

// WithWriter directs console output to w instead of stdout.
func WithWriter(w io.Writer) ConsoleOption {
	return func(o *consoleOptions) { o.out = w }
}

// WithColorSystem pins the color system instead of detecting it.
// ColorSystemNone disables color entirely.
func WithColorSystem(system ColorSystem) ConsoleOption {
	return func(o *consoleOptions) {
		o.colorSystem = system
		o.colorSet = true
	}
}

// WithForceTerminal overrides terminal detection. Forcing true keeps
// color and control output on even when the writer is not a terminal.
func WithForceTerminal(force bool) ConsoleOption {
	return func(o *consoleOptions) {
		o.forceTerminal = force
		o.forceSet = true
	}
}

// WithWidth pins the console width instead of querying the terminal.
func WithWidth(width int) ConsoleOption {
	return func(o *consoleOptions) { o.width = width }
}

// WithHeight pins the console height instead of querying the terminal.
func WithHeight(height int) ConsoleOption {
	return func(o *consoleOptions) { o.height = height }
}

// WithMarkup turns markup parsing in Print on or off. Markup is on by
// default.
func WithMarkup(enabled bool) ConsoleOption {
	return func(o *consoleOptions) { o.markup = enabled }
}

// WithTabSize sets the tab expansion width for strings printed through
// the console. Prepared texts keep their own tab size.
func WithTabSize(size int) ConsoleOption {
	return func(o *consoleOptions) { o.tabSize = size }
}

// WithSafeBox restricts rules to plain ASCII characters.
func WithSafeBox(safe bool) ConsoleOption {
	return func(o *consoleOptions) { o.safeBox = safe }
}

// WithTheme replaces the default theme as the base of the theme stack.
func WithTheme(theme *Theme) ConsoleOption {
	return func(o *consoleOptions) { o.theme = theme }
}

// WithLogger sets the logger for console diagnostics.
func WithLogger(logger pslog.Logger) ConsoleOption {
	return func(o *consoleOptions) { o.logger = logger }
}

// NewConsole builds a console, detecting terminal capabilities from
// the writer and environment. Detection runs after the options apply,
// so forcing terminal output also enables color on piped writers.
func NewConsole(opts ...ConsoleOption) *Console {
	cfg := consoleOptions{
		out:     os.Stdout,
		markup:  true,
		tabSize: 8,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Console{
		out:     cfg.out,
		logger:  ensureLogger(cfg.logger).With("component", "console"),
		markup:  cfg.markup,
		tabSize: cfg.tabSize,
		safeBox: cfg.safeBox,
	}

	c.isTerminal = term.IsTerminal(cfg.out)
	if cfg.forceSet {
		c.isTerminal = cfg.forceTerminal
	}

	switch {
	case cfg.colorSet:
		c.colorSystem = cfg.colorSystem
	case c.isTerminal:
		c.colorSystem = colorSystemFromLevel(term.DetectColorLevel(c.isTerminal))
	default:
		c.colorSystem = ColorSystemNone
	}

	c.width, c.height = term.Size(cfg.out)
	if cfg.width > 0 {
		c.width = cfg.width
	}
	if cfg.height > 0 {
		c.height = cfg.height
	}

	base := cfg.theme
	if base == nil {
		base = DefaultTheme()
	}
	c.themes = NewThemeStack(base)

	return c
}

func ensureLogger(logger pslog.Logger) pslog.Logger {
	if logger != nil {
		return logger
	}
	return pslog.LoggerFromEnv()
}

func colorSystemFromLevel(level term.ColorLevel) ColorSystem {
	switch level {
	case term.LevelStandard:
		return ColorSystemStandard
	case term.LevelEightBit:
		return ColorSystemEightBit
	case term.LevelTrueColor:
		return ColorSystemTrueColor
	default:
		return ColorSystemNone
	}
}

// TerminalSize reports the dimensions of w when w is a terminal.
func TerminalSize(w io.Writer) (width, height int, ok bool) {
	return term.QuerySize(w)
}

// Width returns the console width in cells.
func (c *Console) Width() int { return c.width }

// Height returns the console height in rows.
func (c *Console) Height() int { return c.height }

// Size returns the console dimensions.
func (c *Console) Size() (width, height int) { return c.width, c.height }

// ColorSystem returns the color system output is rendered with.
func (c *Console) ColorSystem() ColorSystem { return c.colorSystem }

// IsTerminal reports whether output is treated as a terminal.
func (c *Console) IsTerminal() bool { return c.isTerminal }

// GetStyle resolves a style through the theme stack, falling back to
// parsing the name as a style definition.
func (c *Console) GetStyle(name string) (Style, error) {
	c.mu.Lock()
	style, ok := c.themes.Get(name)
	c.mu.Unlock()
	if ok {
		return style, nil
	}
	return ParseStyle(name)
}

// PushTheme overlays a theme for subsequent style lookups. When
// inherit is true the current styles show through where the new theme
// has no entry.
func (c *Console) PushTheme(theme *Theme, inherit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.themes.Push(theme, inherit)
}

// PopTheme removes the most recently pushed theme. The base theme
// cannot be popped.
func (c *Console) PopTheme() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.themes.Pop()
}

// PrintOptions adjust a single print call. The zero value wraps to the
// console width, keeps the text's own justification and overflow, and
// ends with a newline.
type PrintOptions struct {
	// Style is layered under any styles the text already carries.
	Style Style
	// Justify overrides the text's justification when not JustifyDefault.
	Justify Justify
	// Overflow overrides the text's overflow policy when not
	// OverflowFold. To force folding, set the policy on the Text itself.
	Overflow Overflow
	// NoWrap disables wrapping for this call.
	NoWrap bool
	// Width overrides the console width when positive.
	Width int
	// End replaces the trailing newline when non-empty.
	End string
	// NoNewline drops the trailing newline when End is empty.
	NoNewline bool
	// Plain prints the message literally even when markup is enabled.
	Plain bool
}

// Print renders markup (when enabled) and writes the result wrapped to
// the console width, followed by a newline.
func (c *Console) Print(message string) {
	c.PrintWith(message, PrintOptions{})
}

// PrintWith is Print with per-call options.
func (c *Console) PrintWith(message string, opts PrintOptions) {
	c.printText(c.renderString(message, opts.Plain), opts)
}

// PrintText writes a prepared text exactly as rendered: no wrapping,
// no justification, ending with the text's own End string.
func (c *Console) PrintText(t *Text) {
	c.PrintSegments(t.Render(t.End))
}

// PrintTextWith wraps and justifies a prepared text per the options.
func (c *Console) PrintTextWith(t *Text, opts PrintOptions) {
	c.printText(t, opts)
}

// renderString parses message as markup unless disabled, falling back
// to the literal string on bad markup.
func (c *Console) renderString(message string, plain bool) *Text {
	var text *Text
	if plain || !c.markup {
		text = NewText(message)
	} else if parsed, err := RenderMarkup(message); err != nil {
		c.logger.Debug("markup render failed, printing literally", "err", err)
		text = NewText(message)
	} else {
		text = parsed
	}
	text.TabSize = c.tabSize
	return text
}

func (c *Console) printText(t *Text, opts PrintOptions) {
	text := t.clone()

	if !opts.Style.IsNull() && opts.Style != (Style{}) {
		text.SetStyle(opts.Style.Combine(text.Style()))
	}
	if opts.Justify != JustifyDefault {
		text.Justify = opts.Justify
	}
	if opts.Overflow != OverflowFold {
		text.Overflow = opts.Overflow
	}
	if opts.NoWrap {
		text.NoWrap = true
	}

	width := c.width
	if opts.Width > 0 {
		width = opts.Width
	}

	lines := text.Wrap(width)
	if text.Justify != JustifyDefault {
		JustifyLines(lines, width, text.Justify)
	}

	end := opts.End
	if end == "" && !opts.NoNewline {
		end = "\n"
	}

	var segments []Segment
	for i, line := range lines {
		segments = append(segments, line.Render("")...)
		if i < len(lines)-1 {
			segments = append(segments, LineSegment())
		}
	}
	if end != "" {
		segments = append(segments, PlainSegment(end))
	}
	c.PrintSegments(segments)
}

// PrintSegments writes segments to the console, translating styles and
// control codes for the detected capabilities. During a capture the
// segments are recorded instead of written.
func (c *Console) PrintSegments(segments []Segment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recording {
		c.record = append(c.record, segments...)
		return
	}
	c.renderSegments(c.out, segments)
}

// BeginCapture redirects subsequent output into an internal buffer
// until EndCapture is called.
func (c *Console) BeginCapture() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recording = true
	c.record = c.record[:0]
}

// EndCapture stops capturing and returns everything printed since
// BeginCapture, rendered exactly as it would have been written.
func (c *Console) EndCapture() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var b strings.Builder
	c.renderSegments(&b, c.record)
	c.recording = false
	c.record = nil
	return b.String()
}

// renderSegments turns segments into bytes on w. Control segments are
// translated only for terminals; styles render only when the color
// system allows. Callers hold c.mu.
func (c *Console) renderSegments(w io.Writer, segments []Segment) {
	for _, segment := range segments {
		if segment.IsControl() {
			if !c.isTerminal {
				continue
			}
			for _, code := range segment.Control {
				_, _ = io.WriteString(w, controlANSI(code, segment.Text))
			}
			continue
		}
		if c.colorSystem == ColorSystemNone {
			_, _ = io.WriteString(w, segment.Text)
			continue
		}
		_, _ = io.WriteString(w, segment.Style.Render(segment.Text, c.colorSystem))
	}
}

// controlANSI translates one control code to its escape sequence.
// Cursor positions are zero-based here and one-based on the wire.
func controlANSI(code ControlCode, title string) string {
	switch code.Type {
	case ControlBell:
		return "\a"
	case ControlCarriageReturn:
		return "\r"
	case ControlHome:
		return "\x1b[H"
	case ControlClear:
		return "\x1b[2J"
	case ControlShowCursor:
		return "\x1b[?25h"
	case ControlHideCursor:
		return "\x1b[?25l"
	case ControlEnableAltScreen:
		return "\x1b[?1049h"
	case ControlDisableAltScreen:
		return "\x1b[?1049l"
	case ControlCursorUp:
		return fmt.Sprintf("\x1b[%dA", controlParam(code, 0, 1))
	case ControlCursorDown:
		return fmt.Sprintf("\x1b[%dB", controlParam(code, 0, 1))
	case ControlCursorForward:
		return fmt.Sprintf("\x1b[%dC", controlParam(code, 0, 1))
	case ControlCursorBackward:
		return fmt.Sprintf("\x1b[%dD", controlParam(code, 0, 1))
	case ControlCursorMoveToColumn:
		return fmt.Sprintf("\x1b[%dG", controlParam(code, 0, 0)+1)
	case ControlCursorMoveTo:
		x := controlParam(code, 0, 0)
		y := controlParam(code, 1, 0)
		return fmt.Sprintf("\x1b[%d;%dH", y+1, x+1)
	case ControlEraseInLine:
		return fmt.Sprintf("\x1b[%dK", controlParam(code, 0, 0))
	case ControlSetWindowTitle:
		return "\x1b]0;" + title + "\a"
	}
	return ""
}

func controlParam(code ControlCode, idx, fallback int) int {
	if idx < len(code.Params) {
		return code.Params[idx]
	}
	return fallback
}

// Line prints count blank lines.
func (c *Console) Line(count int) {
	if count <= 0 {
		return
	}
	c.PrintSegments([]Segment{PlainSegment(strings.Repeat("\n", count))})
}

// Bell rings the terminal bell.
func (c *Console) Bell() {
	c.PrintSegments([]Segment{RingBell()})
}

// Clear clears the screen and homes the cursor.
func (c *Console) Clear() {
	c.PrintSegments([]Segment{ClearScreen(), CursorHome()})
}

// ClearLine returns the cursor to the start of the current line and
// erases it.
func (c *Console) ClearLine() {
	c.PrintSegments([]Segment{ControlSegment(
		NewControlCode(ControlCarriageReturn),
		NewControlCode(ControlEraseInLine, 2),
	)})
}

// ShowCursor makes the cursor visible.
func (c *Console) ShowCursor() {
	c.PrintSegments([]Segment{ShowCursor(true)})
}

// HideCursor hides the cursor.
func (c *Console) HideCursor() {
	c.PrintSegments([]Segment{ShowCursor(false)})
}

// AltScreen switches the alternate screen on or off.
func (c *Console) AltScreen(enable bool) {
	c.PrintSegments([]Segment{AltScreen(enable)})
}

// MoveTo moves the cursor to a zero-based position.
func (c *Console) MoveTo(x, y int) {
	c.PrintSegments([]Segment{MoveTo(x, y)})
}

// SetTitle sets the terminal window title.
func (c *Console) SetTitle(title string) {
	c.PrintSegments([]Segment{WindowTitle(title)})
}
