// Package term detects terminal capabilities: whether a writer is a
// terminal, its size, and the color depth the environment advertises.
package term

import (
	"io"
	"os"
	"strings"

	xterm "golang.org/x/term"
)

// Fallback dimensions when the terminal size cannot be determined.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// ColorLevel is the color depth a terminal supports.
type ColorLevel int

const (
	LevelNone ColorLevel = iota
	LevelStandard
	LevelEightBit
	LevelTrueColor
)

func (l ColorLevel) String() string {
	switch l {
	case LevelStandard:
		return "standard"
	case LevelEightBit:
		return "256"
	case LevelTrueColor:
		return "truecolor"
	default:
		return "none"
	}
}

type fdWriter interface {
	Fd() uintptr
}

// IsTerminal reports whether w writes to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return xterm.IsTerminal(int(f.Fd()))
}

// QuerySize returns the terminal dimensions behind w. The bool is false
// when w is not a terminal or the size cannot be read.
func QuerySize(w io.Writer) (width, height int, ok bool) {
	f, isFile := w.(fdWriter)
	if !isFile {
		return 0, 0, false
	}
	width, height, err := xterm.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}

// Size returns the terminal dimensions behind w, falling back to 80x24.
func Size(w io.Writer) (width, height int) {
	if w, h, ok := QuerySize(w); ok {
		return w, h
	}
	return DefaultWidth, DefaultHeight
}

// DetectColorLevel inspects the environment to decide the color depth
// to render with. NO_COLOR wins over everything, FORCE_COLOR picks an
// explicit level, then COLORTERM and TERM are sniffed, and finally a
// plain terminal gets the standard 16 colors. Callers that force
// terminal output pass isTerminal true regardless of the writer.
func DetectColorLevel(isTerminal bool) ColorLevel {
	return detectColorLevel(os.LookupEnv, isTerminal)
}

func detectColorLevel(lookup func(string) (string, bool), isTerminal bool) ColorLevel {
	if _, ok := lookup("NO_COLOR"); ok {
		return LevelNone
	}

	if level, ok := lookup("FORCE_COLOR"); ok {
		switch level {
		case "0":
			return LevelNone
		case "3":
			return LevelTrueColor
		case "2":
			return LevelEightBit
		case "1", "":
			return LevelStandard
		}
		return LevelTrueColor
	}

	if colorterm, ok := lookup("COLORTERM"); ok {
		switch strings.ToLower(colorterm) {
		case "truecolor", "24bit":
			return LevelTrueColor
		}
	}

	if name, ok := lookup("TERM"); ok {
		name = strings.ToLower(name)
		switch {
		case name == "dumb":
			return LevelNone
		case strings.Contains(name, "256"):
			return LevelEightBit
		case strings.Contains(name, "color"),
			strings.Contains(name, "xterm"),
			strings.Contains(name, "vt100"):
			return LevelStandard
		}
	}

	if isTerminal {
		return LevelStandard
	}
	return LevelNone
}
