package prakt

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ColorTriplet holds RGB components in the 0-255 range.
type ColorTriplet struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// Hex returns the CSS-style hex form "#rrggbb".
func (t ColorTriplet) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", t.Red, t.Green, t.Blue)
}

// RGB returns the compact "rgb(r,g,b)" form.
func (t ColorTriplet) RGB() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", t.Red, t.Green, t.Blue)
}

// Normalized returns the components as floats in 0.0-1.0.
func (t ColorTriplet) Normalized() (float64, float64, float64) {
	return float64(t.Red) / 255.0, float64(t.Green) / 255.0, float64(t.Blue) / 255.0
}

// ToHLS converts to hue, lightness, saturation.
func (t ColorTriplet) ToHLS() (float64, float64, float64) {
	r, g, b := t.Normalized()
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	lightness := (max + min) / 2

	if max == min {
		return 0, lightness, 0
	}

	delta := max - min
	var saturation float64
	if lightness <= 0.5 {
		saturation = delta / (max + min)
	} else {
		saturation = delta / (2 - max - min)
	}

	var hue float64
	switch max {
	case r:
		hue = (g - b) / delta
		if g < b {
			hue += 6
		}
	case g:
		hue = (b-r)/delta + 2
	default:
		hue = (r-g)/delta + 4
	}

	return hue / 6, lightness, saturation
}

func (t ColorTriplet) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", t.Red, t.Green, t.Blue)
}

// ColorSystem is the color capability of a terminal.
type ColorSystem int

const (
	// ColorSystemNone disables color output entirely.
	ColorSystemNone ColorSystem = iota
	// ColorSystemStandard is the 4-bit ANSI palette (16 colors).
	ColorSystemStandard
	// ColorSystemEightBit is the 8-bit palette (256 colors).
	ColorSystemEightBit
	// ColorSystemTrueColor is 24-bit RGB.
	ColorSystemTrueColor
)

func (s ColorSystem) String() string {
	switch s {
	case ColorSystemStandard:
		return "standard"
	case ColorSystemEightBit:
		return "256"
	case ColorSystemTrueColor:
		return "truecolor"
	default:
		return "none"
	}
}

// ParseColorSystem converts a configuration string to a ColorSystem value.
func ParseColorSystem(s string) (ColorSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return ColorSystemNone, nil
	case "standard", "16":
		return ColorSystemStandard, nil
	case "256", "eightbit":
		return ColorSystemEightBit, nil
	case "truecolor", "24bit":
		return ColorSystemTrueColor, nil
	}
	return ColorSystemNone, fmt.Errorf("unknown color system: %q", s)
}

// ColorType discriminates how a Color stores its value.
type ColorType uint8

const (
	// ColorTypeDefault is the terminal's default color.
	ColorTypeDefault ColorType = iota
	// ColorTypeStandard is a 4-bit ANSI color (0-15).
	ColorTypeStandard
	// ColorTypeEightBit is an 8-bit color (0-255).
	ColorTypeEightBit
	// ColorTypeTrueColor is a 24-bit RGB color.
	ColorTypeTrueColor
)

// Color is a terminal color parsed from one of several text forms.
// Number is meaningful for Standard and EightBit colors, Triplet for
// TrueColor.
type Color struct {
	Name    string
	Type    ColorType
	Number  uint8
	Triplet ColorTriplet
}

// DefaultColor returns the terminal's default color.
func DefaultColor() Color {
	return Color{Name: "default", Type: ColorTypeDefault}
}

// ColorFromANSI builds a color from an 8-bit palette number. Numbers
// below 16 become Standard colors.
func ColorFromANSI(number uint8) Color {
	t := ColorTypeEightBit
	if number < 16 {
		t = ColorTypeStandard
	}
	return Color{
		Name:   fmt.Sprintf("color(%d)", number),
		Type:   t,
		Number: number,
	}
}

// ColorFromTriplet builds a TrueColor from an RGB triplet.
func ColorFromTriplet(t ColorTriplet) Color {
	return Color{Name: t.Hex(), Type: ColorTypeTrueColor, Triplet: t}
}

// ColorFromRGB builds a TrueColor from components.
func ColorFromRGB(red, green, blue uint8) Color {
	return ColorFromTriplet(ColorTriplet{Red: red, Green: green, Blue: blue})
}

// System reports the least capable color system able to show this color.
func (c Color) System() ColorSystem {
	switch c.Type {
	case ColorTypeEightBit:
		return ColorSystemEightBit
	case ColorTypeTrueColor:
		return ColorSystemTrueColor
	default:
		return ColorSystemStandard
	}
}

// IsSystemDefined reports whether the color comes from the 4-bit palette.
func (c Color) IsSystemDefined() bool {
	return c.Type == ColorTypeStandard
}

// IsDefault reports whether this is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Type == ColorTypeDefault
}

// TrueColor resolves the color to an RGB triplet using the standard
// palettes. The default color resolves to black.
func (c Color) TrueColor() ColorTriplet {
	switch c.Type {
	case ColorTypeTrueColor:
		return c.Triplet
	case ColorTypeStandard:
		if int(c.Number) < len(StandardPalette) {
			return StandardPalette[c.Number]
		}
		return ColorTriplet{}
	case ColorTypeEightBit:
		return EightBitPalette[c.Number]
	default:
		return ColorTriplet{}
	}
}

// ANSICodes returns the SGR parameters selecting this color. The
// foreground flag switches between the 3x/38 and 4x/48 families.
func (c Color) ANSICodes(foreground bool) []string {
	switch c.Type {
	case ColorTypeStandard:
		n := int(c.Number)
		var code int
		if n < 8 {
			if foreground {
				code = 30 + n
			} else {
				code = 40 + n
			}
		} else {
			if foreground {
				code = 82 + n
			} else {
				code = 92 + n
			}
		}
		return []string{strconv.Itoa(code)}
	case ColorTypeEightBit:
		first := "48"
		if foreground {
			first = "38"
		}
		return []string{first, "5", strconv.Itoa(int(c.Number))}
	case ColorTypeTrueColor:
		first := "48"
		if foreground {
			first = "38"
		}
		return []string{
			first, "2",
			strconv.Itoa(int(c.Triplet.Red)),
			strconv.Itoa(int(c.Triplet.Green)),
			strconv.Itoa(int(c.Triplet.Blue)),
		}
	default:
		if foreground {
			return []string{"39"}
		}
		return []string{"49"}
	}
}

// Downgrade converts the color for a less capable color system. Colors
// already expressible in the target system are returned unchanged.
func (c Color) Downgrade(system ColorSystem) Color {
	if c.IsDefault() {
		return c
	}

	switch c.Type {
	case ColorTypeStandard:
		return c
	case ColorTypeEightBit:
		switch system {
		case ColorSystemEightBit, ColorSystemTrueColor:
			return c
		default:
			return ColorFromANSI(rgbToStandard(c.TrueColor()))
		}
	case ColorTypeTrueColor:
		switch system {
		case ColorSystemTrueColor:
			return c
		case ColorSystemEightBit:
			return ColorFromANSI(rgbToEightBit(c.Triplet))
		default:
			return ColorFromANSI(rgbToStandard(c.Triplet))
		}
	default:
		return c
	}
}

func (c Color) String() string {
	return c.Name
}

// Color parse errors, matched with errors.Is.
var (
	ErrEmptyColor         = errors.New("empty color string")
	ErrInvalidHex         = errors.New("invalid hex color")
	ErrInvalidColorNumber = errors.New("invalid color number")
	ErrInvalidRGB         = errors.New("invalid RGB color")
	ErrUnknownColor       = errors.New("unknown color")
)

var (
	colorNumberPattern = regexp.MustCompile(`^color\((\d{1,3})\)$`)
	rgbPattern         = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
)

// ParseColor parses a color from its text form. Supported forms are
// "default", "#rrggbb" and "#rgb" hex, "color(N)", "rgb(r,g,b)", and
// named colors such as "red" or "bright_blue". Results are memoized.
func ParseColor(color string) (Color, error) {
	normalized := strings.ToLower(strings.TrimSpace(color))

	cache := colorCache
	if cache != nil {
		if cached, ok := cache.Get(normalized); ok {
			return cached, nil
		}
	}

	result, err := parseColorUncached(normalized)
	if err != nil {
		return Color{}, err
	}
	// Parsed colors keep the name they were written as, so styles built
	// from "red" or "bright_green" print back the same way.
	result.Name = normalized

	if cache != nil {
		cache.Add(normalized, result)
	}
	return result, nil
}

func parseColorUncached(color string) (Color, error) {
	if color == "" {
		return Color{}, ErrEmptyColor
	}
	if color == "default" {
		return DefaultColor(), nil
	}

	if hex, ok := strings.CutPrefix(color, "#"); ok {
		if len(hex) == 3 {
			var expanded strings.Builder
			for _, r := range hex {
				expanded.WriteRune(r)
				expanded.WriteRune(r)
			}
			hex = expanded.String()
		}
		if len(hex) == 6 {
			r, errR := strconv.ParseUint(hex[0:2], 16, 8)
			g, errG := strconv.ParseUint(hex[2:4], 16, 8)
			b, errB := strconv.ParseUint(hex[4:6], 16, 8)
			if errR == nil && errG == nil && errB == nil {
				return ColorFromRGB(uint8(r), uint8(g), uint8(b)), nil
			}
		}
		return Color{}, fmt.Errorf("%w: %s", ErrInvalidHex, color)
	}

	if m := colorNumberPattern.FindStringSubmatch(color); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n <= 255 {
			return ColorFromANSI(uint8(n)), nil
		}
		return Color{}, fmt.Errorf("%w: %s", ErrInvalidColorNumber, color)
	}

	if m := rgbPattern.FindStringSubmatch(color); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r <= 255 && g <= 255 && b <= 255 {
			return ColorFromRGB(uint8(r), uint8(g), uint8(b)), nil
		}
		return Color{}, fmt.Errorf("%w: %s", ErrInvalidRGB, color)
	}

	if number, ok := namedColors[color]; ok {
		return ColorFromANSI(number), nil
	}

	return Color{}, fmt.Errorf("%w: %s", ErrUnknownColor, color)
}

// StandardPalette is the 16-color ANSI palette.
var StandardPalette = [16]ColorTriplet{
	{0, 0, 0},       // black
	{170, 0, 0},     // red
	{0, 170, 0},     // green
	{170, 85, 0},    // yellow
	{0, 0, 170},     // blue
	{170, 0, 170},   // magenta
	{0, 170, 170},   // cyan
	{170, 170, 170}, // white
	{85, 85, 85},    // bright black
	{255, 85, 85},   // bright red
	{85, 255, 85},   // bright green
	{255, 255, 85},  // bright yellow
	{85, 85, 255},   // bright blue
	{255, 85, 255},  // bright magenta
	{85, 255, 255},  // bright cyan
	{255, 255, 255}, // bright white
}

// EightBitPalette is the 256-color palette: the standard 16, a 6x6x6
// color cube, and a 24-step grayscale ramp.
var EightBitPalette = generateEightBitPalette()

func generateEightBitPalette() [256]ColorTriplet {
	var palette [256]ColorTriplet

	copy(palette[:16], StandardPalette[:])

	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				palette[16+r*36+g*6+b] = ColorTriplet{levels[r], levels[g], levels[b]}
			}
		}
	}

	for i := 0; i < 24; i++ {
		gray := uint8(8 + i*10)
		palette[232+i] = ColorTriplet{gray, gray, gray}
	}

	return palette
}

func rgbToEightBit(t ColorTriplet) uint8 {
	_, lightness, saturation := t.ToHLS()

	if saturation < 0.15 {
		if lightness < 0.04 {
			return 16
		}
		if lightness > 0.96 {
			return 231
		}
		gray := int(math.Round((lightness - 0.04) / 0.92 * 24))
		if gray > 23 {
			gray = 23
		}
		return uint8(232 + gray)
	}

	quantize := func(v uint8) int {
		var idx int
		if v < 95 {
			idx = int(math.Round(float64(v) / 95))
		} else {
			idx = 1 + int(math.Round((float64(v)-95)/40))
		}
		if idx > 5 {
			idx = 5
		}
		return idx
	}

	return uint8(16 + quantize(t.Red)*36 + quantize(t.Green)*6 + quantize(t.Blue))
}

func rgbToStandard(t ColorTriplet) uint8 {
	best := 0
	bestDistance := uint32(math.MaxUint32)
	for i, candidate := range StandardPalette {
		if d := colorDistance(t, candidate); d < bestDistance {
			bestDistance = d
			best = i
		}
	}
	return uint8(best)
}

// colorDistance is a redmean-weighted squared distance.
func colorDistance(a, b ColorTriplet) uint32 {
	r1, g1, b1 := uint32(a.Red), uint32(a.Green), uint32(a.Blue)
	r2, g2, b2 := uint32(b.Red), uint32(b.Green), uint32(b.Blue)

	redMean := (r1 + r2) / 2
	redDiff := absDiff(r1, r2)
	greenDiff := absDiff(g1, g2)
	blueDiff := absDiff(b1, b2)

	redWeight := ((512 + redMean) * redDiff * redDiff) >> 8
	greenWeight := 4 * greenDiff * greenDiff
	blueWeight := ((767 - redMean) * blueDiff * blueDiff) >> 8

	return redWeight + greenWeight + blueWeight
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
