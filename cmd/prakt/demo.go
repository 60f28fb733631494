package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"

	"pkt.systems/prakt"
)

// demoScene is one named showcase scene.
type demoScene struct {
	name   string
	render func(c *prakt.Console, out io.Writer)
}

// NewDemoCommand builds the demo showcase command.
func NewDemoCommand(loader *prakt.Loader) *cobra.Command {
	var sceneName string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render the engine showcase scenes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loader.Load()
			if err != nil {
				return err
			}
			logger, closer, err := openLogger(cfg.Log.File)
			if err != nil {
				return err
			}
			defer func() {
				_ = closer.Close()
			}()

			console, err := buildConsole(cmd, cfg, logger.With("component", "demo"))
			if err != nil {
				return err
			}

			scenes := []demoScene{
				{"styles", demoStyles},
				{"colors", demoColors},
				{"wrap", demoWrap},
				{"columns", demoColumns},
				{"links", demoLinks},
			}
			if sceneName != "" {
				found := false
				for _, scene := range scenes {
					if scene.name == sceneName {
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("unknown scene: %q", sceneName)
				}
			}
			for _, scene := range scenes {
				if sceneName != "" && scene.name != sceneName {
					continue
				}
				console.Rule(scene.name)
				scene.render(console, cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sceneName, "scene", "", "single scene: styles, colors, wrap, columns, or links")

	return cmd
}

func demoStyles(c *prakt.Console, _ io.Writer) {
	c.Print("[bold]bold[/]  [dim]dim[/]  [italic]italic[/]  [underline]underline[/]  [blink]blink[/]  [reverse]reverse[/]  [strike]strike[/]")
	c.Print("[red]red[/]  [green]green[/]  [yellow]yellow[/]  [blue]blue[/]  [magenta]magenta[/]  [cyan]cyan[/]  [white]white[/]")
	c.Print("[bright_red]bright_red[/]  [bright_green]bright_green[/]  [bright_yellow]bright_yellow[/]  [bright_blue]bright_blue[/]")
	c.Print("[bold red on white]bold red on white[/]  [black on bright_yellow]black on bright_yellow[/]  [underline #5f87ff]underlined steel blue[/]")
}

// demoColors prints a truecolor ramp, then the same ramp as each color
// system renders it.
func demoColors(c *prakt.Console, _ io.Writer) {
	ramp := hueRamp(min(c.Width()-12, 48))
	c.Print(ramp)
	if c.ColorSystem() == prakt.ColorSystemNone {
		c.Print("[dim]color output is off; downgrade rows skipped[/]")
		return
	}
	for _, system := range []prakt.ColorSystem{prakt.ColorSystemTrueColor, prakt.ColorSystemEightBit, prakt.ColorSystemStandard} {
		row := captureAt(system, c.Width(), ramp)
		c.PrintWith(fmt.Sprintf("%-10s", system.String())+row, prakt.PrintOptions{Plain: true, NoWrap: true})
	}
}

// demoWrap prints the same paragraph under each justify method, then the
// overflow policies against an overlong word.
func demoWrap(c *prakt.Console, _ io.Writer) {
	sample := "Prakt wraps text by cell width, dividing lines at word starts so nothing is lost."
	width := min(c.Width(), 44)
	for _, justify := range []prakt.Justify{prakt.JustifyLeft, prakt.JustifyCenter, prakt.JustifyRight, prakt.JustifyFull} {
		c.Print(fmt.Sprintf("[bold]%s[/]", justify))
		c.PrintWith(sample, prakt.PrintOptions{Justify: justify, Width: width})
	}
	c.Print("[bold]overflow[/]")
	word := "acetylseryltyrosylserylisoleucylthreonyl"
	c.PrintWith(word, prakt.PrintOptions{Overflow: prakt.OverflowCrop, Width: 24})
	c.PrintWith(word, prakt.PrintOptions{Overflow: prakt.OverflowEllipsis, Width: 24})
}

// demoColumns lays rows out in ratio-sized columns: the first column is
// fixed at its measured width, the rest share the remainder 1:3.
func demoColumns(c *prakt.Console, _ io.Writer) {
	rows := [][]string{
		{"[bold]component[/]", "[bold]state[/]", "[bold]notes[/]"},
		{"markup", "[green]ok[/]", "tags balance and auto-close at end of input"},
		{"wrap", "[green]ok[/]", "lines divide at word starts, keeping whitespace"},
		{"ratio", "[yellow]busy[/]", "fractional cells land on the last flexible column"},
	}

	cells := make([][]*prakt.Text, len(rows))
	var first prakt.Measurement
	for i, row := range rows {
		cells[i] = make([]*prakt.Text, len(row))
		for j, cell := range row {
			text, err := prakt.RenderMarkup(cell)
			if err != nil {
				text = prakt.NewText(cell)
			}
			cells[i][j] = text
		}
		first = first.Union(cells[i][0].Measure())
	}

	const gap = 2
	total := max(c.Width()-2*gap, 12)
	widths := prakt.RatioResolve(total, []prakt.RatioItem{
		{Fixed: true, Size: first.Maximum},
		{Ratio: 1, Minimum: 4},
		{Ratio: 3, Minimum: 8},
	})

	sep := prakt.NewText(strings.Repeat(" ", gap))
	for _, row := range cells {
		for j, cell := range row {
			cell.Truncate(widths[j], prakt.OverflowEllipsis, true)
		}
		c.PrintText(sep.Join(row))
	}
}

// demoLinks prints a hyperlink and its QR code.
func demoLinks(c *prakt.Console, out io.Writer) {
	const url = "https://pkt.systems/prakt"
	c.Print(fmt.Sprintf("[link=%s]pkt.systems/prakt[/link]  [dim]clickable where OSC 8 is supported[/]", url))
	if c.IsTerminal() && c.ColorSystem() != prakt.ColorSystemNone {
		qrterminal.GenerateHalfBlock(url, qrterminal.L, out)
	} else {
		c.Print("[dim]qr code skipped off-terminal[/]")
	}
}

// captureAt renders markup once at an explicit color system.
func captureAt(system prakt.ColorSystem, width int, markup string) string {
	sub := prakt.NewConsole(
		prakt.WithWriter(io.Discard),
		prakt.WithForceTerminal(true),
		prakt.WithColorSystem(system),
		prakt.WithWidth(width),
	)
	sub.BeginCapture()
	sub.Print(markup)
	return strings.TrimSuffix(sub.EndCapture(), "\n")
}

// hueRamp returns a markup bar of hex-colored blocks.
func hueRamp(width int) string {
	if width < 6 {
		width = 6
	}
	var b strings.Builder
	for i := 0; i < width; i++ {
		r, g, bl := rainbowRGB(float64(i) / float64(width))
		fmt.Fprintf(&b, "[#%02x%02x%02x]█[/]", r, g, bl)
	}
	return b.String()
}

// rainbowRGB maps a position in 0..1 to a saturated rainbow color.
func rainbowRGB(pos float64) (uint8, uint8, uint8) {
	h := pos * 6
	x := uint8(255 * (1 - math.Abs(math.Mod(h, 2)-1)))
	switch {
	case h < 1:
		return 255, x, 0
	case h < 2:
		return x, 255, 0
	case h < 3:
		return 0, 255, x
	case h < 4:
		return 0, x, 255
	case h < 5:
		return x, 0, 255
	default:
		return 255, 0, x
	}
}
