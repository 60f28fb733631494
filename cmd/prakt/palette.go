package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pkt.systems/prakt"
)

// NewPaletteCommand builds the color palette command.
func NewPaletteCommand(loader *prakt.Loader) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Print the terminal color palette",
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

			console, err := buildConsole(cmd, cfg, logger.With("component", "palette"))
			if err != nil {
				return err
			}

			console.Rule("standard colors")
			printSwatches(console, 0, 16, 8)
			if full {
				console.Rule("256 colors")
				printSwatches(console, 16, 256, 12)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "include the 256-color palette")

	return cmd
}

// printSwatches prints numbered background swatches, perRow to a line.
func printSwatches(console *prakt.Console, from, to, perRow int) {
	var b strings.Builder
	count := 0
	for n := from; n < to; n++ {
		fmt.Fprintf(&b, "[%s on color(%d)] %3d [/]", swatchLabel(n), n, n)
		count++
		if count == perRow {
			console.Print(b.String())
			b.Reset()
			count = 0
		}
	}
	if count > 0 {
		console.Print(b.String())
	}
}

// swatchLabel picks a readable label color for a swatch background.
func swatchLabel(n int) string {
	t := prakt.ColorFromANSI(uint8(n)).TrueColor()
	luma := (2126*int(t.Red) + 7152*int(t.Green) + 722*int(t.Blue)) / 10000
	if luma > 127 {
		return "black"
	}
	return "bright_white"
}
