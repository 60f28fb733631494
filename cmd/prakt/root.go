package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pkt.systems/prakt"
	"pkt.systems/pslog"
)

// NewRootCommand builds the root CLI command.
func NewRootCommand(loader *prakt.Loader) *cobra.Command {
	var configFile string
	var styleName string
	var justifyName string
	var plain bool
	var remote string

	v := loader.Viper()
	v.SetDefault("render.colors", prakt.DefaultColors)
	v.SetDefault("render.width", prakt.DefaultWidth)
	v.SetDefault("render.tab_size", prakt.DefaultTabSize)
	v.SetDefault("theme.inherit", prakt.DefaultThemeInherit)
	v.SetDefault("log.file", prakt.DefaultLogPath())

	var bindErr error

	cmd := &cobra.Command{
		Use:   "prakt [markup...]",
		Short: "Prakt terminal rich text renderer",
		Args:  cobra.ArbitraryArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if bindErr != nil {
				return bindErr
			}
			if configFile != "" {
				loader.SetConfigFile(configFile)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
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

			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			if remote != "" {
				if styleName != "" {
					return fmt.Errorf("cannot use --style with --remote")
				}
				client, err := prakt.NewClient(remote)
				if err != nil {
					return err
				}
				result, err := client.Render(cmd.Context(), prakt.RenderRequest{
					Markup:  input,
					Width:   cfg.Render.Width,
					Colors:  cfg.Render.Colors,
					Justify: justifyName,
				})
				if err != nil {
					return err
				}
				output := result.ANSI
				if plain {
					output = result.Plain
				}
				_, err = io.WriteString(cmd.OutOrStdout(), output)
				return err
			}

			console, err := buildConsole(cmd, cfg, logger.With("component", "render"))
			if err != nil {
				return err
			}

			opts := prakt.PrintOptions{Plain: plain}
			if styleName != "" {
				style, err := console.GetStyle(styleName)
				if err != nil {
					return err
				}
				opts.Style = style
			}
			if justifyName != "" {
				justify, err := prakt.ParseJustify(justifyName)
				if err != nil {
					return err
				}
				opts.Justify = justify
			}
			console.PrintWith(input, opts)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	persistent := cmd.PersistentFlags()
	persistent.String("colors", prakt.DefaultColors, "color system: auto, none, standard, 256, or truecolor")
	persistent.Bool("force", false, "emit colors even when output is not a terminal")
	persistent.Int("width", prakt.DefaultWidth, "render width, 0 to detect")
	persistent.Int("tab-size", prakt.DefaultTabSize, "tab stop width in cells")
	persistent.String("theme", "", "theme file path")
	persistent.Bool("theme-inherit", prakt.DefaultThemeInherit, "extend the built-in theme with the theme file")
	persistent.String("log-file", prakt.DefaultLogPath(), "diagnostic log file path")

	flags := cmd.Flags()
	flags.StringVar(&styleName, "style", "", "style overlay applied to the whole text")
	flags.StringVar(&justifyName, "justify", "", "justify method: left, center, right, or full")
	flags.BoolVar(&plain, "plain", false, "print literally without markup parsing")
	flags.StringVar(&remote, "remote", "", "render through the server at this base URL")

	bind := func(key, name string) {
		if bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, persistent.Lookup(name)); err != nil {
			bindErr = err
		}
	}

	bind("render.colors", "colors")
	bind("render.force", "force")
	bind("render.width", "width")
	bind("render.tab_size", "tab-size")
	bind("theme.file", "theme")
	bind("theme.inherit", "theme-inherit")
	bind("log.file", "log-file")

	cmd.AddCommand(NewDemoCommand(loader))
	cmd.AddCommand(NewPaletteCommand(loader))
	cmd.AddCommand(NewThemeCommand(loader))
	cmd.AddCommand(NewServeCommand(loader))
	cmd.AddCommand(NewLiveCommand(loader))
	cmd.AddCommand(NewBootstrapCommand())

	return cmd
}

// buildConsole constructs a console from resolved configuration.
func buildConsole(cmd *cobra.Command, cfg prakt.Config, logger pslog.Logger) (*prakt.Console, error) {
	opts := []prakt.ConsoleOption{
		prakt.WithWriter(cmd.OutOrStdout()),
		prakt.WithLogger(logger),
	}
	if cfg.Render.Force {
		opts = append(opts, prakt.WithForceTerminal(true))
	}
	if cfg.Render.Colors != "" && !strings.EqualFold(cfg.Render.Colors, "auto") {
		system, err := prakt.ParseColorSystem(cfg.Render.Colors)
		if err != nil {
			return nil, err
		}
		opts = append(opts, prakt.WithColorSystem(system))
	}
	if cfg.Render.Width > 0 {
		opts = append(opts, prakt.WithWidth(cfg.Render.Width))
	}
	if cfg.Render.TabSize > 0 {
		opts = append(opts, prakt.WithTabSize(cfg.Render.TabSize))
	}
	if cfg.Theme.File != "" {
		theme, err := prakt.LoadTheme(cfg.Theme.File, cfg.Theme.Inherit)
		if err != nil {
			return nil, err
		}
		opts = append(opts, prakt.WithTheme(theme))
	}
	return prakt.NewConsole(opts...), nil
}

// readInput joins arguments or reads stdin when none are given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}
