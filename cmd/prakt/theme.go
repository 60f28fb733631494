package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"pkt.systems/prakt"
	"pkt.systems/prettyx"
)

// NewThemeCommand builds the theme inspection command.
func NewThemeCommand(loader *prakt.Loader) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Print the active theme",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loader.Load()
			if err != nil {
				return err
			}
			theme := prakt.DefaultTheme()
			if cfg.Theme.File != "" {
				theme, err = prakt.LoadTheme(cfg.Theme.File, cfg.Theme.Inherit)
				if err != nil {
					return err
				}
			}
			if asJSON {
				styles := theme.Styles()
				resp := make(map[string]string, len(styles))
				for name, style := range styles {
					resp[name] = style.String()
				}
				data, err := json.Marshal(resp)
				if err != nil {
					return err
				}
				return prettyx.PrettyTo(cmd.OutOrStdout(), data, prettyx.DefaultOptions)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), theme.Config())
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the theme as JSON")

	return cmd
}
