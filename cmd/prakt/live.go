package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pkt.systems/prakt"
)

// NewLiveCommand builds the live stream viewer command.
func NewLiveCommand(loader *prakt.Loader) *cobra.Command {
	var endpoint string
	var width int

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Stream live frames from a render server",
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
			logger = logger.With("component", "live")

			if !cmd.Flags().Changed("endpoint") {
				endpoint = prakt.ServerEndpoint(cfg)
			}
			if width == 0 {
				if w, _, ok := prakt.TerminalSize(cmd.OutOrStdout()); ok {
					width = w
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client, err := prakt.NewClient(endpoint)
			if err != nil {
				return err
			}
			if err := client.Health(ctx); err != nil {
				return fmt.Errorf("no render server at %s: %w", endpoint, err)
			}

			return prakt.Live(ctx, prakt.LiveOptions{
				Endpoint: endpoint,
				Width:    width,
				Output:   cmd.OutOrStdout(),
				Logger:   logger,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&endpoint, "endpoint", "e", "", "render server base URL (defaults to the configured serve address)")
	flags.IntVarP(&width, "width", "w", 0, "frame width in cells (defaults to the terminal width)")

	return cmd
}
