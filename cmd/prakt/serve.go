package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pkt.systems/prakt"
	"pkt.systems/pslog"
)

// NewServeCommand builds the render server command.
func NewServeCommand(loader *prakt.Loader) *cobra.Command {
	v := loader.Viper()
	v.SetDefault("server.listen", prakt.DefaultListenAddr)
	v.SetDefault("server.base", prakt.DefaultBasePath)

	var bindErr error

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Prakt render server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bindErr != nil {
				return bindErr
			}
			cfg, err := loader.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := pslog.Ctx(cmd.Context()).With("component", "serve")
			return prakt.Serve(ctx, prakt.ServeOptions{
				Config: cfg,
				Logger: logger,
			})
		},
	}

	flags := cmd.Flags()
	flags.String("listen", prakt.DefaultListenAddr, "listen address for the HTTP server")
	flags.String("base", prakt.DefaultBasePath, "base path prefix for all HTTP routes")

	bind := func(key, name string) {
		if bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			bindErr = err
		}
	}

	bind("server.listen", "listen")
	bind("server.base", "base")

	return cmd
}
