package prakt

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"pkt.systems/prakt/internal/server"
	"pkt.systems/pslog"
)

// ServeOptions configures the render server run.
type ServeOptions struct {
	Config Config
	Logger pslog.Logger
}

// Serve runs the Prakt render server until ctx is canceled.
func Serve(ctx context.Context, opts ServeOptions) error {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = pslog.LoggerFromEnv()
	}

	base, err := server.NormalizeBasePath(cfg.Server.BasePath)
	if err != nil {
		return err
	}

	api := server.NewAPI(renderRequest(cfg), liveFrame, logger.With("component", "render-api"))

	srvCfg := server.Config{
		ListenAddr: cfg.Server.Listen,
		BasePath:   base,
		Logger:     logger.With("component", "http"),
		// Avoid ReadTimeout/WriteTimeout to allow long-lived websocket connections.
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	handler := server.WrapBasePath(base, api.Handler())
	handler = server.AccessLog(logger.With("component", "access"), handler)
	srv := server.NewServer(srvCfg, handler)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting server", "listen", srvCfg.ListenAddr, "base", base)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// renderRequest adapts the engine to the render endpoint.
func renderRequest(cfg Config) server.RenderFunc {
	return func(_ context.Context, req server.RenderRequest) (server.RenderResult, error) {
		width := req.Width
		if width <= 0 {
			width = cfg.Render.Width
		}
		if width <= 0 {
			width = 80
		}
		system, err := requestColorSystem(req.Colors, cfg.Render.Colors)
		if err != nil {
			return server.RenderResult{}, err
		}
		justify, err := ParseJustify(req.Justify)
		if err != nil {
			return server.RenderResult{}, err
		}
		text, err := RenderMarkup(req.Markup)
		if err != nil {
			return server.RenderResult{}, err
		}
		text.Justify = justify
		return server.RenderResult{
			ANSI:  captureText(text, width, system),
			Plain: captureText(text, width, ColorSystemNone),
			Width: width,
		}, nil
	}
}

// requestColorSystem picks the color system for a render request. The
// request wins over the configured default; "auto" and empty mean
// truecolor, the service having no terminal to probe.
func requestColorSystem(requested, configured string) (ColorSystem, error) {
	name := requested
	if name == "" {
		name = configured
	}
	if name == "" || strings.EqualFold(name, "auto") {
		return ColorSystemTrueColor, nil
	}
	return ParseColorSystem(name)
}

func captureText(text *Text, width int, system ColorSystem) string {
	console := NewConsole(
		WithWriter(io.Discard),
		WithForceTerminal(true),
		WithColorSystem(system),
		WithWidth(width),
	)
	console.BeginCapture()
	console.PrintTextWith(text, PrintOptions{})
	return console.EndCapture()
}

// liveFrame renders one frame of the live feed: a clock rule, a status
// line, and a bar that advances with the seconds.
func liveFrame(width int) string {
	now := time.Now()
	console := NewConsole(
		WithWriter(io.Discard),
		WithForceTerminal(true),
		WithColorSystem(ColorSystemTrueColor),
		WithWidth(width),
	)
	console.BeginCapture()
	console.Rule(now.Format("15:04:05"))
	console.Print("[bold cyan]prakt[/] [dim]live render feed[/]")
	filled := now.Second()*width/59 + 1
	console.Print("[green]" + strings.Repeat("━", min(filled, width)) + "[/]")
	return console.EndCapture()
}
