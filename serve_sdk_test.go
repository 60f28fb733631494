package prakt

import (
	"context"
	"strings"
	"testing"

	"pkt.systems/prakt/internal/server"
)

func TestRenderRequestProducesANSIAndPlain(t *testing.T) {
	render := renderRequest(DefaultConfig())

	result, err := render(context.Background(), server.RenderRequest{
		Markup: "[bold red]alert[/]",
		Width:  20,
		Colors: "standard",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.Width != 20 {
		t.Fatalf("Width = %d, want 20", result.Width)
	}
	if result.ANSI != "\x1b[1;31malert\x1b[0m\n" {
		t.Fatalf("ANSI = %q", result.ANSI)
	}
	if result.Plain != "alert\n" {
		t.Fatalf("Plain = %q", result.Plain)
	}
}

func TestRenderRequestJustifyAndWidthFallback(t *testing.T) {
	render := renderRequest(DefaultConfig())

	result, err := render(context.Background(), server.RenderRequest{
		Markup:  "hi",
		Width:   6,
		Colors:  "none",
		Justify: "right",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.ANSI != "    hi\n" {
		t.Fatalf("ANSI = %q, want right-justified", result.ANSI)
	}

	fallback, err := render(context.Background(), server.RenderRequest{Markup: "x", Colors: "none"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if fallback.Width != 80 {
		t.Fatalf("Width = %d, want 80", fallback.Width)
	}
}

func TestRenderRequestErrors(t *testing.T) {
	render := renderRequest(DefaultConfig())

	cases := []struct {
		name string
		req  server.RenderRequest
	}{
		{"markup", server.RenderRequest{Markup: "[/bold]x"}},
		{"colors", server.RenderRequest{Markup: "x", Colors: "plenty"}},
		{"justify", server.RenderRequest{Markup: "x", Justify: "extreme"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := render(context.Background(), tc.req); err == nil {
				t.Fatalf("expected error for %+v", tc.req)
			}
		})
	}
}

func TestRequestColorSystem(t *testing.T) {
	cases := []struct {
		name       string
		requested  string
		configured string
		want       ColorSystem
	}{
		{"request wins", "256", "none", ColorSystemEightBit},
		{"config fallback", "", "standard", ColorSystemStandard},
		{"auto means truecolor", "auto", "", ColorSystemTrueColor},
		{"empty means truecolor", "", "", ColorSystemTrueColor},
		{"configured auto", "", "auto", ColorSystemTrueColor},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := requestColorSystem(tc.requested, tc.configured)
			if err != nil {
				t.Fatalf("requestColorSystem: %v", err)
			}
			if got != tc.want {
				t.Fatalf("requestColorSystem(%q, %q) = %v, want %v", tc.requested, tc.configured, got, tc.want)
			}
		})
	}
}

func TestLiveFrameRendersANSI(t *testing.T) {
	frame := liveFrame(24)
	if frame == "" {
		t.Fatalf("expected frame output")
	}
	if !strings.Contains(frame, "\x1b[") {
		t.Fatalf("frame = %q, want ANSI content", frame)
	}
	if !strings.Contains(frame, "prakt") {
		t.Fatalf("frame = %q, want status line", frame)
	}
	if lines := strings.Count(frame, "\n"); lines != 3 {
		t.Fatalf("frame has %d lines, want 3", lines)
	}
}
