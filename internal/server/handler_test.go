package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
)

func TestRenderEndpoint(t *testing.T) {
	api := NewAPI(echoRender, nil, nil)
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	body := bytes.NewBufferString(`{"markup":"hello","width":24}`)
	resp, err := http.Post(srv.URL+"/render", "application/json", body)
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var result RenderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Plain != "hello" || result.Width != 24 {
		t.Fatalf("result = %+v", result)
	}
	if !strings.Contains(result.ANSI, "\x1b[1m") {
		t.Fatalf("ANSI = %q, want bold prefix", result.ANSI)
	}
}

func TestRenderEndpointRejectsGet(t *testing.T) {
	api := NewAPI(echoRender, nil, nil)
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/render")
	if err != nil {
		t.Fatalf("GET /render: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
	}
}

func TestRenderEndpointInvalidJSON(t *testing.T) {
	api := NewAPI(echoRender, nil, nil)
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Post(srv.URL+"/render", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestRenderEndpointBadMarkup(t *testing.T) {
	api := NewAPI(echoRender, nil, nil)
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	body := strings.NewReader(`{"markup":"[bad"}`)
	resp, err := http.Post(srv.URL+"/render", "application/json", body)
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload["error"] == "" {
		t.Fatalf("expected error message, got %v", payload)
	}
}

func TestHealthEndpoint(t *testing.T) {
	api := NewAPI(echoRender, nil, nil)
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["status"] != "ok" {
		t.Fatalf("status payload = %v, want ok", payload)
	}
}

func TestLiveStreamSendsFrames(t *testing.T) {
	api := NewAPI(nil, func(width int) string {
		return fmt.Sprintf("frame w=%d", width)
	}, nil)
	api.FrameInterval = 10 * time.Millisecond
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, srv.URL+"/ws/live?width=32", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer func() {
		_ = conn.Close(websocket.StatusNormalClosure, "done")
	}()

	for i := 0; i < 2; i++ {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if typ != websocket.MessageText {
			t.Fatalf("message type = %v, want text", typ)
		}
		if string(data) != "frame w=32" {
			t.Fatalf("frame = %q, want %q", data, "frame w=32")
		}
	}
}

func TestFrameWidthQuery(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"default", "", defaultFrameWidth},
		{"explicit", "width=32", 32},
		{"invalid", "width=zz", defaultFrameWidth},
		{"negative", "width=-3", defaultFrameWidth},
		{"clamped", "width=9999", maxFrameWidth},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws/live?"+tc.query, nil)
			if got := frameWidth(req); got != tc.want {
				t.Fatalf("frameWidth(%q) = %d, want %d", tc.query, got, tc.want)
			}
		})
	}
}

func echoRender(_ context.Context, req RenderRequest) (RenderResult, error) {
	if strings.HasPrefix(req.Markup, "[bad") {
		return RenderResult{}, fmt.Errorf("closing ']' not found in %q", req.Markup)
	}
	return RenderResult{
		ANSI:  "\x1b[1m" + req.Markup + "\x1b[0m",
		Plain: req.Markup,
		Width: req.Width,
	}, nil
}
