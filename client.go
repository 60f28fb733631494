package prakt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"pkt.systems/prakt/internal/server"
)

// RenderRequest is the payload accepted by a render server.
type RenderRequest = server.RenderRequest

// RenderResult is the response produced by a render server.
type RenderResult = server.RenderResult

// Client calls a running render server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the server rooted at endpoint, including
// its base path. The scheme may be http, https, ws or wss.
func NewClient(endpoint string) (*Client, error) {
	base, err := normalizeHTTPURL(endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{baseURL: base, http: &http.Client{}}, nil
}

// Health reports whether the server answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: %s", resp.Status)
	}
	return nil
}

// Render submits markup to the server and returns the rendered result.
func (c *Client) Render(ctx context.Context, request RenderRequest) (RenderResult, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return RenderResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", bytes.NewReader(payload))
	if err != nil {
		return RenderResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return RenderResult{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var fail struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&fail); err == nil && fail.Error != "" {
			return RenderResult{}, fmt.Errorf("render failed: %s", fail.Error)
		}
		return RenderResult{}, fmt.Errorf("render failed: %s", resp.Status)
	}
	var result RenderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return RenderResult{}, err
	}
	return result, nil
}

// ServerEndpoint returns the HTTP base URL of the serve address in cfg,
// suitable for NewClient and Live.
func ServerEndpoint(cfg Config) string {
	listen := cfg.Server.Listen
	if listen == "" {
		listen = DefaultListenAddr
	}
	if strings.HasPrefix(listen, ":") {
		listen = "127.0.0.1" + listen
	}
	base, err := server.NormalizeBasePath(cfg.Server.BasePath)
	if err != nil {
		base = ""
	}
	return "http://" + listen + base
}

func normalizeHTTPURL(endpoint string) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" {
		return "", fmt.Errorf("endpoint must include scheme")
	}
	switch strings.ToLower(parsed.Scheme) {
	case "https", "http":
		return strings.TrimRight(endpoint, "/"), nil
	case "wss":
		parsed.Scheme = "https"
	case "ws":
		parsed.Scheme = "http"
	default:
		return "", fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}
