package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"

	"pkt.systems/pslog"
)

const (
	defaultFrameWidth    = 80
	maxFrameWidth        = 300
	defaultFrameInterval = time.Second
	wsSendTimeout        = 10 * time.Second
)

// RenderRequest is the payload accepted by the render endpoint.
type RenderRequest struct {
	Markup  string `json:"markup"`
	Width   int    `json:"width"`
	Colors  string `json:"colors"`
	Justify string `json:"justify"`
}

// RenderResult is the payload returned by the render endpoint.
type RenderResult struct {
	ANSI  string `json:"ansi"`
	Plain string `json:"plain"`
	Width int    `json:"width"`
}

// RenderFunc renders a markup request. Invalid markup and unknown
// option names are reported as errors.
type RenderFunc func(ctx context.Context, req RenderRequest) (RenderResult, error)

// FrameFunc produces one live frame of ANSI text for the given width.
type FrameFunc func(width int) string

// API exposes the render service endpoints.
type API struct {
	Render        RenderFunc
	Frame         FrameFunc
	Logger        pslog.Logger
	FrameInterval time.Duration
}

// NewAPI constructs a render service API.
func NewAPI(render RenderFunc, frame FrameFunc, logger pslog.Logger) *API {
	if logger == nil {
		logger = pslog.LoggerFromEnv()
	}
	return &API{Render: render, Frame: frame, Logger: logger, FrameInterval: defaultFrameInterval}
}

// Handler returns the HTTP handler for render service endpoints.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.handleHealth)
	mux.HandleFunc("/render", a.handleRender)
	mux.HandleFunc("/ws/live", a.handleWSLive)
	return mux
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if a.Render == nil {
		writeError(w, http.StatusInternalServerError, "renderer unavailable")
		return
	}
	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	result, err := a.Render(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleWSLive(w http.ResponseWriter, r *http.Request) {
	if a.Frame == nil {
		writeError(w, http.StatusInternalServerError, "frame source unavailable")
		return
	}
	width := frameWidth(r)
	logger := a.Logger.With("endpoint", "live", "ip", RealIP(r), "width", width)

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	ws := &liveConn{conn: conn}
	defer func() {
		_ = ws.Close("closing")
	}()

	// CloseRead discards client messages and cancels the context when
	// the peer goes away.
	ctx := conn.CloseRead(r.Context())
	logger.Info("live stream connected")

	interval := a.FrameInterval
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := ws.SendText(ctx, a.Frame(width)); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			logger.Debug("live stream closed", "err", ctx.Err())
			return
		case <-ticker.C:
			if err := ws.SendText(ctx, a.Frame(width)); err != nil {
				logger.Debug("live frame send failed", "err", err)
				return
			}
		}
	}
}

// liveConn serializes writes to a websocket connection.
type liveConn struct {
	conn   *websocket.Conn
	sendMu sync.Mutex
}

func (c *liveConn) SendText(ctx context.Context, text string) error {
	ctx, cancel := context.WithTimeout(ctx, wsSendTimeout)
	defer cancel()
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return c.conn.Write(ctx, websocket.MessageText, []byte(text))
}

func (c *liveConn) Close(reason string) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return c.conn.Close(websocket.StatusNormalClosure, reason)
}

func frameWidth(r *http.Request) int {
	value := r.URL.Query().Get("width")
	if value == "" {
		return defaultFrameWidth
	}
	width, err := strconv.Atoi(value)
	if err != nil || width <= 0 {
		return defaultFrameWidth
	}
	return min(width, maxFrameWidth)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
