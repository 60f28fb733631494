package prakt

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/coder/websocket"

	"pkt.systems/pslog"
)

// LiveOptions configures a live stream viewer.
type LiveOptions struct {
	Endpoint string
	Width    int
	Output   io.Writer
	Logger   pslog.Logger
}

// Live streams frames from a render server to the output writer until
// ctx is canceled or the server closes the stream.
func Live(ctx context.Context, opts LiveOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = pslog.LoggerFromEnv()
	}
	if opts.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	base, err := normalizeHTTPURL(opts.Endpoint)
	if err != nil {
		return err
	}
	liveURL := base + "/ws/live"
	if opts.Width > 0 {
		liveURL += "?width=" + strconv.Itoa(opts.Width)
	}

	conn, _, err := websocket.Dial(ctx, liveURL, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close(websocket.StatusNormalClosure, "closing")
	}()
	logger.Info("live stream connected", "url", liveURL)

	for {
		kind, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil || websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return nil
			}
			return err
		}
		if kind != websocket.MessageText {
			continue
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	}
}
