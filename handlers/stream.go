package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/realtime"
)

const keepAliveInterval = 25 * time.Second

// StreamProducts pushes the products collection as server-sent events.
func (h *Handler) StreamProducts(c echo.Context) error {
	return streamSnapshots(c, h.productFeed, h.streamsDone, h.log)
}

// StreamBlogPosts pushes the blog collection as server-sent events.
func (h *Handler) StreamBlogPosts(c echo.Context) error {
	return streamSnapshots(c, h.blogFeed, h.streamsDone, h.log)
}

// streamSnapshots writes one "snapshot" event per published snapshot until the
// client leaves or the server closes streams for shutdown.
func streamSnapshots[T any](c echo.Context, hub *realtime.Hub[T], done <-chan struct{}, log *zap.Logger) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.Header().Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ctx := c.Request().Context()
	snapshots := hub.Subscribe(ctx)

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case snapshot, ok := <-snapshots:
			if !ok {
				return nil
			}
			data, err := json.Marshal(snapshot)
			if err != nil {
				log.Error("Failed to encode snapshot", zap.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(res, "event: snapshot\ndata: %s\n\n", data); err != nil {
				return nil
			}
			res.Flush()
		case <-keepAlive.C:
			if _, err := fmt.Fprint(res, ": keep-alive\n\n"); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
