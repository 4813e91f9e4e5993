package handler

import (
	"context"

	"orders-hertz/biz/event"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/websocket"
)

var upgrader = websocket.HertzUpgrader{
	CheckOrigin: func(ctx *app.RequestContext) bool {
		return true
	},
}

type StreamHandler struct {
	hub *event.Hub
}

func NewStreamHandler(hub *event.Hub) *StreamHandler {
	return &StreamHandler{hub: hub}
}

// Subscribe GET /orders/stream upgrades to a WebSocket that receives one
// text frame per created order. Client frames are read and discarded.
func (h *StreamHandler) Subscribe(ctx context.Context, c *app.RequestContext) {
	err := upgrader.Upgrade(c, func(conn *websocket.Conn) {
		defer conn.Close()
		if !h.hub.Add(conn) {
			return
		}
		defer h.hub.Remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
	if err != nil {
		hlog.CtxWarnf(ctx, "[StreamHandler] upgrade failed: %v", err)
	}
}
