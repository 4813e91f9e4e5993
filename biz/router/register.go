package router

import (
	"orders-hertz/biz/handler"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// Register mounts the routes. stream may be nil when the live feed is disabled.
func Register(r *server.Hertz, orders *handler.OrderHandler, stream *handler.StreamHandler) {
	r.GET("/", handler.Root)

	g := r.Group("/orders")
	g.POST("/", orders.CreateOrder)
	g.GET("/", orders.ListOrders)
	if stream != nil {
		g.GET("/stream", stream.Subscribe)
	}
}
