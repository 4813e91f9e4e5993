package handler

import (
	"context"

	"orders-hertz/biz/model"
	"orders-hertz/biz/service"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// CreateOrder POST /orders/
func (h *OrderHandler) CreateOrder(ctx context.Context, c *app.RequestContext) {
	req, err := model.ParseCreateOrderRequest(c.Request.Body())
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	order, err := h.svc.CreateOrder(ctx, req)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, order)
}

// ListOrders GET /orders/
func (h *OrderHandler) ListOrders(ctx context.Context, c *app.RequestContext) {
	orders, err := h.svc.ListOrders(ctx)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, orders)
}
