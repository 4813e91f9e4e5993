package service

import (
	"context"

	"orders-hertz/biz/event"
	"orders-hertz/biz/model"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// OrderStore is the persistence the order use cases need.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	ListOrders(ctx context.Context) ([]model.Order, error)
}

type OrderService struct {
	store     OrderStore
	publisher event.Publisher
}

func NewOrderService(store OrderStore, publisher event.Publisher) *OrderService {
	if publisher == nil {
		publisher = event.Nop{}
	}
	return &OrderService{store: store, publisher: publisher}
}

// CreateOrder validates, persists, then announces the order. Announcement
// failures are logged; the order is already committed at that point.
func (s *OrderService) CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	order := req.ToOrder()
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	if err := s.publisher.PublishOrderCreated(ctx, event.NewOrderCreated(*order)); err != nil {
		hlog.CtxWarnf(ctx, "[OrderService] publish order_created id=%d failed: %v", order.ID, err)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	return s.store.ListOrders(ctx)
}
