package event

import (
	"context"
	"errors"
	"time"

	"orders-hertz/biz/model"
)

// Publisher delivers order-created events to one sink.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, ev *model.OrderCreatedEvent) error
	Close() error
}

// NewOrderCreated stamps an event for a committed order.
func NewOrderCreated(order model.Order) *model.OrderCreatedEvent {
	return &model.OrderCreatedEvent{
		Type:      model.EventOrderCreated,
		Order:     order,
		CreatedAt: time.Now().UnixMilli(),
	}
}

// Multi fans out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) PublishOrderCreated(ctx context.Context, ev *model.OrderCreatedEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.PublishOrderCreated(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop drops every event.
type Nop struct{}

func (Nop) PublishOrderCreated(context.Context, *model.OrderCreatedEvent) error { return nil }
func (Nop) Close() error                                                      { return nil }
