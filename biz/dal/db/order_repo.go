package db

import (
	"context"

	"orders-hertz/biz/model"

	"gorm.io/gorm"
)

type OrderRepo struct {
	store *Store
}

func NewOrderRepo(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

// CreateOrder inserts one order; the assigned id is written back into order.
func (r *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return r.store.WithSession(ctx, func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// ListOrders returns every stored order in insertion order.
func (r *OrderRepo) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders := make([]model.Order, 0)
	err := r.store.WithSession(ctx, func(tx *gorm.DB) error {
		return tx.Model(&model.Order{}).Order("id asc").Find(&orders).Error
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}
