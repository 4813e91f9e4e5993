package model

const EventOrderCreated = "order_created"

// OrderCreatedEvent is emitted once an order insert has committed.
type OrderCreatedEvent struct {
	Type      string `json:"type"`
	Order     Order  `json:"order"`
	CreatedAt int64  `json:"created_at"`
}
