package model

import (
	"fmt"
	"strings"
)

// Order is both the orders table row and the read-response shape.
type Order struct {
	ID        int64   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Symbol    string  `gorm:"column:symbol;not null" json:"symbol"`
	Price     float64 `gorm:"column:price;not null" json:"price"`
	Quantity  int64   `gorm:"column:quantity;not null" json:"quantity"`
	OrderType string  `gorm:"column:order_type;not null" json:"order_type"`
}

func (Order) TableName() string {
	return "orders"
}

// CreateOrderRequest is the create-request shape. Pointer fields tell an
// absent or null field apart from a zero value.
type CreateOrderRequest struct {
	Symbol    *string  `json:"symbol"`
	Price     *float64 `json:"price"`
	Quantity  *int64   `json:"quantity"`
	OrderType *string  `json:"order_type"`
}

// Validate reports every missing field at once.
func (r *CreateOrderRequest) Validate() error {
	var fields []FieldError
	if r.Symbol == nil {
		fields = append(fields, missing("symbol"))
	}
	if r.Price == nil {
		fields = append(fields, missing("price"))
	}
	if r.Quantity == nil {
		fields = append(fields, missing("quantity"))
	}
	if r.OrderType == nil {
		fields = append(fields, missing("order_type"))
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ToOrder must only be called after Validate succeeded.
func (r *CreateOrderRequest) ToOrder() *Order {
	return &Order{
		Symbol:    *r.Symbol,
		Price:     *r.Price,
		Quantity:  *r.Quantity,
		OrderType: *r.OrderType,
	}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned for request bodies that are malformed,
// miss a required field, or carry a field of the wrong type.
type ValidationError struct {
	Fields []FieldError
	Cause  error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid request body: %v", e.Cause)
	}
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "invalid request body: " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func missing(field string) FieldError {
	return FieldError{Field: field, Message: "field required"}
}
