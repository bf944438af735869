package models

import "time"

// ProductEventType names a change to the products table.
type ProductEventType string

const (
	ProductCreated ProductEventType = "product.created"
	ProductUpdated ProductEventType = "product.updated"
	ProductDeleted ProductEventType = "product.deleted"
)

// ProductEvent is published after a product write succeeds.
type ProductEvent struct {
	ID         string           `json:"id"`
	Type       ProductEventType `json:"type"`
	ProductID  int64            `json:"product_id"`
	Product    *Product         `json:"product,omitempty"` // nil for deletions
	OccurredAt time.Time        `json:"occurred_at"`
}
