package kafka

import "time"

// ProductPurchasedEvent is published by the order side once a purchase is paid.
type ProductPurchasedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	OrderID   uint      `json:"order_id"`
	ProductID uint      `json:"product_id"`
	Quantity  int32     `json:"quantity"`
	UserID    uint      `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventTypeProductPurchased = "product.purchased"
)

const (
	TopicProductPurchased = "product-purchased"
)
