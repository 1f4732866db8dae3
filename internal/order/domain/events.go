package domain

// OrderPlaced is emitted through the outbox once an order commits.
type OrderPlaced struct {
	OrderID    string      `json:"order_id"`
	UserID     string      `json:"user_id"`
	TotalCents int64       `json:"total_cents"`
	Items      []OrderItem `json:"items"`
}

const EventOrderPlaced = "OrderPlaced"

func NewOrderPlaced(o Order) OrderPlaced {
	return OrderPlaced{
		OrderID:    o.ID,
		UserID:     o.UserID,
		TotalCents: o.TotalCents,
		Items:      o.Items,
	}
}
