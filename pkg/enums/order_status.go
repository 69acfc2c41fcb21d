package enums

import "fmt"

// OrderStatus tracks an order through the fulfillment ladder. The literal
// values match the document shapes consumed by the mobile clients.
type OrderStatus string

const (
	OrderStatusPending            OrderStatus = "Pending"
	OrderStatusPacked             OrderStatus = "Packed"
	OrderStatusShipped            OrderStatus = "Shipped"
	OrderStatusPartiallyDelivered OrderStatus = "Partially Delivered"
	OrderStatusDelivered          OrderStatus = "Delivered"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPacked,
	OrderStatusShipped,
	OrderStatusPartiallyDelivered,
	OrderStatusDelivered,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:            {OrderStatusPacked},
	OrderStatusPacked:             {OrderStatusShipped},
	OrderStatusShipped:            {OrderStatusPartiallyDelivered, OrderStatusDelivered},
	OrderStatusPartiallyDelivered: {OrderStatusDelivered},
}

// CanTransitionTo reports whether the ladder permits moving to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range orderStatusTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}
