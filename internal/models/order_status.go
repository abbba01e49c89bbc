package models

// OrderStatus describes the lifecycle stage of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderStatusTransitions is the single source of truth for the status state
// machine. DELIVERED and CANCELLED are terminal and have no outgoing edges.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// ParseOrderStatus converts a string into an OrderStatus, rejecting unknown
// values.
func ParseOrderStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if _, ok := orderStatusTransitions[status]; !ok {
		return "", NewValidationError("invalid order status: %s", value)
	}
	return status, nil
}

// CanTransitionTo reports whether the transition table allows moving from
// this status to the requested one.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsFinal reports whether the status is terminal.
func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanBeCancelled reports whether an order in this status may still be
// cancelled. This is deliberately narrower than the transition table:
// SHIPPED orders are on their way and cannot be recalled.
func (s OrderStatus) CanBeCancelled() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed || s == OrderStatusPreparing
}

func (s OrderStatus) String() string {
	return string(s)
}
