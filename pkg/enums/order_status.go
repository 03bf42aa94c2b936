package enums

import (
	"fmt"
	"strings"
)

// OrderStatus tracks the delivery lifecycle of an order. The forward chain is
// received -> preparing -> out_for_delivery -> delivered; cancelled is an
// absorbing state reachable from any non-terminal status.
type OrderStatus string

const (
	OrderStatusReceived       OrderStatus = "received"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var orderStatusRank = map[OrderStatus]int{
	OrderStatusReceived:       0,
	OrderStatusPreparing:      1,
	OrderStatusOutForDelivery: 2,
	OrderStatusDelivered:      3,
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

// IsTerminal reports whether the status accepts no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether moving from s to next follows the forward
// chain. Cancellation is allowed from any non-terminal status.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.IsValid() || !next.IsValid() || s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	from, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	to, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return to == from+1
}

// ParseOrderStatus converts raw input into an OrderStatus. Matching is
// case-insensitive and accepts the legacy "OutForDelivery" spelling; the
// canonical lowercase form is always returned.
func ParseOrderStatus(value string) (OrderStatus, error) {
	folded := strings.ToLower(strings.TrimSpace(value))
	if folded == "outfordelivery" {
		return OrderStatusOutForDelivery, nil
	}
	for _, candidate := range validOrderStatuses {
		if string(candidate) == folded {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
