package models

// OrderStatus is the fulfillment state, independent of payment state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderRefunded   OrderStatus = "REFUNDED"
)

var orderRank = map[OrderStatus]int{
	OrderPending:    0,
	OrderConfirmed:  1,
	OrderProcessing: 2,
	OrderShipped:    3,
	OrderDelivered:  4,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped,
		OrderDelivered, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}

// Terminal reports whether no further fulfillment transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled || s == OrderRefunded
}

// CanTransition reports whether the fulfillment chain allows moving to the
// given state: one step at a time along PENDING → CONFIRMED → PROCESSING →
// SHIPPED → DELIVERED, with CANCELLED and REFUNDED reachable from any
// non-terminal state. Only consulted when strict transitions are enabled;
// the default admin edit force-sets the value.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if !to.Valid() || s.Terminal() {
		return false
	}
	if to == OrderCancelled || to == OrderRefunded {
		return true
	}
	return orderRank[to] == orderRank[s]+1
}

// PaymentStatus is the payment state: PENDING → PAID | FAILED, PAID → REFUNDED.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

func (p PaymentStatus) CanTransition(to PaymentStatus) bool {
	switch p {
	case PaymentPending:
		return to == PaymentPaid || to == PaymentFailed
	case PaymentPaid:
		return to == PaymentRefunded
	}
	return false
}
