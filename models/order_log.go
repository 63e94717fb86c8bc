package models

// OrderLog is the order history of a single session, most recent first.
// Entries are only ever inserted at the front and never removed, so the
// length never shrinks and CreatedAt never increases when read front to back.
//
// An OrderLog has exactly one owner and is not safe for concurrent use.
type OrderLog struct {
	orders []Order
}

// NewOrderLog returns an empty log
func NewOrderLog() *OrderLog {
	return &OrderLog{}
}

// Prepend inserts order at the front of the log
func (l *OrderLog) Prepend(order Order) {
	l.orders = append(l.orders, Order{})
	copy(l.orders[1:], l.orders)
	l.orders[0] = order
}

// Latest returns the most recent order, if any
func (l *OrderLog) Latest() (Order, bool) {
	if len(l.orders) == 0 {
		return Order{}, false
	}
	return l.orders[0], true
}

// Len returns the number of orders placed in the session
func (l *OrderLog) Len() int {
	return len(l.orders)
}

// Orders returns a copy of the log, most recent first
func (l *OrderLog) Orders() []Order {
	orders := make([]Order, len(l.orders))
	copy(orders, l.orders)
	return orders
}
