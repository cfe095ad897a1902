package models

// OrderStatus is the closed set of order states. Any state may follow any
// other; reverting COMPLETED to PENDING is allowed.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderCompleted  OrderStatus = "COMPLETED"
)

// OrderStatuses lists every valid status in workflow order.
var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderCompleted}

// ParseOrderStatus maps a wire value onto the enumeration. The boolean is
// false for anything unrecognized; callers decide whether that means
// "no filter" or a rejected request.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderProcessing, OrderCompleted:
		return OrderStatus(s), true
	default:
		return "", false
	}
}

func (s OrderStatus) String() string {
	return string(s)
}
