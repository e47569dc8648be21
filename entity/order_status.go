package entity

// OrderStatus is the lifecycle state of an order. The workflow is strictly
// linear: each status has exactly one legal successor and DELIVERED is
// terminal.
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusAccepted       OrderStatus = "ACCEPTED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
)

// Workflow maps each status to the only status it may move to.
// DELIVERED has no entry: no further transitions are accepted.
var Workflow = map[OrderStatus]OrderStatus{
	StatusPending:        StatusAccepted,
	StatusAccepted:       StatusPreparing,
	StatusPreparing:      StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// Next returns the one legal successor, or false when the status is terminal
// or unknown.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := Workflow[s]
	return next, ok
}

func (s OrderStatus) Valid() bool {
	if s == StatusDelivered {
		return true
	}
	_, ok := Workflow[s]
	return ok
}
