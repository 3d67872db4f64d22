package action

import "github.com/sakif/orderdesk/internal/model"

// Orders API intents. Same bracket discipline as the users group, with an
// independent start/end pair so the two loading flags never interfere.

// OrdersRequestStart marks the beginning of an orders backend request.
type OrdersRequestStart struct{}

// OrdersRequestEnd closes the bracket opened by OrdersRequestStart.
type OrdersRequestEnd struct{}

// LoadOrders asks for a full resync of the orders collection.
type LoadOrders struct{}

// LoadOrdersSuccess carries the complete authoritative order list.
type LoadOrdersSuccess struct {
	Orders []model.Order
}

// AddOrder asks the backend to create an order.
type AddOrder struct {
	Order model.Order
}

// AddOrderSuccess carries the created order, id assigned by the repository.
type AddOrderSuccess struct {
	Order model.Order
}

// UpdateOrder asks the backend to patch the order with a matching id.
type UpdateOrder struct {
	Order model.Order
}

// UpdateOrderSuccess carries the order as the repository stored it.
type UpdateOrderSuccess struct {
	Order model.Order
}

// DeleteOrder asks the backend to remove a single order.
type DeleteOrder struct {
	ID int64
}

// DeleteOrderSuccess confirms the order is gone.
type DeleteOrderSuccess struct {
	ID int64
}

// OrdersRequestFailure reports a failed orders backend call. Always paired
// with OrdersRequestEnd.
type OrdersRequestFailure struct {
	ErrorMsg string
}

func (OrdersRequestStart) isAction()   {}
func (OrdersRequestEnd) isAction()     {}
func (LoadOrders) isAction()           {}
func (LoadOrdersSuccess) isAction()    {}
func (AddOrder) isAction()             {}
func (AddOrderSuccess) isAction()      {}
func (UpdateOrder) isAction()          {}
func (UpdateOrderSuccess) isAction()   {}
func (DeleteOrder) isAction()          {}
func (DeleteOrderSuccess) isAction()   {}
func (OrdersRequestFailure) isAction() {}
